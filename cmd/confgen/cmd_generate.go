package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/confgen-net/confgen/pkg/iosgen"
	"github.com/confgen-net/confgen/pkg/model"
)

func newGenerateCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "generate <model.yaml> [output.cfg]",
		Short: "Render device configuration from a YAML model",
		Long: `Render IOS-style CLI configuration from a YAML device model.

Generation is tolerant: incomplete entries are skipped, not rejected,
so it works on drafts. Run 'confgen validate' for the strict check.

The output path defaults to the model path with a .cfg suffix. The
rendered text is also echoed to stdout for pipelines.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.Load(args[0])
			if err != nil {
				return err
			}

			out := outputPath(args, outputDir)
			if err := iosgen.WriteFile(m, out); err != nil {
				return err
			}
			fmt.Printf("%s wrote %s\n\n", green("✓"), out)

			fmt.Println(iosgen.Generate(m))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for generated configs")
	return cmd
}

// outputPath resolves where the config lands: explicit argument, else the
// model path with a .cfg suffix, placed under --output-dir or the
// output_dir setting when one is set.
func outputPath(args []string, flagDir string) string {
	if len(args) > 1 {
		return args[1]
	}

	out := iosgen.DefaultOutputPath(args[0])
	dir := flagDir
	if dir == "" && userSettings != nil {
		dir = userSettings.OutputDir
	}
	if dir != "" {
		out = filepath.Join(dir, filepath.Base(out))
	}
	return out
}
