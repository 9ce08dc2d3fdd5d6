package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/confgen-net/confgen/pkg/model"
	"github.com/confgen-net/confgen/pkg/validate"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <model.yaml>",
		Short: "Check a device model for errors and warnings",
		Long: `Check a YAML device model against the strict rules deployment needs:
required fields present, addresses and masks well-formed, OSPF and ACL
entries complete. Warnings are advisory; errors exit non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Validating %s\n\n", bold(args[0]))
			report := validate.Validate(m)
			report.Render(os.Stdout)

			if !report.Valid() {
				os.Exit(1)
			}
			return nil
		},
	}
}
