// Confgen — YAML-driven configuration for Cisco IOS devices
//
// confgen reads a YAML device model and turns it into IOS-style CLI
// configuration: hostname, interfaces, OSPF, and access lists, in the
// order the model declares them. The same model drives validation and
// deployment over SSH.
//
// Usage:
//
//	confgen generate <model.yaml> [output.cfg]   Render config to a file
//	confgen validate <model.yaml>                Check a model for problems
//	confgen deploy <model.yaml> <config.cfg>     Push config to the device
//	confgen audit list                           Show past deployments
//	confgen settings show|get|set|clear|path     Manage defaults
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/confgen-net/confgen/pkg/audit"
	"github.com/confgen-net/confgen/pkg/cli"
	"github.com/confgen-net/confgen/pkg/settings"
	"github.com/confgen-net/confgen/pkg/util"
	"github.com/confgen-net/confgen/pkg/version"
)

var (
	verbose      bool
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "confgen",
	Short:             "YAML-driven configuration for Cisco IOS devices",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Confgen renders IOS-style CLI configuration from a YAML device model.

Generation is tolerant and works on drafts; validation is the strict
gate before deployment. Deployment pushes pre-generated text over SSH.

  confgen generate router.yaml
  confgen validate router.yaml
  confgen deploy router.yaml router.cfg --dry-run`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		if isSettingsOrHelp(cmd) {
			return nil
		}

		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		auditLogger, err := audit.NewFileLogger(userSettings.DefaultAuditPath(), audit.RotationConfig{
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 10,
		})
		if err != nil {
			util.Warnf("could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(auditLogger)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newValidateCmd(),
		newDeployCmd(),
		newAuditCmd(),
		newSettingsCmd(),
		newVersionCmd(),
	)
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings,
// help, or version command. Those run without settings or audit state.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings":
			return true
		}
	}
	return false
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version.Version == "dev" {
				fmt.Println("confgen dev build (use 'make build' for version info)")
			} else {
				fmt.Printf("confgen %s\n", version.Info())
			}
		},
	}
}

// currentUser identifies who ran the command, for the audit trail.
func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}

// Color helpers — delegate to pkg/cli
func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
func bold(s string) string   { return cli.Bold(s) }
func dim(s string) string    { return cli.Dim(s) }
