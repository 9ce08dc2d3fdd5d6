package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confgen-net/confgen/pkg/cli"
	"github.com/confgen-net/confgen/pkg/settings"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage persistent settings",
		Long: `Manage persistent settings stored in ~/.confgen/settings.json.

Settings provide defaults for common flags:
  - device_type: Assumed when a model omits device_type
  - output_dir:  Where generated configs land without an explicit path
  - audit_log:   Audit trail location override

Examples:
  confgen settings show
  confgen settings set output_dir /srv/configs
  confgen settings clear`,
	}
	cmd.AddCommand(
		newSettingsShowCmd(),
		newSettingsGetCmd(),
		newSettingsSetCmd(),
		newSettingsClearCmd(),
		newSettingsPathCmd(),
	)
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

			t := cli.NewTable(cmd.OutOrStdout(), "SETTING", "VALUE")
			printSetting := func(name, value string) {
				if value == "" {
					value = "(not set)"
				}
				t.Row(name, value)
			}
			printSetting("device_type", s.DefaultDeviceType)
			printSetting("output_dir", s.OutputDir)
			printSetting("audit_log", s.AuditLog)
			t.Flush()
			return nil
		},
	}
}

func newSettingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <setting>",
		Short: "Get a setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			var value string
			switch args[0] {
			case "device_type", "type":
				value = s.DefaultDeviceType
			case "output_dir", "output":
				value = s.OutputDir
			case "audit_log", "audit":
				value = s.AuditLog
			default:
				return fmt.Errorf("unknown setting: %s (valid: device_type, output_dir, audit_log)", args[0])
			}

			if value == "" {
				fmt.Println("(not set)")
			} else {
				fmt.Println(value)
			}
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <setting> <value>",
		Short: "Set a setting value",
		Long: `Set a persistent setting value.

Available settings:
  device_type - Device type assumed when a model omits one
  output_dir  - Directory for generated configs
  audit_log   - Audit trail location

Examples:
  confgen settings set device_type cisco_ios
  confgen settings set output_dir /srv/configs`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setting, value := args[0], args[1]

			s, err := settings.Load()
			if err != nil {
				s = &settings.Settings{}
			}

			switch setting {
			case "device_type", "type":
				s.DefaultDeviceType = value
				fmt.Printf("Default device type set to: %s\n", value)
			case "output_dir", "output":
				s.OutputDir = value
				fmt.Printf("Output directory set to: %s\n", value)
			case "audit_log", "audit":
				s.AuditLog = value
				fmt.Printf("Audit log set to: %s\n", value)
			default:
				return fmt.Errorf("unknown setting: %s (valid: device_type, output_dir, audit_log)", setting)
			}

			if err := s.Save(); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}
			return nil
		},
	}
}

func newSettingsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &settings.Settings{}
			if err := s.Save(); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}
			fmt.Println("All settings cleared.")
			return nil
		},
	}
}

func newSettingsPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show settings file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(settings.DefaultSettingsPath())
		},
	}
}
