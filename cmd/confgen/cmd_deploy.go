package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/confgen-net/confgen/pkg/audit"
	"github.com/confgen-net/confgen/pkg/deploy"
	"github.com/confgen-net/confgen/pkg/model"
	"github.com/confgen-net/confgen/pkg/util"
	"github.com/confgen-net/confgen/pkg/validate"
)

func newDeployCmd() *cobra.Command {
	var (
		dryRun  bool
		force   bool
		port    int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "deploy <model.yaml> <config.cfg>",
		Short: "Push a generated configuration to the device",
		Long: `Push pre-generated configuration text to the device the model names.

Credentials come from the model's device.credentials section, with
NETWORK_USERNAME / NETWORK_PASSWORD / NETWORK_ENABLE_PASSWORD
environment variables taking precedence. Anything still missing is
prompted for when run from a terminal.

The model is validated first; errors refuse to deploy unless --force
is given. With --dry-run nothing touches the network.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.Load(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading config %s: %w", args[1], err)
			}
			cliText := strings.TrimRight(string(data), "\n")

			if m.Device.DeviceType == "" && userSettings != nil {
				m.Device.DeviceType = userSettings.GetDeviceType()
			}

			if m.Device.IPAddress == "" {
				return fmt.Errorf("model has no device.ip_address to deploy to")
			}

			report := validate.Validate(m)
			if !report.Valid() {
				report.Render(os.Stdout)
				if !force {
					return fmt.Errorf("model has validation errors: fix them or deploy with --force")
				}
				fmt.Println(yellow("⚠ deploying despite validation errors (--force)"))
			}

			creds := deploy.ResolveCredentials(m.Device.Credentials)
			if !creds.Complete() && !dryRun {
				if err := promptCredentials(&creds); err != nil {
					return err
				}
			}

			deployer := &deploy.Deployer{
				Model:   m,
				Creds:   creds,
				DryRun:  dryRun,
				Port:    port,
				Timeout: timeout,
			}

			event := audit.NewEvent(currentUser(), deviceLabel(m), operationName(dryRun)).
				WithHost(m.Device.IPAddress).
				WithDeviceType(m.Device.EffectiveDeviceType()).
				WithDryRun(dryRun)

			res, err := deployer.Deploy(cliText)
			if err != nil {
				recordEvent(event.WithError(err))
				return err
			}

			recordEvent(event.
				WithLines(len(res.Lines)).
				WithSaved(res.Saved).
				WithDuration(res.Duration).
				WithSuccess())

			if res.DryRun {
				fmt.Printf("%s dry-run: %d lines would be sent to %s\n\n", yellow("⚠"), len(res.Lines), res.Host)
				for _, line := range res.Lines {
					fmt.Printf("  %s\n", dim(line))
				}
				return nil
			}

			fmt.Printf("%s deployed %d lines to %s in %s, config saved\n",
				green("✓"), len(res.Lines), res.Host, res.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be sent without connecting")
	cmd.Flags().BoolVar(&force, "force", false, "deploy even when validation reports errors")
	cmd.Flags().IntVar(&port, "port", deploy.DefaultPort, "SSH port")
	cmd.Flags().DurationVar(&timeout, "timeout", deploy.DefaultTimeout, "connect and command timeout")
	return cmd
}

func operationName(dryRun bool) string {
	if dryRun {
		return audit.OpDryRun
	}
	return audit.OpDeploy
}

// deviceLabel names the device in audit events: hostname when the model
// has one, target address otherwise.
func deviceLabel(m *model.DeviceModel) string {
	if m.Device.Hostname != "" {
		return m.Device.Hostname
	}
	return m.Device.IPAddress
}

func recordEvent(event *audit.Event) {
	if err := audit.Log(event); err != nil {
		util.Warnf("could not record audit event: %v", err)
	}
}

// promptCredentials fills in whatever ResolveCredentials could not, reading
// the password without echo. Refuses when stdin is not a terminal.
func promptCredentials(creds *deploy.Credentials) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("credentials required: set %s and %s, or add device.credentials to the model",
			deploy.EnvUsername, deploy.EnvPassword)
	}

	reader := bufio.NewReader(os.Stdin)
	if creds.Username == "" {
		fmt.Print("Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		creds.Username = strings.TrimSpace(line)
	}
	if creds.Password == "" {
		fmt.Print("Password: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		creds.Password = string(secret)
	}

	if !creds.Complete() {
		return fmt.Errorf("username and password are required")
	}
	return nil
}
