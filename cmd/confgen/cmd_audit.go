package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/confgen-net/confgen/pkg/audit"
	"github.com/confgen-net/confgen/pkg/cli"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "View the deployment audit trail",
		Long: `View the audit trail of deployment attempts.

Every deploy and dry-run is recorded with a timestamp, the user who ran
it, the target device, line count, and the outcome.

Examples:
  confgen audit list --device core-sw1
  confgen audit list --last 24h --failures`,
	}
	cmd.AddCommand(newAuditListCmd())
	return cmd
}

func newAuditListCmd() *cobra.Command {
	var (
		device     string
		listUser   string
		last       string
		limit      int
		failures   bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit events",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := audit.Filter{
				Device:      device,
				User:        listUser,
				Limit:       limit,
				FailureOnly: failures,
			}
			if last != "" {
				duration, err := time.ParseDuration(last)
				if err != nil {
					return fmt.Errorf("invalid duration: %s", last)
				}
				filter.StartTime = time.Now().Add(-duration)
			}

			events, err := audit.Query(filter)
			if err != nil {
				return fmt.Errorf("querying audit log: %w", err)
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(events)
			}
			if len(events) == 0 {
				fmt.Println("No audit events found")
				return nil
			}

			t := cli.NewTable(os.Stdout, "TIMESTAMP", "USER", "DEVICE", "OPERATION", "LINES", "STATUS")
			for _, event := range events {
				status := green("ok")
				if !event.Success {
					status = red("failed")
				}
				if event.DryRun {
					status = yellow("dry-run")
				}
				t.Row(
					event.Timestamp.Format("2006-01-02 15:04:05"),
					event.User,
					event.Device,
					event.Operation,
					fmt.Sprintf("%d", event.Lines),
					status,
				)
			}
			t.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "filter by device")
	cmd.Flags().StringVar(&listUser, "user", "", "filter by user")
	cmd.Flags().StringVar(&last, "last", "", "events from the last duration (e.g. 24h)")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum events to show")
	cmd.Flags().BoolVar(&failures, "failures", false, "show only failed deployments")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
	return cmd
}
