package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/choreworld/choreworld/pkg/core/services"
)

// NotifyCmd creates the notify command
func NotifyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notify <endpoints_file>",
		Short: "Send everyone their chores for the current week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoints, err := services.LoadEndpoints(args[0])
			if err != nil {
				return err
			}

			sent, failed, err := services.Notify(app.Ctx, app.Cfg, app.Calculator, app.NtfyClient, endpoints, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Weekly notifications completed!\n\n")

			if len(sent) > 0 {
				fmt.Printf("Notified %d people:\n", len(sent))
				for _, s := range sent {
					fmt.Printf("  ✓ %s @ %s: %s\n", s.Person, s.Endpoint, s.Message)
				}
				fmt.Println()
			}

			if len(failed) > 0 {
				fmt.Printf("⚠️  Failed to notify %d people:\n", len(failed))
				for _, f := range failed {
					fmt.Printf("  ✗ %s (%s): %s\n", f.Person, f.SiteID, f.Error)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
