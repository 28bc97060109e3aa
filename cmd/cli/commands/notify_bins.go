package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/choreworld/choreworld/pkg/core/services"
)

// NotifyBinsCmd creates the notifyBins command
func NotifyBinsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notifyBins <endpoints_file>",
		Short: "Remind this week's bins person which bins go out tonight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoints, err := services.LoadEndpoints(args[0])
			if err != nil {
				return err
			}

			if err := services.NotifyBins(app.Ctx, app.Cfg, app.Calculator, app.NtfyClient, endpoints, app.Logger); err != nil {
				return err
			}

			fmt.Println("\n✓ Bin reminder sent!")
			return nil
		},
	}
}
