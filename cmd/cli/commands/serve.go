package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/choreworld/choreworld/pkg/core/services"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local preview of the site, rebuilding on config or template changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, _ := cmd.Flags().GetString("output")
			addr, _ := cmd.Flags().GetString("addr")

			ctx, stop := signal.NotifyContext(app.Ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return services.Serve(ctx, app.Cfg, app.Calculator, outputDir, addr, app.Logger)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output directory")
	cmd.MarkFlagRequired("output")
	cmd.Flags().String("addr", "localhost:8080", "Listen address")

	return cmd
}
