package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/choreworld/choreworld/cmd/cli/commands"
	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/clients/ntfyclient"
	"github.com/choreworld/choreworld/pkg/core/rotation"
	"github.com/choreworld/choreworld/pkg/utils/logging"
)

var (
	configPath string
	verbose    bool
	app        *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "choreworld",
		Short: "choreworld - Generate and announce weekly chore rotations",
		Long:  `A tool for generating the choreworld static site and sending weekly chore notifications.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to choreworld.yaml (defaults to ./ then ~)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on the console")

	app = &commands.AppContext{}

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.AssignCmd(app))
	rootCmd.AddCommand(commands.PreviewCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.NtfyURLsCmd(app))
	rootCmd.AddCommand(commands.NotifyCmd(app))
	rootCmd.AddCommand(commands.NotifyBinsCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, calculator, and the ntfy client
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting choreworld")

	app.Logger.Debug("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loc, err := app.Cfg.Location()
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	epoch := app.Cfg.EpochDate(rotation.DefaultEpoch)
	app.Calculator = rotation.NewCalculator(epoch, func() time.Time {
		return time.Now().In(loc)
	})

	app.NtfyClient = ntfyclient.NewClient(app.Logger)

	app.Logger.Info("Configuration loaded",
		zap.String("timezone", app.Cfg.Timezone),
		zap.String("epoch", epoch.Format(config.DateFormat)),
		zap.Int("sites", len(app.Cfg.Sites)))

	return nil
}
