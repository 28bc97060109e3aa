package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/choreworld/choreworld/pkg/core/services"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the static site for the current week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, _ := cmd.Flags().GetString("output")

			if err := services.GenerateSite(app.Cfg, app.Calculator, outputDir, app.Logger); err != nil {
				return err
			}

			fmt.Printf("\n✓ Site generated successfully!\n\n")
			fmt.Printf("Output: %s\n", outputDir)
			fmt.Printf("Sites:  %d\n\n", len(app.Cfg.Sites))

			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output directory")
	cmd.MarkFlagRequired("output")

	return cmd
}
