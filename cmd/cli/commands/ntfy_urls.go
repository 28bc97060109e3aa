package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/choreworld/choreworld/pkg/clients/ntfyclient"
	"github.com/choreworld/choreworld/pkg/core/services"
)

// NtfyURLsCmd creates the ntfyUrls command
func NtfyURLsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ntfyUrls",
		Short: "Generate private ntfy endpoints for each person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host, _ := cmd.Flags().GetString("host")
			outputPath, _ := cmd.Flags().GetString("output")
			existing, _ := cmd.Flags().GetBool("existing")
			indent, _ := cmd.Flags().GetInt("indent")

			if host == "" {
				host = app.Cfg.NtfyHost
			}
			if host == "" {
				host = ntfyclient.DefaultHost
			}

			existingEndpoints := services.Endpoints{}
			if existing {
				if outputPath == "-" {
					return fmt.Errorf("--existing requires an output file path")
				}
				var err error
				existingEndpoints, err = services.LoadEndpoints(outputPath)
				if err != nil {
					return err
				}
			}

			endpoints, err := services.NtfyURLs(app.Cfg, host, existingEndpoints, app.Logger)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(endpoints, "", strings.Repeat(" ", indent))
			if err != nil {
				return fmt.Errorf("failed to marshal endpoints: %w", err)
			}
			data = append(data, '\n')

			if outputPath == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(outputPath, data, 0o600); err != nil {
				return fmt.Errorf("failed to write endpoints file: %w", err)
			}

			fmt.Printf("\n✓ Endpoints written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().String("host", "", "ntfy host (defaults to the configured host)")
	cmd.Flags().StringP("output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().Bool("existing", false, "Merge with endpoints already in the output file")
	cmd.Flags().Int("indent", 2, "JSON indent width")

	return cmd
}
