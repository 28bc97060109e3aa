package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/core/services"
)

// PreviewCmd creates the preview command
func PreviewCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [weeks]",
		Short: "Preview assignments for the upcoming weeks (default 4)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 4
			if len(args) > 0 {
				var err error
				count, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("weeks must be a number: %w", err)
				}
			}

			from, _ := cmd.Flags().GetString("from")
			var fromArgs []string
			if from != "" {
				fromArgs = []string{from}
			}
			date, err := resolveDate(app, fromArgs)
			if err != nil {
				return err
			}

			for _, site := range app.Cfg.Sites {
				groups, err := config.LoadGroups(app.Cfg.ResolvePath(site.Groups))
				if err != nil {
					return err
				}

				weeks, err := services.PreviewWeeks(app.Calculator, groups, date, count, app.Logger)
				if err != nil {
					return err
				}

				fmt.Printf("\n%s:\n", site.ID)
				for _, week := range weeks {
					fmt.Printf("\n  Week ending %s (offset %d)\n", week.WeekLabel(), week.Offset)
					for _, group := range groups {
						assignments := week.Groups[indexOfGroup(week, group.ID)].Chores
						for _, chore := range group.Chores {
							fmt.Printf("    %-12s %-20s %s\n", group.Name, chore.Name, assignments[chore.ID])
						}
					}
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD, defaults to today)")

	return cmd
}
