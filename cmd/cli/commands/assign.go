package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/core/services"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign [date]",
		Short: "Show chore assignments for a week (defaults to the current week)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(app, args)
			if err != nil {
				return err
			}

			for _, site := range app.Cfg.Sites {
				groups, err := config.LoadGroups(app.Cfg.ResolvePath(site.Groups))
				if err != nil {
					return err
				}

				week, err := services.AssignWeek(app.Calculator, groups, date, app.Logger)
				if err != nil {
					return err
				}

				fmt.Printf("\n%s — week ending %s (offset %d)\n", site.ID, week.WeekLabel(), week.Offset)
				for _, group := range groups {
					assignments := week.Groups[indexOfGroup(week, group.ID)].Chores
					fmt.Printf("\n  %s:\n", group.Name)
					for _, chore := range group.Chores {
						fmt.Printf("    %-20s %s\n", chore.Name, assignments[chore.ID])
					}
				}
			}
			fmt.Println()

			return nil
		},
	}
}

// resolveDate parses an optional YYYY-MM-DD argument in the configured
// timezone, defaulting to now.
func resolveDate(app *AppContext, args []string) (time.Time, error) {
	loc, err := app.Cfg.Location()
	if err != nil {
		return time.Time{}, err
	}

	if len(args) == 0 {
		return time.Now().In(loc), nil
	}

	date, err := time.ParseInLocation(config.DateFormat, args[0], loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return date, nil
}

func indexOfGroup(week *services.WeekAssignments, groupID string) int {
	for i, ga := range week.Groups {
		if ga.GroupID == groupID {
			return i
		}
	}
	return 0
}
