package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/choreworld/choreworld/pkg/core/model"
	"github.com/choreworld/choreworld/pkg/core/rotation"
)

// WeekAssignments holds every group's assignments for a single week.
type WeekAssignments struct {
	Offset     int
	WeekEnding time.Time
	Groups     []model.GroupAssignment
}

// WeekLabel formats the week-ending Sunday for display, matching the site's
// "Sunday, 11 April 2021" style.
func (w *WeekAssignments) WeekLabel() string {
	return FormatDate(w.WeekEnding)
}

// FormatDate renders a date in the long human-readable form used across the
// site and notifications.
func FormatDate(date time.Time) string {
	return date.Format("Monday, 2 January 2006")
}

// AssignWeek computes the chore assignments for the week containing date:
// one rotation.Assign call per group, all sharing the date's week offset.
func AssignWeek(calc *rotation.Calculator, groups []model.Group, date time.Time, logger *zap.Logger) (*WeekAssignments, error) {
	offset := calc.DateToOffset(date)
	weekEnding := calc.EndOfWeek(offset)

	logger.Debug("Assigning chores for week",
		zap.Int("offset", offset),
		zap.Time("week_ending", weekEnding),
		zap.Int("groups", len(groups)))

	result := &WeekAssignments{
		Offset:     offset,
		WeekEnding: weekEnding,
		Groups:     make([]model.GroupAssignment, 0, len(groups)),
	}

	for _, group := range groups {
		assignments, err := rotation.Assign(offset, group.ChoreIDs(), group.People)
		if err != nil {
			return nil, fmt.Errorf("failed to assign chores for group %q: %w", group.ID, err)
		}

		result.Groups = append(result.Groups, model.GroupAssignment{
			GroupID: group.ID,
			Chores:  assignments,
		})
	}

	return result, nil
}

// AssignCurrentWeek is AssignWeek for the calculator's current moment.
func AssignCurrentWeek(calc *rotation.Calculator, groups []model.Group, logger *zap.Logger) (*WeekAssignments, error) {
	return AssignWeek(calc, groups, calc.EndOfWeek(calc.CurrentOffset()), logger)
}
