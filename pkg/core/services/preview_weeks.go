package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/choreworld/choreworld/pkg/core/model"
	"github.com/choreworld/choreworld/pkg/core/rotation"
)

// PreviewWeeks computes assignments for the week containing from and the
// following count-1 weeks. The week-ending Sundays are enumerated with a
// weekly recurrence rule anchored on the first boundary.
func PreviewWeeks(calc *rotation.Calculator, groups []model.Group, from time.Time, count int, logger *zap.Logger) ([]*WeekAssignments, error) {
	if count <= 0 {
		return nil, fmt.Errorf("preview week count must be positive, got %d", count)
	}

	startOffset := calc.DateToOffset(from)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Dtstart: calc.EndOfWeek(startOffset),
		Count:   count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly recurrence: %w", err)
	}

	sundays := rule.All()
	logger.Debug("Previewing weeks",
		zap.Int("start_offset", startOffset),
		zap.Int("count", len(sundays)))

	weeks := make([]*WeekAssignments, 0, len(sundays))
	for _, sunday := range sundays {
		week, err := AssignWeek(calc, groups, sunday, logger)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, week)
	}

	return weeks, nil
}
