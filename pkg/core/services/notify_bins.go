package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/clients/ntfyclient"
	"github.com/choreworld/choreworld/pkg/core/rotation"
)

// BinsForWeek returns which bins go out during the week containing date:
// the constant bin plus whichever of the alternating pair this week's
// parity selects, anchored on the schedule's first week.
func BinsForWeek(schedule *config.BinSchedule, calc *rotation.Calculator, date time.Time) (string, string, error) {
	firstWeek, err := time.Parse(config.DateFormat, schedule.FirstWeek)
	if err != nil {
		return "", "", fmt.Errorf("invalid bin schedule first week: %w", err)
	}

	days := int(calc.WeekBoundary(date).Sub(firstWeek).Hours()) / 24
	weekNum := days / 7

	// Go truncates negative division, so weeks before the anchor need the
	// parity folded back into range.
	parity := weekNum % 2
	if parity < 0 {
		parity += 2
	}
	return schedule.Constant, schedule.Alternating[parity], nil
}

// NotifyBins reminds whoever holds the bins chore this week which bins go
// out tonight.
func NotifyBins(ctx context.Context, cfg *config.Config, calc *rotation.Calculator, client *ntfyclient.Client, endpoints Endpoints, logger *zap.Logger) error {
	schedule := cfg.BinSchedule
	if schedule == nil {
		return fmt.Errorf("no bin schedule configured")
	}

	site, ok := siteByID(cfg, schedule.SiteID)
	if !ok {
		return fmt.Errorf("bin schedule references unknown site %q", schedule.SiteID)
	}

	groups, err := config.LoadGroups(cfg.ResolvePath(site.Groups))
	if err != nil {
		return err
	}

	week, err := AssignCurrentWeek(calc, groups, logger)
	if err != nil {
		return err
	}

	var person string
	for _, ga := range week.Groups {
		if ga.GroupID == schedule.GroupID {
			person = ga.Chores[schedule.ChoreID]
			break
		}
	}
	if person == "" {
		return fmt.Errorf("no assignee for chore %q in group %q", schedule.ChoreID, schedule.GroupID)
	}

	endpoint, ok := endpoints[site.ID][person]
	if !ok {
		return fmt.Errorf("no endpoint configured for %q", person)
	}

	bin1, bin2, err := BinsForWeek(schedule, calc, week.WeekEnding)
	if err != nil {
		return err
	}

	logger.Info("Sending bin reminder",
		zap.String("person", person),
		zap.String("bins", bin1+"+"+bin2),
		zap.Int("offset", week.Offset))

	message := fmt.Sprintf("%s, %s and %s bins go out tonight!", person, bin1, bin2)
	return client.Publish(ctx, endpoint, message, ntfyclient.Notification{
		Title: "choreworld",
		Tags:  []string{"wastebasket", bin1 + "_square", bin2 + "_square"},
	})
}

func siteByID(cfg *config.Config, id string) (config.Site, bool) {
	for _, site := range cfg.Sites {
		if site.ID == id {
			return site, true
		}
	}
	return config.Site{}, false
}
