package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/clients/ntfyclient"
	"github.com/choreworld/choreworld/pkg/core/model"
	"github.com/choreworld/choreworld/pkg/core/rotation"
)

// SentNotification records one successful weekly-summary push.
type SentNotification struct {
	SiteID   string
	Person   string
	Endpoint string
	Message  string
}

// FailedNotification records one push that could not be delivered.
type FailedNotification struct {
	SiteID string
	Person string
	Error  string
}

// Notify sends every person their chores for the current week, one ntfy
// message per person per site. Delivery failures are collected rather than
// aborting the run, so one dead endpoint never silences everyone else.
func Notify(ctx context.Context, cfg *config.Config, calc *rotation.Calculator, client *ntfyclient.Client, endpoints Endpoints, logger *zap.Logger) ([]SentNotification, []FailedNotification, error) {
	var sent []SentNotification
	var failed []FailedNotification

	for _, site := range cfg.Sites {
		groups, err := config.LoadGroups(cfg.ResolvePath(site.Groups))
		if err != nil {
			return sent, failed, err
		}

		week, err := AssignCurrentWeek(calc, groups, logger)
		if err != nil {
			return sent, failed, err
		}

		logger.Info("Notifying site",
			zap.String("site", site.ID),
			zap.Int("offset", week.Offset),
			zap.String("week_ending", week.WeekLabel()))

		personChores := choresByPerson(groups, week)
		siteEndpoints := endpoints[site.ID]

		for _, person := range uniquePeople(groups) {
			chores, ok := personChores[person]
			if !ok {
				continue
			}

			endpoint, ok := siteEndpoints[person]
			if !ok {
				failed = append(failed, FailedNotification{
					SiteID: site.ID,
					Person: person,
					Error:  "no endpoint configured",
				})
				continue
			}

			message := fmt.Sprintf("%s, your chores for the week are: %s", person, HumanizeChores(chores))
			err := client.Publish(ctx, endpoint, message, ntfyclient.Notification{
				Title: "choreworld",
				Tags:  []string{"broom", "sparkles"},
			})
			if err != nil {
				logger.Warn("Failed to notify person",
					zap.String("site", site.ID),
					zap.String("person", person),
					zap.Error(err))
				failed = append(failed, FailedNotification{
					SiteID: site.ID,
					Person: person,
					Error:  err.Error(),
				})
				continue
			}

			sent = append(sent, SentNotification{
				SiteID:   site.ID,
				Person:   person,
				Endpoint: endpoint,
				Message:  message,
			})
		}
	}

	return sent, failed, nil
}

// choresByPerson inverts a week's group assignments into each person's chore
// list, ordered by group then chore position.
func choresByPerson(groups []model.Group, week *WeekAssignments) map[string][]model.Chore {
	assignments := make(map[string]map[string]string, len(week.Groups))
	for _, ga := range week.Groups {
		assignments[ga.GroupID] = ga.Chores
	}

	personChores := make(map[string][]model.Chore)
	for _, group := range groups {
		groupAssignments := assignments[group.ID]
		for _, chore := range group.Chores {
			person, ok := groupAssignments[chore.ID]
			if !ok {
				continue
			}
			personChores[person] = append(personChores[person], chore)
		}
	}
	return personChores
}

// HumanizeChores joins chore names into a readable list: "dishes",
// "dishes and trash", "dishes, trash, and bins".
func HumanizeChores(chores []model.Chore) string {
	names := make([]string, len(chores))
	for i, c := range chores {
		names[i] = strings.ToLower(c.Name)
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
