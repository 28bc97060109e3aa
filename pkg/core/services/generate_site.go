package services

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/builder"
	"github.com/choreworld/choreworld/pkg/core/model"
	"github.com/choreworld/choreworld/pkg/core/rotation"
)

// SitePage is the data handed to a site template.
type SitePage struct {
	SiteID      string
	Groups      []model.Group
	Assignments map[string]map[string]string // group ID → chore ID → person
	WeekLabel   string
	Offset      int
	Epoch       string
	// ChoresJSON feeds the date-picker script: per group, the ordered chore
	// IDs and people it needs to recompute assignments client-side.
	ChoresJSON template.JS
}

// GenerateSite renders every configured site into outputDir, staging the
// whole build and publishing it atomically.
func GenerateSite(cfg *config.Config, calc *rotation.Calculator, outputDir string, logger *zap.Logger) error {
	b, err := builder.New(outputDir, cfg.ResolvePath(cfg.TemplateDir), logger)
	if err != nil {
		return err
	}
	defer b.Close()

	for _, dir := range cfg.StaticDirs {
		if err := b.CopyDir(cfg.ResolvePath(dir), "/"+filepath.Base(dir)); err != nil {
			return err
		}
	}

	if cfg.Domain != "" {
		if err := b.WriteFile("/CNAME", []byte(cfg.Domain+"\n")); err != nil {
			return err
		}
		if err := b.WriteFile("/.nojekyll", nil); err != nil {
			return err
		}
	}

	for _, site := range cfg.Sites {
		if err := renderSite(cfg, calc, b, site, logger); err != nil {
			return fmt.Errorf("failed to render site %q: %w", site.ID, err)
		}
	}

	return b.Commit()
}

func renderSite(cfg *config.Config, calc *rotation.Calculator, b *builder.Builder, site config.Site, logger *zap.Logger) error {
	groups, err := config.LoadGroups(cfg.ResolvePath(site.Groups))
	if err != nil {
		return err
	}

	week, err := AssignCurrentWeek(calc, groups, logger)
	if err != nil {
		return err
	}

	logger.Info("Rendering site",
		zap.String("site", site.ID),
		zap.Int("offset", week.Offset),
		zap.String("week_ending", week.WeekLabel()))

	page, err := buildSitePage(site.ID, groups, week, calc)
	if err != nil {
		return err
	}

	return b.RenderPage(site.Template, site.Path, page)
}

func buildSitePage(siteID string, groups []model.Group, week *WeekAssignments, calc *rotation.Calculator) (*SitePage, error) {
	assignments := make(map[string]map[string]string, len(week.Groups))
	for _, ga := range week.Groups {
		assignments[ga.GroupID] = ga.Chores
	}

	choresData := make(map[string][2][]string, len(groups))
	for _, group := range groups {
		choresData[group.ID] = [2][]string{group.ChoreIDs(), group.People}
	}
	choresJSON, err := json.Marshal(choresData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chores data: %w", err)
	}

	return &SitePage{
		SiteID:      siteID,
		Groups:      groups,
		Assignments: assignments,
		WeekLabel:   week.WeekLabel(),
		Offset:      week.Offset,
		Epoch:       calc.Epoch().Format(config.DateFormat),
		ChoresJSON:  template.JS(choresJSON),
	}, nil
}
