package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/core/model"
)

// Endpoints maps site ID → person → ntfy endpoint URL.
type Endpoints map[string]map[string]string

// LoadEndpoints reads an endpoints file written by NtfyURLs.
func LoadEndpoints(path string) (Endpoints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoints file: %w", err)
	}

	var endpoints Endpoints
	if err := json.Unmarshal(data, &endpoints); err != nil {
		return nil, fmt.Errorf("failed to parse endpoints file: %w", err)
	}
	return endpoints, nil
}

// NtfyURLs builds one private ntfy endpoint per person per site, keeping any
// endpoint already present in existing so regenerating the file never
// invalidates subscriptions people have already set up.
func NtfyURLs(cfg *config.Config, host string, existing Endpoints, logger *zap.Logger) (Endpoints, error) {
	endpoints := make(Endpoints, len(cfg.Sites))

	for _, site := range cfg.Sites {
		groups, err := config.LoadGroups(cfg.ResolvePath(site.Groups))
		if err != nil {
			return nil, err
		}

		siteEndpoints := make(map[string]string)
		existingSite := existing[site.ID]
		kept, minted := 0, 0
		for _, person := range uniquePeople(groups) {
			if endpoint, ok := existingSite[person]; ok {
				siteEndpoints[person] = endpoint
				kept++
				continue
			}
			siteEndpoints[person] = fmt.Sprintf("%s/%s", trimTrailingSlash(host), uuid.New())
			minted++
		}
		endpoints[site.ID] = siteEndpoints

		logger.Info("Built endpoints for site",
			zap.String("site", site.ID),
			zap.Int("kept", kept),
			zap.Int("minted", minted))
	}

	return endpoints, nil
}

// uniquePeople collects every person across the groups, first occurrence
// first.
func uniquePeople(groups []model.Group) []string {
	seen := make(map[string]bool)
	var people []string
	for _, group := range groups {
		for _, person := range group.People {
			if !seen[person] {
				seen[person] = true
				people = append(people, person)
			}
		}
	}
	return people
}

func trimTrailingSlash(host string) string {
	for len(host) > 0 && host[len(host)-1] == '/' {
		host = host[:len(host)-1]
	}
	return host
}
