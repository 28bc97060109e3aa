package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/core/model"
	"github.com/choreworld/choreworld/pkg/core/rotation"
)

const testGroupsYAML = `main:
  chores:
    - dishes
    - trash
    - bins
  people:
    - Alice
    - Bob
    - Carol
`

// fixedCalculator pins "now" so the current week is deterministic.
func fixedCalculator(now time.Time) *rotation.Calculator {
	return rotation.NewCalculator(rotation.DefaultEpoch, func() time.Time { return now })
}

func testGroups() []model.Group {
	return []model.Group{
		{
			ID:   "main",
			Name: "Main",
			Chores: []model.Chore{
				{ID: "dishes", Name: "Dishes"},
				{ID: "trash", Name: "Trash"},
				{ID: "bins", Name: "Bins"},
			},
			People: []string{"Alice", "Bob", "Carol"},
		},
		{
			ID:     "upstairs",
			Name:   "Upstairs",
			Chores: []model.Chore{{ID: "bathroom", Name: "Bathroom"}},
			People: []string{"Dave"},
		},
	}
}

// writeGroupsFile writes the standard test group config and returns its path.
func writeGroupsFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testGroupsYAML), 0o644))
	return path
}

// testConfig builds a config with a single site backed by groupsPath. All
// paths are absolute so no base-dir resolution is involved.
func testConfig(groupsPath string) *config.Config {
	return &config.Config{
		Timezone:    "UTC",
		TemplateDir: "templates",
		Sites: []config.Site{
			{ID: "chch", Groups: groupsPath, Template: "chch.gohtml", Path: "/"},
		},
	}
}
