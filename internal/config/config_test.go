package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Timezone:    "Pacific/Auckland",
		Epoch:       "2021-04-11",
		Domain:      "chore.world",
		NtfyHost:    "https://ntfy.sh",
		TemplateDir: "templates",
		StaticDirs:  []string{"static", "assets"},
		Sites: []Site{
			{ID: "chch", Groups: "chch.yaml", Template: "chch.gohtml", Path: "/"},
			{ID: "welly", Groups: "welly.yaml", Template: "welly.gohtml", Path: "/welly"},
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.BinSchedule = &BinSchedule{
		FirstWeek:   "2023-02-15",
		Constant:    "green",
		Alternating: []string{"yellow", "red"},
		SiteID:      "chch",
		GroupID:     "main",
		ChoreID:     "bins",
	}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		Timezone:    "UTC",
		TemplateDir: "templates",
		Sites:       []Site{{ID: "main", Groups: "main.yaml", Template: "main.gohtml", Path: "/"}},
	}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := validConfig()
	cfg.TemplateDir = ""

	assert.Error(t, Validate(cfg))
}

func TestValidate_NoSites(t *testing.T) {
	cfg := validConfig()
	cfg.Sites = nil

	assert.Error(t, Validate(cfg))
}

func TestValidate_BadTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Pacific/Nowhere"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
}

func TestValidate_EpochNotASunday(t *testing.T) {
	cfg := validConfig()
	cfg.Epoch = "2021-04-12" // a Monday

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sunday")
}

func TestValidate_BadEpochFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Epoch = "11/04/2021"

	assert.Error(t, Validate(cfg))
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "choreworld.yaml")

	content := `timezone: Pacific/Auckland
epoch: "2021-04-11"
domain: chore.world
templateDir: templates
staticDirs:
  - static
sites:
  - id: chch
    groups: chch.yaml
    template: chch.gohtml
    path: /
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "Pacific/Auckland", cfg.Timezone)
	assert.Equal(t, "chore.world", cfg.Domain)
	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, "chch", cfg.Sites[0].ID)

	// Relative paths resolve against the config file's directory
	assert.Equal(t, filepath.Join(dir, "templates"), cfg.ResolvePath(cfg.TemplateDir))
	assert.Equal(t, "/abs/path", cfg.ResolvePath("/abs/path"))
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choreworld.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: [unclosed"), 0o644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestEpochDate(t *testing.T) {
	fallback := time.Date(2021, time.April, 11, 0, 0, 0, 0, time.UTC)

	cfg := validConfig()
	cfg.Epoch = "2024-01-07"
	assert.Equal(t, time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), cfg.EpochDate(fallback))

	cfg.Epoch = ""
	assert.Equal(t, fallback, cfg.EpochDate(fallback))
}

func TestLocation(t *testing.T) {
	cfg := validConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Pacific/Auckland", loc.String())
}
