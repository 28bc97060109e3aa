package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const configFileName = "choreworld.yaml"

// DateFormat is the layout for all dates in config files.
const DateFormat = "2006-01-02"

// BinSchedule describes the council bin cadence: one bin goes out every
// week, the other two alternate week on, week off.
type BinSchedule struct {
	// FirstWeek anchors the alternation: during the week containing this
	// date, Constant and Alternating[0] went out.
	FirstWeek   string   `yaml:"firstWeek" validate:"required,datetime=2006-01-02"`
	Constant    string   `yaml:"constant" validate:"required"`
	Alternating []string `yaml:"alternating" validate:"required,len=2,dive,required"`
	// SiteID/GroupID/ChoreID name the chore whose assignee gets the
	// bin-night reminder.
	SiteID  string `yaml:"siteID" validate:"required"`
	GroupID string `yaml:"groupID" validate:"required"`
	ChoreID string `yaml:"choreID" validate:"required"`
}

// Site is one rendered page of the generated site.
type Site struct {
	ID       string `yaml:"id" validate:"required"`
	Groups   string `yaml:"groups" validate:"required"`   // group config file
	Template string `yaml:"template" validate:"required"` // template name
	Path     string `yaml:"path" validate:"required"`     // URL path, e.g. "/" or "/welly"
}

// Config is the root application configuration (choreworld.yaml).
type Config struct {
	Timezone    string       `yaml:"timezone" validate:"required"`
	Epoch       string       `yaml:"epoch,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Domain      string       `yaml:"domain,omitempty" validate:"omitempty,fqdn"`
	NtfyHost    string       `yaml:"ntfyHost,omitempty" validate:"omitempty,url"`
	TemplateDir string       `yaml:"templateDir" validate:"required"`
	StaticDirs  []string     `yaml:"staticDirs,omitempty"`
	BinSchedule *BinSchedule `yaml:"binSchedule,omitempty"`
	Sites       []Site       `yaml:"sites" validate:"required,min=1,dive"`

	// baseDir is the directory the config was loaded from; relative paths
	// in the config resolve against it.
	baseDir string
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from choreworld.yaml, looking
// in the current directory first and then in the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.baseDir = filepath.Dir(path)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and the date fields that the
// struct tags cannot fully express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	if cfg.Epoch != "" {
		epoch, err := time.Parse(DateFormat, cfg.Epoch)
		if err != nil {
			return fmt.Errorf("invalid epoch date: %w", err)
		}
		if epoch.Weekday() != time.Sunday {
			return fmt.Errorf("epoch %s is a %s, must be a Sunday", cfg.Epoch, epoch.Weekday())
		}
	}

	return nil
}

// EpochDate returns the configured epoch, or rotation's default when unset.
// Validate has already checked the format, so a parse failure here is a
// programming error.
func (c *Config) EpochDate(fallback time.Time) time.Time {
	if c.Epoch == "" {
		return fallback
	}
	epoch, err := time.Parse(DateFormat, c.Epoch)
	if err != nil {
		return fallback
	}
	return epoch
}

// Location returns the configured IANA timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// ResolvePath resolves a config-relative path against the config file's
// directory. Absolute paths pass through unchanged.
func (c *Config) ResolvePath(path string) string {
	if filepath.IsAbs(path) || c.baseDir == "" {
		return path
	}
	return filepath.Join(c.baseDir, path)
}

// findConfigFile searches for choreworld.yaml in the current directory and
// then the home directory.
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
