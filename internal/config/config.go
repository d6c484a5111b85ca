package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/simtask/simtask/internal/clierr"
	"github.com/simtask/simtask/internal/date"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no simtask directory found (run 'simtask init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the simtask application configuration.
type Config struct {
	Version   int             `yaml:"version"`
	TasksDir  string          `yaml:"tasks_dir"`
	AlertsDir string          `yaml:"alerts_dir"`
	Notify    NotifyConfig    `yaml:"notifications"`
	Reminders RemindersConfig `yaml:"reminders"`
	Theme     string          `yaml:"theme"`
	Language  string          `yaml:"language"`

	// dir is the absolute path to the simtask directory (not serialized).
	dir string `yaml:"-"`
}

// NotifyConfig holds notification and speech delivery settings.
type NotifyConfig struct {
	Enabled bool `yaml:"enabled"`
	TTS     bool `yaml:"tts"`
}

// RemindersConfig holds the reminder scheduling policy.
type RemindersConfig struct {
	AdvanceDays  int    `yaml:"advance_days"`
	SameDayHours int    `yaml:"same_day_hours"`
	DefaultTime  string `yaml:"default_time"`
}

// Dir returns the absolute path to the simtask directory.
func (c *Config) Dir() string {
	return c.dir
}

// TasksPath returns the absolute path to the tasks directory.
func (c *Config) TasksPath() string {
	return filepath.Join(c.dir, c.TasksDir)
}

// AlertsPath returns the absolute path to the alerts spool directory.
func (c *Config) AlertsPath() string {
	return filepath.Join(c.dir, c.AlertsDir)
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// SetDir sets the simtask directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:   CurrentVersion,
		TasksDir:  DefaultTasksDir,
		AlertsDir: DefaultAlertsDir,
		Notify:    NotifyConfig{Enabled: true, TTS: true},
		Reminders: RemindersConfig{
			AdvanceDays:  DefaultAdvanceDays,
			SameDayHours: DefaultSameDayHours,
			DefaultTime:  DefaultReminderTime,
		},
		Theme:    DefaultTheme,
		Language: DefaultLanguage,
	}
}

// DefaultClock parses the configured default reminder time of day.
// Falls back to DefaultReminderTime if the field is unparseable.
func (c *Config) DefaultClock() date.Clock {
	clk, err := date.ParseClock(c.Reminders.DefaultTime)
	if err != nil {
		clk, _ = date.ParseClock(DefaultReminderTime)
	}
	return clk
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.TasksDir == "" {
		return fmt.Errorf("%w: tasks_dir is required", ErrInvalid)
	}
	if c.AlertsDir == "" {
		return fmt.Errorf("%w: alerts_dir is required", ErrInvalid)
	}
	if c.Reminders.AdvanceDays < 1 {
		return fmt.Errorf("%w: reminders.advance_days must be >= 1", ErrInvalid)
	}
	if c.Reminders.SameDayHours < 1 {
		return fmt.Errorf("%w: reminders.same_day_hours must be >= 1", ErrInvalid)
	}
	if _, err := date.ParseClock(c.Reminders.DefaultTime); err != nil {
		return fmt.Errorf("%w: reminders.default_time: %w", ErrInvalid, err)
	}
	if !contains(Themes, c.Theme) {
		return fmt.Errorf("%w: theme %q not one of light, dark, auto", ErrInvalid, c.Theme)
	}
	if c.Language == "" {
		return fmt.Errorf("%w: language is required", ErrInvalid)
	}
	return nil
}

// Init creates a new simtask directory with default settings.
// It creates the directory, tasks and alerts subdirectories, and config file.
func Init(dir string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(cfg.TasksPath(), dirMode); err != nil {
		return nil, fmt.Errorf("creating tasks directory: %w", err)
	}
	if err := os.MkdirAll(cfg.AlertsPath(), dirMode); err != nil {
		return nil, fmt.Errorf("creating alerts directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given simtask directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a simtask directory
// containing config.yml. Returns the absolute path to the simtask directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the simtask directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.AppNotFound,
				"no simtask directory found (run 'simtask init' to create one)")
		}
		dir = parent
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
