package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simtask/simtask/internal/clierr"
	"github.com/simtask/simtask/internal/config"
	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change settings",
	Long: `Reads and changes simtask settings.

Keys:
  notifications.enabled   schedule reminders on create/edit (true/false)
  notifications.tts       read fired reminders aloud (true/false)
  reminders.advance_days  days before the due date for the advance reminder
  reminders.same_day_hours  hours before the due time for the same-day reminder
  reminders.default_time  time of day for tasks without one (HH:MM)
  theme                   light, dark, or auto
  language                speech language code (e.g. en)`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Print one setting, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configKeys maps settable key names to getters and setters on the config.
// Setters validate before assigning.
var configKeys = map[string]struct {
	get func(*config.Config) string
	set func(*config.Config, string) error
}{
	"notifications.enabled": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Notify.Enabled) },
		set: func(c *config.Config, v string) error { return setBool(&c.Notify.Enabled, v) },
	},
	"notifications.tts": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Notify.TTS) },
		set: func(c *config.Config, v string) error { return setBool(&c.Notify.TTS, v) },
	},
	"reminders.advance_days": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Reminders.AdvanceDays) },
		set: func(c *config.Config, v string) error { return setPositiveInt(&c.Reminders.AdvanceDays, v) },
	},
	"reminders.same_day_hours": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Reminders.SameDayHours) },
		set: func(c *config.Config, v string) error { return setPositiveInt(&c.Reminders.SameDayHours, v) },
	},
	"reminders.default_time": {
		get: func(c *config.Config) string { return c.Reminders.DefaultTime },
		set: func(c *config.Config, v string) error {
			if _, err := date.ParseClock(v); err != nil {
				return clierr.Newf(clierr.InvalidTime, "invalid time: %v", err)
			}
			c.Reminders.DefaultTime = v
			return nil
		},
	},
	"theme": {
		get: func(c *config.Config) string { return c.Theme },
		set: func(c *config.Config, v string) error {
			for _, t := range config.Themes {
				if t == v {
					c.Theme = v
					return nil
				}
			}
			return clierr.Newf(clierr.InvalidInput, "invalid theme %q (light, dark, auto)", v)
		},
	},
	"language": {
		get: func(c *config.Config) string { return c.Language },
		set: func(c *config.Config, v string) error {
			if strings.TrimSpace(v) == "" {
				return clierr.New(clierr.InvalidInput, "language must not be empty")
			}
			c.Language = v
			return nil
		},
	},
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, allSettings(cfg))
		}
		for _, key := range sortedKeys() {
			output.Messagef(os.Stdout, "%-26s %s", key, configKeys[key].get(cfg))
		}
		return nil
	}

	entry, ok := configKeys[args[0]]
	if !ok {
		return unknownKeyErr(args[0])
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{args[0]: entry.get(cfg)})
	}
	fmt.Println(entry.get(cfg))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entry, ok := configKeys[key]
	if !ok {
		return unknownKeyErr(key)
	}
	if err := entry.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{key: entry.get(cfg)})
	}
	output.Messagef(os.Stdout, "%s = %s", key, entry.get(cfg))
	return nil
}

func allSettings(cfg *config.Config) map[string]string {
	m := make(map[string]string, len(configKeys))
	for key, entry := range configKeys {
		m[key] = entry.get(cfg)
	}
	return m
}

func sortedKeys() []string {
	return []string{
		"notifications.enabled",
		"notifications.tts",
		"reminders.advance_days",
		"reminders.same_day_hours",
		"reminders.default_time",
		"theme",
		"language",
	}
}

func unknownKeyErr(key string) error {
	return clierr.Newf(clierr.InvalidInput, "unknown setting %q", key).
		WithDetails(map[string]any{"allowed": sortedKeys()})
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return clierr.Newf(clierr.InvalidInput, "expected true or false, got %q", v)
	}
	*dst = b
	return nil
}

func setPositiveInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return clierr.Newf(clierr.InvalidInput, "expected a positive integer, got %q", v)
	}
	*dst = n
	return nil
}
