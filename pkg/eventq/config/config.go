// Package config defines the settings used to wire up a queue,
// consumer, and journal, loadable from YAML or JSON files.
package config

import (
	"fmt"
	"log/slog"
)

// Settings is the root configuration for an eventq deployment.
type Settings struct {
	Consumer ConsumerSettings `yaml:"consumer" json:"consumer"`
	Journal  JournalSettings  `yaml:"journal" json:"journal"`
	Logging  LoggingSettings  `yaml:"logging" json:"logging"`
}

// ConsumerSettings configures the consumer loop.
type ConsumerSettings struct {
	// Name identifies the consumer in logs and spans.
	Name string `yaml:"name" json:"name"`
}

// JournalSettings configures the failed-event journal.
type JournalSettings struct {
	// Driver selects the store: "memory" or "sqlite".
	Driver string `yaml:"driver" json:"driver"`

	// Path is the database file for the sqlite driver.
	Path string `yaml:"path" json:"path"`
}

// LoggingSettings configures structured logging.
type LoggingSettings struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level" json:"level"`
}

// Default returns the settings used when no file is provided.
func Default() Settings {
	return Settings{
		Consumer: ConsumerSettings{Name: "consumer"},
		Journal:  JournalSettings{Driver: "memory"},
		Logging:  LoggingSettings{Level: "info"},
	}
}

// Validate checks the settings for internal consistency.
func (s Settings) Validate() error {
	if s.Consumer.Name == "" {
		return fmt.Errorf("consumer.name is required")
	}

	switch s.Journal.Driver {
	case "memory":
	case "sqlite":
		if s.Journal.Path == "" {
			return fmt.Errorf("journal.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown journal.driver: %q", s.Journal.Driver)
	}

	if _, err := s.Logging.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LoggingSettings) SlogLevel() (slog.Level, error) {
	switch l.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown logging.level: %q", l.Level)
	}
}
