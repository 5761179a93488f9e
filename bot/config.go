package bot

import (
	"fmt"
	"strings"

	coreconfig "github.com/nedz/interviewbot/core/config"
	coredatabase "github.com/nedz/interviewbot/core/database"
)

// Question sources.
const (
	SourceFile     = "file"
	SourceDatabase = "database"
)

const defaultQuestionsFile = "questions.txt"

// QuestionsConfig selects where the question list is loaded from.
type QuestionsConfig struct {
	Source string `yaml:"source" envconfig:"QUESTIONS_SOURCE"`
	File   string `yaml:"file" envconfig:"QUESTIONS_FILE"`
	// SeedFile fills an empty questions table before loading from the database.
	SeedFile string `yaml:"seed_file" envconfig:"QUESTIONS_SEED_FILE"`
}

// MetricsConfig configures the Prometheus endpoint. Empty Listen disables it.
type MetricsConfig struct {
	Listen string `yaml:"listen" envconfig:"METRICS_LISTEN"`
}

// Config is the application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Questions QuestionsConfig     `yaml:"questions"`
	Database  coredatabase.Config `yaml:"database"`
	Metrics   MetricsConfig       `yaml:"metrics"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// UsesDatabase reports whether questions come from Postgres.
func (c *Config) UsesDatabase() bool {
	return c != nil && c.Questions.Source == SourceDatabase
}

// Load reads the YAML file at path, applies env overrides and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates core settings and fills question source defaults.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}

	q := &c.Questions
	q.Source = strings.ToLower(strings.TrimSpace(q.Source))
	q.File = strings.TrimSpace(q.File)
	q.SeedFile = strings.TrimSpace(q.SeedFile)
	switch q.Source {
	case "", SourceFile:
		q.Source = SourceFile
		if q.File == "" {
			q.File = defaultQuestionsFile
		}
	case SourceDatabase:
		if strings.TrimSpace(c.Database.Host) == "" || strings.TrimSpace(c.Database.Name) == "" {
			return fmt.Errorf("database.host and database.name are required when questions.source is 'database'")
		}
		if c.Database.Port == "" {
			c.Database.Port = "5432"
		}
	default:
		return fmt.Errorf("invalid questions.source %q; allowed: file, database", c.Questions.Source)
	}
	c.Metrics.Listen = strings.TrimSpace(c.Metrics.Listen)
	return nil
}
