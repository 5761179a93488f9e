// Package bootstrap brings up process infrastructure before the bot starts:
// logging first, then the optional database with its migrations and seed data.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/nedz/interviewbot/core/config"
	coredatabase "github.com/nedz/interviewbot/core/database"
	"github.com/nedz/interviewbot/core/logger"
)

// Seeder loads reference data once migrations are applied.
type Seeder interface {
	Seed(ctx context.Context, db *sqlx.DB) error
}

// SeederFunc adapts a function to Seeder.
type SeederFunc func(ctx context.Context, db *sqlx.DB) error

// Seed calls f.
func (f SeederFunc) Seed(ctx context.Context, db *sqlx.DB) error { return f(ctx, db) }

// Options control the bootstrap pipeline. Nil hooks select the real implementations.
type Options struct {
	Config *coreconfig.Config
	// Database is optional; nil skips connect, migrate and seed.
	Database *coredatabase.Config
	Seeders  []Seeder

	LoggerInit func(*coreconfig.Config) error
	Connect    func(context.Context, coredatabase.Config) (*sqlx.DB, error)
	Migrate    func(context.Context, coredatabase.Config) error
}

func (o *Options) fill() {
	if o.LoggerInit == nil {
		o.LoggerInit = logger.InitLogger
	}
	if o.Connect == nil {
		o.Connect = coredatabase.Connect
	}
	if o.Migrate == nil {
		o.Migrate = coredatabase.RunMigrations
	}
}

// Result holds what Run brought up. DB is nil without a database.
type Result struct {
	DB *sqlx.DB
}

// Close releases the database handle if one was opened.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// Run initializes the logger and, when a database is configured, connects,
// applies migrations and runs seeders in order. The handle is closed again if
// any later stage fails.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, errors.New("bootstrap: nil config provided")
	}
	opts.fill()

	if err := opts.LoggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}
	if opts.Database == nil {
		logger.Debug(ctx, "bootstrap", "db.skip", slog.String("status", "skip"))
		return &Result{}, nil
	}

	start := time.Now()
	db, err := opts.Connect(ctx, *opts.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}
	if err := prepare(ctx, db, opts); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info(ctx, "bootstrap", "db.ready",
		slog.String("status", "ok"),
		slog.Int("count", len(opts.Seeders)),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	)
	return &Result{DB: db}, nil
}

// prepare migrates the schema and runs seeders against db.
func prepare(ctx context.Context, db *sqlx.DB, opts Options) error {
	if err := opts.Migrate(ctx, *opts.Database); err != nil {
		return fmt.Errorf("bootstrap: migrations failed: %w", err)
	}
	for i, s := range opts.Seeders {
		if s == nil {
			continue
		}
		if err := s.Seed(ctx, db); err != nil {
			return fmt.Errorf("bootstrap: seeder %d failed: %w", i, err)
		}
	}
	return nil
}
