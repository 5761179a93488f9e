package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nedz/interviewbot/core/bootstrap"
	"github.com/nedz/interviewbot/core/buildinfo"
	"github.com/nedz/interviewbot/core/logger"
	"github.com/nedz/interviewbot/core/metrics"
	coretelegram "github.com/nedz/interviewbot/core/telegram"
	"github.com/nedz/interviewbot/core/telegram/router"
	"github.com/nedz/interviewbot/interview"
	"github.com/nedz/interviewbot/interview/questions"
	"github.com/nedz/interviewbot/interview/session"
)

const component = "app"

// App holds the wired interview bot.
type App struct {
	cfg      *Config
	infra    *bootstrap.Result
	ctrl     *interview.Controller
	registry *coretelegram.Registry
	metrics  *metrics.Server
}

// Bootstrap initializes logging and storage, loads the question list and wires the bot.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config")
	}

	opts := bootstrap.Options{Config: &cfg.Config}
	if cfg.UsesDatabase() {
		opts.Database = &cfg.Database
		if cfg.Questions.SeedFile != "" {
			opts.Seeders = append(opts.Seeders, fileSeeder(cfg.Questions.SeedFile))
		}
	}
	infra, err := bootstrap.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	list, err := loadQuestions(ctx, cfg, infra.DB)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}

	app, err := New(cfg, list)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	app.infra = infra
	return app, nil
}

// New wires the controller and command registry around an already loaded list.
func New(cfg *Config, list questions.List) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config")
	}
	if list.Len() == 0 {
		return nil, questions.ErrNoQuestions
	}
	ctrl := interview.NewController(session.NewMemoryStore(nil), list)
	reg := coretelegram.NewRegistry()
	if err := registerCommands(reg, NewHandlers(ctrl)); err != nil {
		return nil, err
	}
	return &App{cfg: cfg, ctrl: ctrl, registry: reg}, nil
}

func loadQuestions(ctx context.Context, cfg *Config, db *sqlx.DB) (questions.List, error) {
	if cfg.UsesDatabase() {
		return questions.LoadDB(ctx, db)
	}
	return questions.LoadFile(cfg.Questions.File)
}

func fileSeeder(path string) bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context, db *sqlx.DB) error {
		list, err := questions.LoadFile(path)
		if err != nil {
			return err
		}
		_, err = questions.Seed(ctx, db, list)
		return err
	})
}

// Controller exposes the interview controller.
func (a *App) Controller() *interview.Controller {
	return a.ctrl
}

// TelegramRunOptions assembles middlewares, routes and lifecycle hooks.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.CreatorID,
	})
	routes = append(routes, router.TextRoute(a.registry, router.TextOptions{}))

	return coretelegram.RunOptions{
		Config:      &a.cfg.Config,
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(),
		Routes:      routes,
		// Every interview interaction is a plain message.
		AllowedUpdates: []string{"message"},
		OnStart:        a.onStart,
		OnStop:         a.onStop,
	}, nil
}

func (a *App) onStart(ctx context.Context, rt coretelegram.Runtime) error {
	if rt.Bot != nil && rt.Bot.Me != nil {
		want := strings.TrimPrefix(a.cfg.Telegram.BotUsername, "@")
		if want != "" && !strings.EqualFold(want, rt.Bot.Me.Username) {
			logger.Warn(ctx, component, "bot.username.mismatch",
				slog.String("configured", want),
				slog.String("actual", rt.Bot.Me.Username),
			)
		}
	}

	if a.cfg.Metrics.Listen != "" {
		build := buildinfo.Current()
		metrics.RecordBuild(build.Version, build.Commit)
		srv, err := metrics.Start(a.cfg.Metrics.Listen)
		if err != nil {
			return err
		}
		a.metrics = srv
	}

	logger.Info(ctx, component, "interview.ready",
		slog.String("status", "ok"),
		slog.String("source", a.cfg.Questions.Source),
		slog.Int("count", a.ctrl.Questions().Len()),
	)
	return nil
}

func (a *App) onStop(ctx context.Context, _ coretelegram.Runtime) error {
	stats := a.ctrl.Stats()
	logger.Info(ctx, component, "interview.stopped",
		slog.Int("sessions", stats.Sessions),
		slog.Int("started", stats.Started),
	)
	if a.metrics == nil {
		return nil
	}
	err := a.metrics.Shutdown(ctx)
	a.metrics = nil
	return err
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	return a.infra.Close()
}
