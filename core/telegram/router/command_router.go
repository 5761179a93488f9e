package router

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/nedz/interviewbot/core/logger"
	tg "github.com/nedz/interviewbot/core/telegram"
	"github.com/nedz/interviewbot/core/telegram/commands"
	"github.com/nedz/interviewbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	// AdminID is the only user allowed through AdminOnly commands; 0 rejects everyone.
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes binds every registered command to its slash endpoint. Each
// handler is wrapped with recover, update logging, a handler summary and,
// for admin commands, the access check.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}
	adminOnly := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		AdminID:  opts.AdminID,
		OnReject: opts.OnAdminReject,
	})

	cmds := reg.Commands()
	routes := make([]tg.Route, 0, len(cmds))
	for endpoint, cmd := range cmds {
		routes = append(routes, tg.Route{
			Endpoint: endpoint,
			Handler:  wrapCommand(endpoint, cmd, adminOnly),
		})
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Endpoint.(string) < routes[j].Endpoint.(string)
	})

	logger.Info(context.Background(), "tg.wire", "routes.commands",
		slog.String("status", "ok"),
		slog.Int("count", len(routes)),
	)
	return routes
}

func wrapCommand(endpoint string, cmd commands.Command, adminOnly tele.MiddlewareFunc) tele.HandlerFunc {
	name := handlerName(endpoint)
	inner := cmd.Handler
	h := func(c tele.Context) error {
		return summary{handler: name, start: time.Now()}.run(c, inner)
	}
	h = middleware.LoggerMiddleware(middleware.RecoverMiddleware(h))
	if cmd.AdminOnly {
		h = adminOnly(h)
	}
	return h
}
