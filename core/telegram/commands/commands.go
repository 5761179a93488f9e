package commands

import (
	"slices"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Command is a registered bot command.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// AdminOnly commands run only for the configured creator and are never
	// reachable through plain-text aliases.
	AdminOnly bool
	// Hidden commands are left out of the Telegram command menu.
	Hidden  bool
	Aliases []string
}

// Listed reports whether the command belongs in the public command menu.
func (c Command) Listed() bool { return !c.Hidden && !c.AdminOnly }

// HasAlias reports whether name, with or without a leading slash, is one of
// the command aliases.
func (c Command) HasAlias(name string) bool {
	name = strings.TrimPrefix(name, "/")
	return slices.ContainsFunc(c.Aliases, func(a string) bool {
		return strings.EqualFold(strings.TrimPrefix(a, "/"), name)
	})
}
