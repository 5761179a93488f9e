// Package interview implements the interview state machine and question dispensing.
package interview

import "errors"

// ErrUnknownCommand is returned for commands outside start, next and end.
var ErrUnknownCommand = errors.New("interview: unknown command")

// Command is a logical operation a user can trigger.
type Command string

const (
	// CommandStart begins (or restarts) an interview.
	CommandStart Command = "start"
	// CommandNext requests the next random question.
	CommandNext Command = "next"
	// CommandEnd finishes the interview.
	CommandEnd Command = "end"
)

// Telegram triggers for the logical commands.
const (
	TriggerStart = "/interview"
	TriggerNext  = "/next"
	TriggerEnd   = "/end"
)

// Trigger returns the user-visible command for c.
func (c Command) Trigger() string {
	switch c {
	case CommandStart:
		return TriggerStart
	case CommandNext:
		return TriggerNext
	case CommandEnd:
		return TriggerEnd
	}
	return ""
}

// Valid reports whether c is one of the known commands.
func (c Command) Valid() bool {
	return c.Trigger() != ""
}
