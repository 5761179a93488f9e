package bot

import (
	"context"
	"fmt"

	coretelegram "github.com/nedz/interviewbot/core/telegram"
	"github.com/nedz/interviewbot/core/telegram/commands"
	tghelpers "github.com/nedz/interviewbot/core/telegram/helpers"
	"github.com/nedz/interviewbot/core/telegram/keyboard"
	"github.com/nedz/interviewbot/interview"

	tele "gopkg.in/telebot.v4"
)

// Handlers adapts telebot updates to the interview controller.
type Handlers struct {
	ctrl     *interview.Controller
	keyboard *tele.ReplyMarkup
}

// NewHandlers creates handlers replying with a /next, /end keyboard.
func NewHandlers(ctrl *interview.Controller) *Handlers {
	return &Handlers{
		ctrl: ctrl,
		keyboard: keyboard.ReplyButtons(
			[]string{interview.CommandNext.Trigger(), interview.CommandEnd.Trigger()},
		),
	}
}

// Command returns the handler for an interview command.
func (h *Handlers) Command(cmd interview.Command) tele.HandlerFunc {
	return func(c tele.Context) error {
		user, chat := c.Sender(), c.Chat()
		if user == nil || chat == nil {
			return nil
		}
		ev := interview.Event{UserID: user.ID, ChatID: chat.ID, Command: cmd}
		return h.ctrl.Handle(tghelpers.BuildContext(c), ev, h.replyTo(c))
	}
}

func (h *Handlers) replyTo(c tele.Context) interview.Sender {
	return interview.SenderFunc(func(_ context.Context, chatID int64, text string) error {
		return tghelpers.SendTextTo(c, chatID, text, &tele.SendOptions{ReplyMarkup: h.keyboard})
	})
}

// Stats reports store counters and the question list size.
func (h *Handlers) Stats(c tele.Context) error {
	st := h.ctrl.Stats()
	text := fmt.Sprintf("Sessions: %d\nStarted: %d\nQuestions: %d",
		st.Sessions, st.Started, h.ctrl.Questions().Len())
	return tghelpers.SendText(c, text)
}

func registerCommands(reg *coretelegram.Registry, h *Handlers) error {
	defs := []struct {
		name string
		cmd  commands.Command
	}{
		{interview.CommandStart.Trigger(), commands.Command{
			Handler:     h.Command(interview.CommandStart),
			Description: "Start the interview",
			Aliases:     []string{"start"},
		}},
		{interview.CommandNext.Trigger(), commands.Command{
			Handler:     h.Command(interview.CommandNext),
			Description: "Next question",
		}},
		{interview.CommandEnd.Trigger(), commands.Command{
			Handler:     h.Command(interview.CommandEnd),
			Description: "End the interview",
		}},
		{"/stats", commands.Command{
			Handler:     h.Stats,
			Description: "Session statistics",
			AdminOnly:   true,
			Hidden:      true,
		}},
	}
	for _, d := range defs {
		if err := reg.RegisterCommand(d.name, d.cmd); err != nil {
			return fmt.Errorf("bot: register %s: %w", d.name, err)
		}
	}
	return nil
}
