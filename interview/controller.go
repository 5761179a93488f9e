package interview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nedz/interviewbot/core/logger"
	"github.com/nedz/interviewbot/core/metrics"
	"github.com/nedz/interviewbot/interview/questions"
	"github.com/nedz/interviewbot/interview/session"
)

const component = "service.interview"

// Event is an inbound command issued by a user in a chat.
type Event struct {
	UserID  int64
	ChatID  int64
	Command Command
}

// Sender delivers a single text message to a chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, chatID int64, text string) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, chatID int64, text string) error {
	return f(ctx, chatID, text)
}

// Controller applies commands to user sessions.
type Controller struct {
	store     session.Store
	questions questions.List
}

// NewController wires the controller to its store and question list.
func NewController(store session.Store, list questions.List) *Controller {
	return &Controller{
		store:     store,
		questions: list,
	}
}

// Result describes what Handle did for a single event.
type Result struct {
	From        session.State
	To          session.State
	Action      Action
	Reply       string
	Remaining   int
	InterviewID string
}

// Handle applies ev to the user's session and sends exactly one reply through out.
// Session state is updated before the reply is sent and is not rolled back
// if sending fails.
func (c *Controller) Handle(ctx context.Context, ev Event, out Sender) error {
	if out == nil {
		return fmt.Errorf("interview: nil sender")
	}
	res, err := c.Apply(ctx, ev)
	if err != nil {
		return err
	}
	if err := out.Send(ctx, ev.ChatID, res.Reply); err != nil {
		return fmt.Errorf("interview: send reply: %w", err)
	}
	return nil
}

// Apply runs the state transition for ev under the user's lock and returns the reply
// without sending it.
func (c *Controller) Apply(ctx context.Context, ev Event) (Result, error) {
	if !ev.Command.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, ev.Command)
	}

	res, err := c.apply(ev)
	if err != nil {
		return Result{}, err
	}

	metrics.RecordCommand(string(ev.Command), string(res.Action))
	switch {
	case res.From != session.Started && res.To == session.Started:
		metrics.SessionsStarted.Inc()
	case res.From == session.Started && res.To != session.Started:
		metrics.SessionsStarted.Dec()
	}

	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("command", string(ev.Command)),
		slog.String("from_state", string(res.From)),
		slog.String("to_state", string(res.To)),
		slog.String("action", string(res.Action)),
		slog.Int64("user_id", ev.UserID),
		slog.Int("remaining", res.Remaining),
	}
	if res.InterviewID != "" {
		attrs = append(attrs, slog.String("interview_id", res.InterviewID))
	}
	logger.Info(ctx, component, "interview.command", attrs...)

	return res, nil
}

func (c *Controller) apply(ev Event) (Result, error) {
	unlock := c.store.Lock(ev.UserID)
	defer unlock()

	from := c.store.GetState(ev.UserID)
	step, err := Transition(from, ev.Command, c.store.Remaining(ev.UserID) == 0)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", err, ev.Command)
	}

	res := Result{From: from, To: step.Next, Action: step.Action, Reply: step.Reply}
	switch step.Action {
	case ActionStart:
		sess := c.store.Start(ev.UserID, c.questions)
		res.InterviewID = sess.InterviewID
	case ActionEnd:
		c.store.End(ev.UserID)
	case ActionDraw:
		q, ok := c.store.Draw(ev.UserID)
		if !ok {
			res.Action = ActionNone
			res.Reply = ReplyNoQuestions
			break
		}
		res.Reply = q
	}

	if res.To == session.Started {
		res.Remaining = c.store.Remaining(ev.UserID)
		if res.InterviewID == "" {
			if snap, ok := c.store.Snapshot(ev.UserID); ok {
				res.InterviewID = snap.InterviewID
			}
		}
	}
	return res, nil
}

// Questions returns the global question list.
func (c *Controller) Questions() questions.List {
	return c.questions
}

// Stats exposes store counters.
func (c *Controller) Stats() session.Stats {
	return c.store.Stats()
}
