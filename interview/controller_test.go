package interview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nedz/interviewbot/interview/questions"
	"github.com/nedz/interviewbot/interview/session"
)

type sentMessage struct {
	chatID int64
	text   string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (r *recordingSender) Send(_ context.Context, chatID int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMessage{chatID: chatID, text: text})
	return r.err
}

func (r *recordingSender) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, m := range r.sent {
		out = append(out, m.text)
	}
	return out
}

type harness struct {
	*Controller
	out *recordingSender
}

func (h harness) Handle(ctx context.Context, ev Event) error {
	return h.Controller.Handle(ctx, ev, h.out)
}

func newTestController(items ...string) (harness, session.Store, *recordingSender) {
	store := session.NewMemoryStore(nil)
	out := &recordingSender{}
	return harness{Controller: NewController(store, questions.New(items)), out: out}, store, out
}

func send(t *testing.T, c harness, user int64, cmd Command) {
	t.Helper()
	require.NoError(t, c.Handle(context.Background(), Event{UserID: user, ChatID: user * 10, Command: cmd}))
}

func TestInterviewScenario(t *testing.T) {
	c, _, out := newTestController("Q1", "Q2")

	send(t, c, 42, CommandStart)
	send(t, c, 42, CommandNext)
	send(t, c, 42, CommandNext)
	send(t, c, 42, CommandNext)
	send(t, c, 42, CommandEnd)
	send(t, c, 42, CommandNext)

	got := out.texts()
	require.Len(t, got, 6)
	assert.Equal(t, ReplyStarted, got[0])
	assert.ElementsMatch(t, []string{"Q1", "Q2"}, got[1:3])
	assert.Equal(t, ReplyNoQuestions, got[3])
	assert.Equal(t, ReplyThanks, got[4])
	assert.Equal(t, ReplyStartFirst, got[5])

	for _, m := range out.sent {
		assert.Equal(t, int64(420), m.chatID)
	}
}

func TestNextWhilePendingDoesNotCreateSession(t *testing.T) {
	c, store, out := newTestController("Q1")

	send(t, c, 7, CommandNext)
	send(t, c, 7, CommandNext)

	assert.Equal(t, []string{ReplyStartFirst, ReplyStartFirst}, out.texts())
	_, ok := store.Snapshot(7)
	assert.False(t, ok)
	assert.Equal(t, session.Pending, store.GetState(7))
}

func TestRepeatedStartKeepsPool(t *testing.T) {
	c, store, out := newTestController("Q1", "Q2", "Q3")

	send(t, c, 1, CommandStart)
	send(t, c, 1, CommandNext)
	before, ok := store.Snapshot(1)
	require.True(t, ok)

	send(t, c, 1, CommandStart)
	after, ok := store.Snapshot(1)
	require.True(t, ok)

	assert.Equal(t, ReplyAlreadyStarted, out.texts()[2])
	assert.Equal(t, session.Started, after.State)
	assert.ElementsMatch(t, before.Remaining, after.Remaining)
	assert.Equal(t, before.InterviewID, after.InterviewID)
}

func TestEndFromAnyState(t *testing.T) {
	c, store, out := newTestController("Q1")

	send(t, c, 1, CommandEnd)
	send(t, c, 2, CommandStart)
	send(t, c, 2, CommandEnd)

	assert.Equal(t, session.Pending, store.GetState(1))
	assert.Equal(t, session.Pending, store.GetState(2))
	texts := out.texts()
	assert.Equal(t, ReplyThanks, texts[0])
	assert.Equal(t, ReplyThanks, texts[2])
}

func TestExhaustedPoolIsIdempotent(t *testing.T) {
	c, store, out := newTestController("Q1")

	send(t, c, 3, CommandStart)
	send(t, c, 3, CommandNext)
	for i := 0; i < 3; i++ {
		send(t, c, 3, CommandNext)
		assert.Equal(t, 0, store.Remaining(3))
		assert.Equal(t, session.Started, store.GetState(3))
	}
	texts := out.texts()
	assert.Equal(t, "Q1", texts[1])
	for _, txt := range texts[2:] {
		assert.Equal(t, ReplyNoQuestions, txt)
	}
}

func TestNextNeverRepeatsWithinPeriod(t *testing.T) {
	items := []string{"A", "B", "C", "D", "E", "F", "G"}
	c, _, out := newTestController(items...)

	send(t, c, 5, CommandStart)
	for range items {
		send(t, c, 5, CommandNext)
	}
	assert.ElementsMatch(t, items, out.texts()[1:])

	// A new period starts from the full list again.
	send(t, c, 5, CommandEnd)
	send(t, c, 5, CommandStart)
	for range items {
		send(t, c, 5, CommandNext)
	}
	texts := out.texts()
	assert.ElementsMatch(t, items, texts[len(texts)-len(items):])
}

func TestConcurrentNextSameUser(t *testing.T) {
	for run := 0; run < 50; run++ {
		c, _, out := newTestController("Q1", "Q2")
		send(t, c, 1, CommandStart)

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = c.Handle(context.Background(), Event{UserID: 1, ChatID: 1, Command: CommandNext})
			}()
		}
		wg.Wait()

		assert.ElementsMatch(t, []string{"Q1", "Q2"}, out.texts()[1:])
	}
}

func TestUsersAreIndependent(t *testing.T) {
	c, store, _ := newTestController("Q1", "Q2")

	var wg sync.WaitGroup
	for user := int64(1); user <= 20; user++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = c.Handle(context.Background(), Event{UserID: id, ChatID: id, Command: CommandStart})
			_ = c.Handle(context.Background(), Event{UserID: id, ChatID: id, Command: CommandNext})
		}(user)
	}
	wg.Wait()

	for user := int64(1); user <= 20; user++ {
		assert.Equal(t, 1, store.Remaining(user))
	}
	assert.Equal(t, session.Stats{Sessions: 20, Started: 20}, c.Stats())
}

func TestSendFailureKeepsState(t *testing.T) {
	c, store, out := newTestController("Q1")
	out.err = errors.New("network down")

	err := c.Handle(context.Background(), Event{UserID: 1, ChatID: 1, Command: CommandStart})
	require.Error(t, err)
	assert.ErrorIs(t, err, out.err)
	assert.Equal(t, session.Started, store.GetState(1))
}

func TestHandleRequiresSender(t *testing.T) {
	c, store, _ := newTestController("Q1")

	err := c.Controller.Handle(context.Background(), Event{UserID: 1, ChatID: 1, Command: CommandStart}, nil)
	require.Error(t, err)
	assert.Equal(t, session.Pending, store.GetState(1))
}

func TestSenderFunc(t *testing.T) {
	c, _, _ := newTestController("Q1")
	var got []string
	out := SenderFunc(func(_ context.Context, chatID int64, text string) error {
		got = append(got, text)
		assert.Equal(t, int64(9), chatID)
		return nil
	})

	require.NoError(t, c.Controller.Handle(context.Background(), Event{UserID: 1, ChatID: 9, Command: CommandStart}, out))
	require.NoError(t, c.Controller.Handle(context.Background(), Event{UserID: 1, ChatID: 9, Command: CommandNext}, out))
	assert.Equal(t, []string{ReplyStarted, "Q1"}, got)
}

func TestUnknownCommand(t *testing.T) {
	c, _, out := newTestController("Q1")

	err := c.Handle(context.Background(), Event{UserID: 1, ChatID: 1, Command: "pause"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Empty(t, out.texts())
}

func TestApplyRejectsUnknownCommandUnderLock(t *testing.T) {
	c, store, _ := newTestController("Q1")

	_, err := c.apply(Event{UserID: 5, ChatID: 5, Command: "pause"})
	require.ErrorIs(t, err, ErrUnknownCommand)
	_, ok := store.Snapshot(5)
	assert.False(t, ok, "unknown command must not create a session")
}

func TestTransitionTableIsTotal(t *testing.T) {
	cases := []struct {
		state  session.State
		cmd    Command
		empty  bool
		action Action
		next   session.State
		reply  string
	}{
		{session.Pending, CommandStart, true, ActionStart, session.Started, ReplyStarted},
		{session.Started, CommandStart, false, ActionNone, session.Started, ReplyAlreadyStarted},
		{session.Pending, CommandEnd, true, ActionEnd, session.Pending, ReplyThanks},
		{session.Started, CommandEnd, false, ActionEnd, session.Pending, ReplyThanks},
		{session.Pending, CommandNext, false, ActionNone, session.Pending, ReplyStartFirst},
		{session.Started, CommandNext, false, ActionDraw, session.Started, ""},
		{session.Started, CommandNext, true, ActionNone, session.Started, ReplyNoQuestions},
	}
	for _, tc := range cases {
		step, err := Transition(tc.state, tc.cmd, tc.empty)
		require.NoError(t, err)
		assert.Equal(t, tc.action, step.Action, "%s/%s", tc.state, tc.cmd)
		assert.Equal(t, tc.next, step.Next, "%s/%s", tc.state, tc.cmd)
		assert.Equal(t, tc.reply, step.Reply, "%s/%s", tc.state, tc.cmd)
	}
}
