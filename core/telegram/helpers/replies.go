package helpers

import (
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

const repliesKey = "interviewbot.replies"

// ReplyStats counts the replies a handler produced for the current update.
// A reply counts once it is accepted: sent inline or queued on the dispatcher.
type ReplyStats struct {
	messages atomic.Int32
	keyboard atomic.Bool
}

// Messages returns the number of accepted replies.
func (s *ReplyStats) Messages() int {
	if s == nil {
		return 0
	}
	return int(s.messages.Load())
}

// Keyboard reports whether any reply carried reply markup.
func (s *ReplyStats) Keyboard() bool {
	return s != nil && s.keyboard.Load()
}

func (s *ReplyStats) record(withKeyboard bool) {
	if s == nil {
		return
	}
	s.messages.Add(1)
	if withKeyboard {
		s.keyboard.Store(true)
	}
}

// TrackReplies attaches fresh counters to c and returns them.
func TrackReplies(c tele.Context) *ReplyStats {
	s := &ReplyStats{}
	c.Set(repliesKey, s)
	return s
}

// Replies returns the counters attached by TrackReplies, or nil.
func Replies(c tele.Context) *ReplyStats {
	s, _ := c.Get(repliesKey).(*ReplyStats)
	return s
}
