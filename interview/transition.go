package interview

import "github.com/nedz/interviewbot/interview/session"

// Replies sent back to the user.
const (
	ReplyStarted        = "Hello! Your interview has officially started. Request for next questions using /next command!"
	ReplyAlreadyStarted = "Interview has already started."
	ReplyThanks         = "Thanks for participating in this interview."
	ReplyStartFirst     = "Firstly, you have to start the interview with command /interview"
	ReplyNoQuestions    = "Sorry, no questions left for you :("
)

// Action is the side effect a transition applies to the session.
type Action string

const (
	ActionNone  Action = "none"
	ActionStart Action = "start"
	ActionEnd   Action = "end"
	ActionDraw  Action = "draw"
)

// Step is the outcome of applying a command to a state.
// For ActionDraw the reply is the drawn question and Reply is empty.
type Step struct {
	Action Action
	Next   session.State
	Reply  string
}

// Transition is total over the known commands and both states.
func Transition(state session.State, cmd Command, poolEmpty bool) (Step, error) {
	started := state == session.Started
	switch cmd {
	case CommandStart:
		if started {
			return Step{Action: ActionNone, Next: session.Started, Reply: ReplyAlreadyStarted}, nil
		}
		return Step{Action: ActionStart, Next: session.Started, Reply: ReplyStarted}, nil
	case CommandEnd:
		return Step{Action: ActionEnd, Next: session.Pending, Reply: ReplyThanks}, nil
	case CommandNext:
		if !started {
			return Step{Action: ActionNone, Next: session.Pending, Reply: ReplyStartFirst}, nil
		}
		if poolEmpty {
			return Step{Action: ActionNone, Next: session.Started, Reply: ReplyNoQuestions}, nil
		}
		return Step{Action: ActionDraw, Next: session.Started}, nil
	}
	return Step{}, ErrUnknownCommand
}
