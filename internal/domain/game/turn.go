package game

import (
	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// Turn is one actor's opportunity to act within a round
type Turn interface {
	// Actor returns the shareholder expected to act, or nil if nobody can
	Actor() ledger.Shareholder
	AvailableActions() []action.Type
	Done() bool
	Perform(a action.Action) error
	History() []action.Action
}

// turnLog records the actions successfully performed in a turn
type turnLog struct {
	taken []action.Action
}

func (l *turnLog) History() []action.Action {
	return append([]action.Action(nil), l.taken...)
}

func (l *turnLog) record(a action.Action) {
	l.taken = append(l.taken, a)
}

func (l *turnLog) count(t action.Type) int {
	n := 0
	for _, a := range l.taken {
		if a.Type() == t {
			n++
		}
	}
	return n
}

// perform checks the actor and the action type, then runs the handler and
// records the action if it succeeded. Handlers validate before mutating.
func perform(t Turn, log *turnLog, a action.Action, handle func() error) error {
	if err := validateAction(t, a); err != nil {
		return err
	}
	if err := handle(); err != nil {
		return err
	}
	log.record(a)
	return nil
}

func validateAction(t Turn, a action.Action) error {
	expected := t.Actor()
	if a.Actor() == nil || expected == nil || a.Actor() != expected {
		return &ErrWrongTurn{Actor: nameOf(a.Actor()), Expected: nameOf(expected)}
	}
	allowed := t.AvailableActions()
	for _, typ := range allowed {
		if typ == a.Type() {
			return nil
		}
	}
	return &ErrInvalidAction{Type: a.Type(), Allowed: allowed}
}

func nameOf(s ledger.Shareholder) string {
	if s == nil {
		return "nobody"
	}
	return s.Name()
}
