package board

import "fmt"

// State of one optimistic operation on one note.
type State int

const (
	Idle State = iota
	Pending
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled_back"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// transitions lists the legal next states. A finished operation may start again.
var transitions = map[State][]State{
	Idle:       {Pending},
	Pending:    {Committed, RolledBack},
	Committed:  {Pending},
	RolledBack: {Pending},
}

func (s State) CanTransition(to State) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type machine struct {
	state State
}

// to panics on an illegal transition; that is a bug in the caller.
func (m *machine) to(next State) {
	if !m.state.CanTransition(next) {
		panic(fmt.Sprintf("board: illegal transition %s -> %s", m.state, next))
	}
	m.state = next
}
