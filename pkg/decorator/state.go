package decorator

import "fmt"

// State is the progress of one decoration pass.
type State int

const (
	StateUnparsed State = iota
	StateNormalized
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateUnparsed:
		return "unparsed"
	case StateNormalized:
		return "normalized"
	case StateRendered:
		return "rendered"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// pass tracks one block's state. Transitions only move forward one step.
type pass struct {
	state State
}

func (p *pass) advance(next State) error {
	if next != p.state+1 {
		return fmt.Errorf("decorator: invalid transition %s -> %s", p.state, next)
	}
	p.state = next
	return nil
}
