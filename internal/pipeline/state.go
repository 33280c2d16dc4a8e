package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// State is a pipeline stage.
type State string

const (
	StateIdle         State = "idle"
	StateAcquiring    State = "acquiring"
	StateNormalizing  State = "normalizing"
	StateTranscribing State = "transcribing"
	StateChunking     State = "chunking"
	StateSummarizing  State = "summarizing"
	StateRendering    State = "rendering"
	StateDone         State = "done"
	StateError        State = "error"
)

// order is the forward sequence; paths may skip stages but never go back.
var order = map[State]int{
	StateIdle:         0,
	StateAcquiring:    1,
	StateNormalizing:  2,
	StateTranscribing: 3,
	StateChunking:     4,
	StateSummarizing:  5,
	StateRendering:    6,
	StateDone:         7,
}

// Transition is one recorded state change.
type Transition struct {
	From State
	To   State
	At   time.Time
}

// run is the per-request state machine.
type run struct {
	state   State
	history []Transition
	entered time.Time
}

func newRun() *run {
	return &run{state: StateIdle, entered: time.Now()}
}

func isTerminal(s State) bool {
	return s == StateDone || s == StateError
}

func validTransition(from, to State) bool {
	if isTerminal(from) {
		return false
	}
	if to == StateError {
		return true
	}
	f, ok1 := order[from]
	t, ok2 := order[to]
	return ok1 && ok2 && t > f
}

// to moves the run forward and returns how long the previous state lasted.
func (r *run) to(next State) (time.Duration, error) {
	if !validTransition(r.state, next) {
		return 0, fmt.Errorf("invalid transition: %s -> %s", r.state, next)
	}
	now := time.Now()
	spent := now.Sub(r.entered)
	r.history = append(r.history, Transition{From: r.state, To: next, At: now})
	r.state = next
	r.entered = now
	return spent, nil
}

// trail renders the history as "idle -> acquiring -> ...".
func (r *run) trail() string {
	if len(r.history) == 0 {
		return string(r.state)
	}
	parts := []string{string(r.history[0].From)}
	for _, t := range r.history {
		parts = append(parts, string(t.To))
	}
	return strings.Join(parts, " -> ")
}
