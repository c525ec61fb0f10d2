package wizard

import (
	"context"
	"sync"
)

// Decision is the user's answer to a confirmation prompt.
type Decision int

const (
	Dismissed Decision = iota
	Confirmed
)

// Prompt is what the rendering layer shows for a pending confirmation. The
// core decides the wording, the renderer only paints it.
type Prompt struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	ConfirmLabel string `json:"confirm_label"`
	DismissLabel string `json:"dismiss_label"`
}

// Action is the side effect that runs once the user confirms.
type Action func(ctx context.Context) error

type pending struct {
	key    string
	prompt Prompt
	action Action
}

// Runner mediates every state-mutating action behind an explicit user
// confirmation. At most one confirmation is pending at a time; a confirmed
// action executes at most once, through the Guard.
type Runner struct {
	mu      sync.Mutex
	guard   *Guard
	pending *pending
}

func NewRunner(guard *Guard) *Runner {
	return &Runner{guard: guard}
}

// Request opens a confirmation for key. It is refused when the same key is
// already pending or its action is still in flight, so a duplicate trigger
// cannot open a second confirmation for the same action. A request for a
// different key replaces the pending prompt.
func (r *Runner) Request(key string, prompt Prompt, action Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil && r.pending.key == key {
		return false
	}
	if r.guard.InFlight(key) {
		return false
	}

	r.pending = &pending{key: key, prompt: prompt, action: action}
	return true
}

// Pending returns the prompt awaiting an answer, if any.
func (r *Runner) Pending() (Prompt, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		return Prompt{}, false
	}
	return r.pending.prompt, true
}

// Resolve settles the pending confirmation. Dismissal drops the action
// without running it. Confirmation executes the action exactly once via the
// Guard; the Guard skipping the key (identical action already pending from an
// earlier confirmation) counts as not executed.
func (r *Runner) Resolve(ctx context.Context, d Decision) (bool, error) {
	r.mu.Lock()
	p := r.pending
	r.pending = nil
	r.mu.Unlock()

	if p == nil || d != Confirmed {
		return false, nil
	}

	return r.guard.Do(p.key, func() error { return p.action(ctx) })
}

// Clear drops any pending confirmation, used on wizard reset.
func (r *Runner) Clear() {
	r.mu.Lock()
	r.pending = nil
	r.mu.Unlock()
}
