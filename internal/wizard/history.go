package wizard

// History is the branch-aware navigation stack. It always holds at least one
// entry and the first entry is always the mode step. Consecutive duplicate
// entries are never recorded.
type History struct {
	steps []Step
}

func NewHistory() *History {
	return &History{steps: []Step{StepMode}}
}

func (h *History) Current() Step {
	return h.steps[len(h.steps)-1]
}

// Below returns the entry directly under the top, if any.
func (h *History) Below() (Step, bool) {
	if len(h.steps) < 2 {
		return "", false
	}
	return h.steps[len(h.steps)-2], true
}

// Push records a forward transition. Re-pushing the current step is a no-op.
func (h *History) Push(s Step) bool {
	if h.Current() == s {
		return false
	}
	h.steps = append(h.steps, s)
	return true
}

// Pop removes and returns the top entry. The stack never drops below one
// entry; popping the last entry returns it unchanged.
func (h *History) Pop() Step {
	top := h.Current()
	if len(h.steps) <= 1 {
		return top
	}
	h.steps = h.steps[:len(h.steps)-1]
	return top
}

func (h *History) Len() int {
	return len(h.steps)
}

func (h *History) Reset() {
	h.steps = h.steps[:0]
	h.steps = append(h.steps, StepMode)
}

// Steps returns a copy of the stack, oldest first.
func (h *History) Steps() []Step {
	out := make([]Step, len(h.steps))
	copy(out, h.steps)
	return out
}
