package wizard

// Machine owns one wizard pass: the chosen mode, the booking draft and the
// navigation history. It decides which step is active and which transitions
// are legal; fetching and side effects stay with the orchestrating service.
type Machine struct {
	mode     Mode
	identity *Identity
	draft    Draft
	history  *History
}

func NewMachine() *Machine {
	return &Machine{history: NewHistory()}
}

func (m *Machine) Step() Step {
	return m.history.Current()
}

func (m *Machine) Mode() Mode {
	return m.mode
}

func (m *Machine) Draft() *Draft {
	return &m.draft
}

func (m *Machine) History() *History {
	return m.history
}

func (m *Machine) Identity() *Identity {
	return m.identity
}

// SetIdentity installs the server-reported identity. It only changes the
// facts the step policy reads; it never rewrites history.
func (m *Machine) SetIdentity(id *Identity) {
	m.identity = id
}

func (m *Machine) Authenticated() bool {
	return m.identity != nil
}

// GoTo activates step, recording it on the history unless it is already the
// active step.
func (m *Machine) GoTo(step Step) {
	m.history.Push(step)
}

// Back pops one step off the history. It is a no-op when only one entry
// remains, or when the step below the top is the mode screen and no identity
// exists: unauthenticated users cannot be walked back out of a started flow
// and must pick a mode explicitly. Leaving the time step clears the time and
// the date selection it belonged to.
func (m *Machine) Back() Step {
	if m.history.Len() <= 1 {
		return m.Step()
	}
	if below, ok := m.history.Below(); ok && below == StepMode && !m.Authenticated() {
		return m.Step()
	}

	leaving := m.history.Pop()
	if leaving == StepTime {
		m.draft.SetDate("")
	}
	return m.Step()
}

// SetMode starts a flow from the mode screen. The draft's service/date/time
// are always cleared first. Unauthenticated users are routed into the login
// entry step whatever mode they asked for; booking without a stored name
// detours through the details step. The returned step is already active.
func (m *Machine) SetMode(mode Mode) Step {
	m.draft.ClearSchedule()

	if !m.Authenticated() {
		m.mode = ModeLogin
		m.GoTo(StepPhone)
		return m.Step()
	}

	m.mode = mode
	switch mode {
	case ModeBook:
		if m.identity.NeedsDetails() {
			m.GoTo(StepDetails)
		} else {
			m.GoTo(StepService)
		}
	case ModeCancel:
		m.GoTo(StepCancelList)
	default:
		m.GoTo(StepPhone)
	}
	return m.Step()
}

// Reset clears the draft, resets history to the mode screen and forgets the
// chosen mode. Used after every terminal success and before a fresh pass.
func (m *Machine) Reset() {
	m.mode = ModeNone
	m.draft.ClearSchedule()
	m.history.Reset()
}

// Progress computes the position of the active step inside the derived step
// sequence. It is hidden on the mode screen and for the cancel flow; the mode
// step never counts as part of a sequence.
func (m *Machine) Progress() Progress {
	step := m.Step()
	if step == StepMode || m.mode == ModeCancel {
		return Progress{}
	}

	seq := Sequence(m.mode, m.identity)
	pos := 0
	for i, s := range seq {
		if s == step {
			pos = i + 1
			break
		}
	}

	p := Progress{Position: pos, Total: len(seq), Visible: true}
	if p.Total > 0 {
		p.Fraction = float64(p.Position) / float64(p.Total)
	}
	return p
}
