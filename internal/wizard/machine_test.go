package wizard

import (
	"math"
	"testing"
)

func named(name string) *Identity {
	return &Identity{ID: 7, Phone: "0541234567", Name: name}
}

func TestMachine_SetModeUnauthenticatedEntersLogin(t *testing.T) {
	for _, mode := range []Mode{ModeLogin, ModeBook, ModeCancel} {
		m := NewMachine()
		step := m.SetMode(mode)
		if step != StepPhone {
			t.Fatalf("SetMode(%s) landed on %s, want %s", mode, step, StepPhone)
		}
		if m.Mode() != ModeLogin {
			t.Fatalf("SetMode(%s) mode = %s, want %s", mode, m.Mode(), ModeLogin)
		}
	}
}

func TestMachine_SetModeAuthenticatedRouting(t *testing.T) {
	tests := []struct {
		name string
		id   *Identity
		mode Mode
		want Step
	}{
		{"book with name", named("Dana"), ModeBook, StepService},
		{"book without name", named(""), ModeBook, StepDetails},
		{"cancel", named("Dana"), ModeCancel, StepCancelList},
		{"login again", named("Dana"), ModeLogin, StepPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			m.SetIdentity(tt.id)
			if got := m.SetMode(tt.mode); got != tt.want {
				t.Fatalf("SetMode(%s) = %s, want %s", tt.mode, got, tt.want)
			}
		})
	}
}

func TestMachine_SetModeClearsDraft(t *testing.T) {
	m := NewMachine()
	m.SetIdentity(named("Dana"))
	m.Draft().SetService("s1", "Haircut", 30)
	m.Draft().SetDate("2026-09-02")
	m.Draft().SetTime("10:00")

	m.SetMode(ModeBook)
	d := m.Draft()
	if d.ServiceID != "" || d.Date != "" || d.Time != "" {
		t.Fatalf("draft not cleared: %+v", d)
	}
}

func TestMachine_BackAsymmetry(t *testing.T) {
	// An unauthenticated user who entered a flow cannot back out onto the
	// mode screen.
	m := NewMachine()
	m.SetMode(ModeBook) // lands on phone, above mode
	if got := m.Back(); got != StepPhone {
		t.Fatalf("unauthenticated Back() = %s, want %s", got, StepPhone)
	}

	// An authenticated user can.
	m = NewMachine()
	m.SetIdentity(named("Dana"))
	m.SetMode(ModeCancel)
	if got := m.Back(); got != StepMode {
		t.Fatalf("authenticated Back() = %s, want %s", got, StepMode)
	}

	// On the bottom entry Back is a no-op either way.
	if got := m.Back(); got != StepMode {
		t.Fatalf("Back() on bottom = %s, want %s", got, StepMode)
	}
}

func TestMachine_BackFromTimeClearsDateAndTime(t *testing.T) {
	m := NewMachine()
	m.SetIdentity(named("Dana"))
	m.SetMode(ModeBook)
	m.Draft().SetService("s1", "Haircut", 30)
	m.GoTo(StepDate)
	m.Draft().SetDate("2026-09-02")
	m.GoTo(StepTime)
	m.Draft().SetTime("10:00")

	if got := m.Back(); got != StepDate {
		t.Fatalf("Back() = %s, want %s", got, StepDate)
	}
	d := m.Draft()
	if d.Date != "" || d.Time != "" {
		t.Fatalf("date/time survived back: date=%q time=%q", d.Date, d.Time)
	}
	if d.ServiceID != "s1" {
		t.Fatal("service should survive back")
	}
}

func TestMachine_ChangingDateDropsTime(t *testing.T) {
	m := NewMachine()
	m.Draft().SetDate("2026-09-02")
	m.Draft().SetTime("10:00")

	m.Draft().SetDate("2026-09-03")
	if m.Draft().Time != "" {
		t.Fatalf("time survived a date change: %q", m.Draft().Time)
	}

	// Re-selecting the same date keeps the time.
	m.Draft().SetTime("11:00")
	m.Draft().SetDate("2026-09-03")
	if m.Draft().Time != "11:00" {
		t.Fatalf("time dropped on same-date select: %q", m.Draft().Time)
	}
}

func TestMachine_GoToSameStepKeepsHistoryFlat(t *testing.T) {
	m := NewMachine()
	m.GoTo(StepPhone)
	m.GoTo(StepPhone)
	if m.History().Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.History().Len())
	}
}

func TestMachine_ProgressHiddenOnModeScreenAndCancel(t *testing.T) {
	m := NewMachine()
	if p := m.Progress(); p.Visible {
		t.Fatal("progress visible on mode screen")
	}

	m.SetIdentity(named("Dana"))
	m.SetMode(ModeCancel)
	if p := m.Progress(); p.Visible {
		t.Fatal("progress visible in cancel flow")
	}
}

func TestMachine_ProgressShrinksWithIdentity(t *testing.T) {
	// A fresh visitor is rerouted into the two-step login sequence.
	m := NewMachine()
	m.SetMode(ModeBook)
	p := m.Progress()
	if !p.Visible {
		t.Fatal("progress hidden on phone step")
	}
	if p.Position != 1 || p.Total != 2 {
		t.Fatalf("anonymous login progress = %d/%d, want 1/2", p.Position, p.Total)
	}

	// A named, authenticated user booking skips phone, otp and details.
	m = NewMachine()
	m.SetIdentity(named("Dana"))
	m.SetMode(ModeBook)
	m.GoTo(StepDate)
	p = m.Progress()
	if p.Position != 2 || p.Total != 3 {
		t.Fatalf("authenticated progress = %d/%d, want 2/3", p.Position, p.Total)
	}
	if math.Abs(p.Fraction-2.0/3.0) > 1e-9 {
		t.Fatalf("fraction = %f", p.Fraction)
	}
}

func TestSequence_FiltersSatisfiedSteps(t *testing.T) {
	// Anonymous: full list.
	seq := Sequence(ModeBook, nil)
	if len(seq) != 6 {
		t.Fatalf("anonymous book sequence length = %d, want 6", len(seq))
	}

	// Authenticated without a name: details remains.
	seq = Sequence(ModeBook, named(""))
	want := []Step{StepDetails, StepService, StepDate, StepTime}
	if len(seq) != len(want) {
		t.Fatalf("sequence = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", seq, want)
		}
	}

	// Authenticated with a name: only the booking steps.
	seq = Sequence(ModeBook, named("Dana"))
	if len(seq) != 3 || seq[0] != StepService {
		t.Fatalf("sequence = %v", seq)
	}
}
