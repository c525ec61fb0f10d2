package wizard

// Step identifies one screen of the booking wizard.
type Step string

const (
	StepMode       Step = "mode"
	StepPhone      Step = "phone"
	StepOTP        Step = "otp"
	StepDetails    Step = "details"
	StepService    Step = "service"
	StepDate       Step = "date"
	StepTime       Step = "time"
	StepCancelList Step = "cancel-list"
)

// Mode is the entry point the user picked on the mode screen.
type Mode string

const (
	ModeNone   Mode = ""
	ModeLogin  Mode = "login"
	ModeBook   Mode = "book"
	ModeCancel Mode = "cancel"
)

func ValidMode(m Mode) bool {
	switch m {
	case ModeLogin, ModeBook, ModeCancel:
		return true
	}
	return false
}

// stepsFor returns the full ordered step list for a mode, before any
// identity-based filtering.
func stepsFor(mode Mode) []Step {
	switch mode {
	case ModeLogin:
		return []Step{StepPhone, StepOTP}
	case ModeBook:
		return []Step{StepPhone, StepOTP, StepDetails, StepService, StepDate, StepTime}
	case ModeCancel:
		return []Step{StepPhone, StepOTP, StepCancelList}
	default:
		return nil
	}
}

// Sequence derives the progress step list for a mode: steps already satisfied
// by the identity (phone/otp once authenticated, details once a name exists)
// are removed. The mode step itself is never part of the sequence.
func Sequence(mode Mode, id *Identity) []Step {
	if mode == ModeNone {
		mode = ModeLogin
	}

	steps := stepsFor(mode)
	if id == nil {
		return steps
	}

	out := make([]Step, 0, len(steps))
	for _, s := range steps {
		if s == StepPhone || s == StepOTP {
			continue
		}
		if s == StepDetails && id.Name != "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Progress describes where the active step sits inside its sequence.
type Progress struct {
	Position int     // 1-based; 0 means not started yet
	Total    int
	Fraction float64 // Position/Total
	Visible  bool    // hidden on the mode step and for cancel flows
}
