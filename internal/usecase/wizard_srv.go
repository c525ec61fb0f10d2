package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/roygutt18/quiteSlot/internal/calendar"
	"github.com/roygutt18/quiteSlot/internal/dto/response"
	"github.com/roygutt18/quiteSlot/internal/remote"
	"github.com/roygutt18/quiteSlot/internal/session"
	"github.com/roygutt18/quiteSlot/internal/wizard"
	"github.com/roygutt18/quiteSlot/pkg/utils"

	"go.uber.org/zap"
)

type WizardService interface {
	SetMode(ctx context.Context, sess *session.Session, mode wizard.Mode) error
	Back(sess *session.Session)
	Reset(sess *session.Session)
	ShiftMonth(sess *session.Session, direction string)
	ChooseService(sess *session.Session, serviceID string) error
	ChooseDate(ctx context.Context, sess *session.Session, date string) error
	ChooseSlot(sess *session.Session, slot string) error
	RequestCancel(sess *session.Session, appointmentID int64) error
	LoadCancelList(ctx context.Context, sess *session.Session) error
	ResolvePrompt(ctx context.Context, sess *session.Session, accept bool) (bool, error)
	State(sess *session.Session) *response.WizardState
}

type wizardService struct {
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewWizardService(config *utils.Config, log *zap.Logger) WizardService {
	return &wizardService{
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// SetMode starts a flow. The machine owns the routing policy; entering the
// cancel flow additionally kicks off the guarded appointment-list fetch.
func (s *wizardService) SetMode(ctx context.Context, sess *session.Session, mode wizard.Mode) error {
	if !wizard.ValidMode(mode) {
		return invalidField("mode", "unknown mode")
	}

	sess.Lock()
	step := sess.Machine.SetMode(mode)
	sess.Slots = nil
	sess.Unlock()

	s.log.Debug("Wizard mode set",
		zap.String("session", sess.Token.String()),
		zap.String("mode", string(mode)),
		zap.String("step", string(step)),
	)

	if step == wizard.StepCancelList {
		return s.LoadCancelList(ctx, sess)
	}
	return nil
}

// Back pops one navigation step. Leaving the time step also drops the fetched
// slot list; the machine itself clears the date/time selection.
func (s *wizardService) Back(sess *session.Session) {
	sess.Lock()
	defer sess.Unlock()
	s.backLocked(sess)
}

func (s *wizardService) backLocked(sess *session.Session) {
	leaving := sess.Machine.Step()
	sess.Machine.Back()
	if leaving == wizard.StepTime && sess.Machine.Step() != leaving {
		sess.Slots = nil
	}
}

func (s *wizardService) Reset(sess *session.Session) {
	sess.Lock()
	sess.ResetWizard()
	sess.Unlock()
}

// ShiftMonth moves the displayed month only. The draft's date and time are
// never touched by month navigation.
func (s *wizardService) ShiftMonth(sess *session.Session, direction string) {
	sess.Lock()
	defer sess.Unlock()

	if direction == "previous" {
		sess.Month = sess.Month.Prev()
	} else {
		sess.Month = sess.Month.Next()
	}
}

// ChooseService records the chosen service atomically (id, name and duration
// together) and advances to the date step.
func (s *wizardService) ChooseService(sess *session.Session, serviceID string) error {
	sess.Lock()
	defer sess.Unlock()

	if !sess.Machine.Authenticated() {
		return ErrAuthRequired
	}

	for _, svc := range sess.Services {
		if svc.ID == serviceID {
			sess.Machine.Draft().SetService(svc.ID, svc.Name, svc.DurationMinutes)
			sess.Machine.GoTo(wizard.StepDate)
			return nil
		}
	}
	return ErrUnknownService
}

// ChooseDate validates the date against the same policy the grid renders,
// records it (clearing any slot time), advances to the time step and fetches
// the day's slots through the guard. A response that lands after the draft
// date has moved on is discarded.
func (s *wizardService) ChooseDate(ctx context.Context, sess *session.Session, date string) error {
	sess.Lock()
	if err := s.bookPrereqsLocked(sess); err != nil {
		sess.Unlock()
		return err
	}

	draft := sess.Machine.Draft()
	if draft.DurationMinutes <= 0 {
		sess.Unlock()
		return ErrServiceRequired
	}
	if !calendar.Selectable(date, sess.WorkingDays, s.now()) {
		sess.Unlock()
		return ErrDateUnavailable
	}

	draft.SetDate(date)
	sess.Machine.GoTo(wizard.StepTime)
	duration := draft.DurationMinutes
	sess.Slots = nil
	sess.Unlock()

	var fetched []string
	executed, err := sess.Guard.Do("day-slots:"+date, func() error {
		slots, err := sess.Remote.DaySlots(ctx, date, duration)
		if err != nil {
			return err
		}
		fetched = slots
		return nil
	})
	if !executed {
		return nil
	}
	if err != nil {
		s.log.Warn("Slot fetch failed",
			zap.String("session", sess.Token.String()),
			zap.String("date", date),
			zap.Error(err))
		return err
	}

	sess.Lock()
	if sess.Machine.Draft().Date != date {
		// A newer date selection won the race; this response is stale.
		sess.Unlock()
		return nil
	}
	sess.Slots = fetched
	empty := len(fetched) == 0
	sess.Unlock()

	if empty {
		sess.Confirm.Request("slots-empty:"+date, wizard.Prompt{
			Title:        "No free times",
			Body:         "There are no open times that day. Try another day.",
			ConfirmLabel: "OK",
			DismissLabel: "Stay here",
		}, func(context.Context) error {
			sess.Lock()
			s.backLocked(sess)
			sess.Unlock()
			return nil
		})
	}
	return nil
}

// ChooseSlot records the chosen time and raises the booking confirmation. The
// booking itself only runs once the user confirms, exactly once per
// confirmation, keyed by date and time.
func (s *wizardService) ChooseSlot(sess *session.Session, slot string) error {
	sess.Lock()
	if err := s.bookPrereqsLocked(sess); err != nil {
		sess.Unlock()
		return err
	}

	draft := sess.Machine.Draft()
	if draft.Date == "" {
		sess.Unlock()
		return ErrDateRequired
	}

	// Only times the day's fetch actually offered may be confirmed; the
	// remote API remains the final validator.
	offered := false
	for _, s := range sess.Slots {
		if s == slot {
			offered = true
			break
		}
	}
	if !offered {
		sess.Unlock()
		return ErrSlotUnavailable
	}

	draft.SetTime(slot)
	req := remote.BookingRequest{
		Date:            draft.Date,
		Time:            slot,
		DurationMinutes: draft.DurationMinutes,
		ServiceName:     draft.ServiceName,
	}
	sess.Unlock()

	key := fmt.Sprintf("book:%s:%s", req.Date, req.Time)
	sess.Confirm.Request(key, wizard.Prompt{
		Title:        "Confirm appointment",
		Body:         fmt.Sprintf("Book %s on %s at %s?", req.ServiceName, req.Date, req.Time),
		ConfirmLabel: "Book it",
		DismissLabel: "Cancel",
	}, func(ctx context.Context) error {
		if err := sess.Remote.Book(ctx, req); err != nil {
			return err
		}
		sess.Lock()
		sess.ResetWizard()
		sess.Unlock()
		s.log.Info("Appointment booked",
			zap.String("session", sess.Token.String()),
			zap.String("date", req.Date),
			zap.String("time", req.Time))
		return nil
	})
	return nil
}

// LoadCancelList fetches the user's cancellable appointments through the
// guard and caches them on the session.
func (s *wizardService) LoadCancelList(ctx context.Context, sess *session.Session) error {
	var fetched []remote.Appointment
	executed, err := sess.Guard.Do("cancel-list", func() error {
		appointments, err := sess.Remote.CancelList(ctx)
		if err != nil {
			return err
		}
		fetched = appointments
		return nil
	})
	if !executed {
		return nil
	}
	if err != nil {
		s.log.Warn("Cancel list fetch failed",
			zap.String("session", sess.Token.String()),
			zap.Error(err))
		return err
	}

	sess.Lock()
	sess.Appointments = fetched
	sess.Unlock()
	return nil
}

// RequestCancel raises the cancellation confirmation for one appointment,
// keyed by its id so an identical pending cancellation is never duplicated.
func (s *wizardService) RequestCancel(sess *session.Session, appointmentID int64) error {
	sess.Lock()
	if !sess.Machine.Authenticated() {
		sess.Unlock()
		return ErrAuthRequired
	}

	var target *remote.Appointment
	for i := range sess.Appointments {
		if sess.Appointments[i].ID == appointmentID {
			target = &sess.Appointments[i]
			break
		}
	}
	sess.Unlock()

	if target == nil {
		return invalidField("id", "appointment not found")
	}

	body := fmt.Sprintf("Cancel the appointment starting %s?", formatStart(target.Start))
	key := fmt.Sprintf("cancel:%d", appointmentID)
	sess.Confirm.Request(key, wizard.Prompt{
		Title:        "Cancel appointment",
		Body:         body,
		ConfirmLabel: "Yes, cancel it",
		DismissLabel: "Keep it",
	}, func(ctx context.Context) error {
		if err := sess.Remote.Cancel(ctx, appointmentID); err != nil {
			return err
		}
		sess.Lock()
		sess.ResetWizard()
		sess.Unlock()
		s.log.Info("Appointment cancelled",
			zap.String("session", sess.Token.String()),
			zap.Int64("appointment", appointmentID))
		return nil
	})
	return nil
}

// ResolvePrompt settles the pending confirmation. Confirmed actions run
// through the guard; the action's own failure is returned untouched so the
// handler can surface a remote rejection verbatim.
func (s *wizardService) ResolvePrompt(ctx context.Context, sess *session.Session, accept bool) (bool, error) {
	decision := wizard.Dismissed
	if accept {
		decision = wizard.Confirmed
	}
	return sess.Confirm.Resolve(ctx, decision)
}

// State assembles the render snapshot for one cycle.
func (s *wizardService) State(sess *session.Session) *response.WizardState {
	sess.Lock()
	defer sess.Unlock()

	m := sess.Machine
	draft := m.Draft()

	state := &response.WizardState{
		Step:     string(m.Step()),
		Mode:     string(m.Mode()),
		Progress: response.ProgressToView(m.Progress()),
		User:     response.UserToView(m.Identity()),
		Draft: response.DraftView{
			ServiceID:       draft.ServiceID,
			ServiceName:     draft.ServiceName,
			DurationMinutes: draft.DurationMinutes,
			Date:            draft.Date,
			Time:            draft.Time,
		},
		Calendar: response.CalendarView{
			Year:  sess.Month.Year,
			Month: int(sess.Month.Month),
			Label: sess.Month.Label(),
			Cells: calendar.Grid(sess.Month, sess.WorkingDays, s.now(), draft.Date),
		},
		Slots:         sess.Slots,
		Services:      response.ServicesToView(sess.Services),
		Appointments:  response.AppointmentsToView(sess.Appointments),
		ResendSeconds: int(sess.Resend.Remaining().Round(time.Second).Seconds()),
	}

	if prompt, ok := sess.Confirm.Pending(); ok {
		state.Prompt = &prompt
	}
	return state
}

func (s *wizardService) bookPrereqsLocked(sess *session.Session) error {
	if !sess.Machine.Authenticated() {
		return ErrAuthRequired
	}
	if sess.Machine.Identity().NeedsDetails() {
		sess.Machine.GoTo(wizard.StepDetails)
		return ErrNameRequired
	}
	return nil
}

func formatStart(start string) string {
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return start
	}
	return t.Format("Monday, January 2 at 15:04")
}
