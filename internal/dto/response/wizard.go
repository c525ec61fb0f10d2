package response

import (
	"fmt"

	"github.com/roygutt18/quiteSlot/internal/calendar"
	"github.com/roygutt18/quiteSlot/internal/remote"
	"github.com/roygutt18/quiteSlot/internal/wizard"
)

// WizardState is the render snapshot: everything the rendering layer needs to
// paint one cycle. The renderer derives all visuals from it and reports back
// opaque intents.
type WizardState struct {
	Step          string            `json:"step"`
	Mode          string            `json:"mode,omitempty"`
	Progress      ProgressView      `json:"progress"`
	User          *UserView         `json:"user,omitempty"`
	Draft         DraftView         `json:"draft"`
	Calendar      CalendarView      `json:"calendar"`
	Slots         []string          `json:"slots,omitempty"`
	Services      []ServiceView     `json:"services,omitempty"`
	Appointments  []AppointmentView `json:"appointments,omitempty"`
	Prompt        *wizard.Prompt    `json:"prompt,omitempty"`
	ResendSeconds int               `json:"resend_seconds"`
}

type ProgressView struct {
	Visible  bool    `json:"visible"`
	Position int     `json:"position"`
	Total    int     `json:"total"`
	Fraction float64 `json:"fraction"`
	Label    string  `json:"label,omitempty"`
}

type UserView struct {
	ID           int64  `json:"id"`
	Phone        string `json:"phone"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	NeedsDetails bool   `json:"needs_details"`
}

type DraftView struct {
	ServiceID       string `json:"service_id,omitempty"`
	ServiceName     string `json:"service_name,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
}

type CalendarView struct {
	Year  int                `json:"year"`
	Month int                `json:"month"`
	Label string             `json:"label"`
	Cells []calendar.DayCell `json:"cells"`
}

type ServiceView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

type AppointmentView struct {
	ID          int64  `json:"id"`
	Start       string `json:"start"`
	ServiceName string `json:"service_name,omitempty"`
}

// Helper converters

func ProgressToView(p wizard.Progress) ProgressView {
	v := ProgressView{
		Visible:  p.Visible,
		Position: p.Position,
		Total:    p.Total,
		Fraction: p.Fraction,
	}
	if !p.Visible {
		return v
	}
	if p.Position <= 0 {
		v.Label = "Getting started"
	} else {
		v.Label = fmt.Sprintf("Step %d of %d", p.Position, p.Total)
	}
	return v
}

func UserToView(id *wizard.Identity) *UserView {
	if id == nil {
		return nil
	}
	return &UserView{
		ID:           id.ID,
		Phone:        id.Phone,
		Name:         id.Name,
		Email:        id.Email,
		NeedsDetails: id.NeedsDetails(),
	}
}

func ServicesToView(services []remote.Service) []ServiceView {
	out := make([]ServiceView, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceView{ID: s.ID, Name: s.Name, DurationMinutes: s.DurationMinutes})
	}
	return out
}

func AppointmentsToView(appointments []remote.Appointment) []AppointmentView {
	out := make([]AppointmentView, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, AppointmentView{ID: a.ID, Start: a.Start, ServiceName: a.ServiceName})
	}
	return out
}
