package wizard

// Draft is the mutable working state of one wizard pass. Time is only
// meaningful together with a non-empty Date: any change of Date clears Time.
type Draft struct {
	ServiceID       string
	ServiceName     string
	DurationMinutes int
	Date            string // local calendar date, YYYY-MM-DD
	Time            string // HH:MM
}

// SetService records the chosen service. The three fields always move
// together; they are never mutated individually.
func (d *Draft) SetService(id, name string, durationMinutes int) {
	d.ServiceID = id
	d.ServiceName = name
	d.DurationMinutes = durationMinutes
}

// SetDate selects a calendar date. Moving to a different date (or clearing
// the date) always unsets the time.
func (d *Draft) SetDate(date string) {
	if d.Date != date {
		d.Time = ""
	}
	d.Date = date
}

func (d *Draft) SetTime(t string) {
	d.Time = t
}

// ClearSchedule unsets service, date and time, as done when a mode is
// (re)entered.
func (d *Draft) ClearSchedule() {
	d.ServiceID = ""
	d.ServiceName = ""
	d.DurationMinutes = 0
	d.Date = ""
	d.Time = ""
}
