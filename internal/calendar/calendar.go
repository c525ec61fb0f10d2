// Package calendar generates the month grid the date step renders and maps
// the remote working-day abbreviations onto weekday indices.
package calendar

import "time"

const dateLayout = "2006-01-02"

// WorkingDays is the set of weekdays that accept bookings.
type WorkingDays map[time.Weekday]bool

var dayAbbrev = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWorkingDays maps weekday name abbreviations (sun..sat) to a working-day
// set. Unrecognized names are dropped.
func ParseWorkingDays(names []string) WorkingDays {
	wd := make(WorkingDays, len(names))
	for _, n := range names {
		if d, ok := dayAbbrev[n]; ok {
			wd[d] = true
		}
	}
	return wd
}

// DayCell is one cell of the rendered month grid.
type DayCell struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Day        int    `json:"day"`
	InMonth    bool   `json:"in_month"`
	Selectable bool   `json:"selectable"`
	Selected   bool   `json:"selected"`
	Today      bool   `json:"today"`
}

// Month is the displayed month cursor. Moving it never touches the draft.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return MonthOf(t)
}

func (m Month) Next() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return MonthOf(t)
}

// Label returns the month title shown above the grid, e.g. "June 2024".
func (m Month) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Grid produces the cell rows for a month: a whole number of 7-day weeks,
// padded with adjacent-month days, Sunday first. A cell is selectable iff it
// belongs to the displayed month, is not before today (time of day ignored)
// and falls on a working day. Disabled cells stay in the grid.
func Grid(m Month, working WorkingDays, today time.Time, selected string) []DayCell {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, today.Location())
	offset := int(first.Weekday()) // Sunday = 0
	days := daysIn(m)
	total := ((offset + days + 6) / 7) * 7

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	cells := make([]DayCell, 0, total)
	for i := 0; i < total; i++ {
		d := first.AddDate(0, 0, i-offset)
		iso := d.Format(dateLayout)

		inMonth := d.Month() == m.Month && d.Year() == m.Year
		selectable := inMonth && !d.Before(todayDate) && working[d.Weekday()]

		cells = append(cells, DayCell{
			Date:       iso,
			Day:        d.Day(),
			InMonth:    inMonth,
			Selectable: selectable,
			Selected:   selected != "" && selected == iso,
			Today:      d.Equal(todayDate),
		})
	}
	return cells
}

// Selectable reports whether a single date passes the grid policy for its own
// month. Used to validate a date intent against the same rules the grid shows.
func Selectable(date string, working WorkingDays, today time.Time) bool {
	d, err := time.ParseInLocation(dateLayout, date, today.Location())
	if err != nil {
		return false
	}
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return !d.Before(todayDate) && working[d.Weekday()]
}

func daysIn(m Month) int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
