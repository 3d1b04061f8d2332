package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
)

const (
	ClassificationOnLeave = "On Leave"
	ClassificationAbsent  = "Absent"
)

// Palette picks the display color of a day event. Present and Attendance
// color days backed by an attendance record, the former when its status is
// Present.
type Palette struct {
	Present    string
	Attendance string
	OnLeave    string
	Absent     string
}

var (
	DefaultPalette = Palette{
		Present:    "#198754",
		Attendance: "#198754",
		OnLeave:    "#ffc107",
		Absent:     "#dc3545",
	}
	TeamPalette = Palette{
		Present:    "#0d6efd",
		Attendance: "#6c757d",
		OnLeave:    "#ffc107",
		Absent:     "#dc3545",
	}
)

func (p Palette) color(classification string, fromRecord bool) string {
	switch {
	case fromRecord && classification == StatusPresent:
		return p.Present
	case fromRecord:
		return p.Attendance
	case classification == ClassificationOnLeave:
		return p.OnLeave
	default:
		return p.Absent
	}
}

type DayEvent struct {
	Title           string `json:"title"`
	Start           string `json:"start"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	Classification  string `json:"classification"`
}

// CalendarInput is everything needed to rebuild one employee's calendar.
// Attendances and Leaves may contain records outside [Start, End]; leaves that
// are not approved are ignored.
type CalendarInput struct {
	JoinDate    time.Time
	Start       time.Time
	End         time.Time
	Today       time.Time
	Attendances []Attendance
	Leaves      []leave.LeaveRequest
	Palette     Palette
	// TitlePrefix, when set, is prepended as "<prefix> - <classification>".
	TitlePrefix string
}

// BuildCalendar classifies every working day in [Start, End]. Days before the
// join date, after Today, or on a weekend produce nothing. Days with an
// attendance record are emitted from the record, after the synthesized days.
func BuildCalendar(in CalendarInput) []DayEvent {
	palette := in.Palette
	if palette == (Palette{}) {
		palette = DefaultPalette
	}

	start := DateOnly(in.Start)
	end := DateOnly(in.End)
	joined := DateOnly(in.JoinDate)
	today := DateOnly(in.Today)

	recorded := make(map[time.Time]bool, len(in.Attendances))
	var records []Attendance
	for _, a := range in.Attendances {
		d := DateOnly(a.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		recorded[d] = true
		records = append(records, a)
	}

	var approved []leave.LeaveRequest
	for _, l := range in.Leaves {
		if l.Status.IsApproved() {
			approved = append(approved, l)
		}
	}

	from, to := start, end
	if joined.After(from) {
		from = joined
	}
	if today.Before(to) {
		to = today
	}

	var events []DayEvent
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if isWeekend(d) || recorded[d] {
			continue
		}
		classification := ClassificationAbsent
		for _, l := range approved {
			if l.Covers(d) {
				classification = ClassificationOnLeave
				break
			}
		}
		events = append(events, newEvent(in.TitlePrefix, classification, d, palette.color(classification, false)))
	}

	for _, a := range records {
		events = append(events, newEvent(in.TitlePrefix, a.Status, DateOnly(a.Date), palette.color(a.Status, true)))
	}
	return events
}

func newEvent(prefix, classification string, day time.Time, color string) DayEvent {
	title := classification
	if prefix != "" {
		title = prefix + " - " + classification
	}
	return DayEvent{
		Title:           title,
		Start:           day.Format("2006-01-02"),
		BackgroundColor: color,
		BorderColor:     color,
		Classification:  classification,
	}
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
