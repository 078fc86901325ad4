package calc

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Span is a calendar distance between two dates.
type Span struct {
	Years  int
	Months int
	Days   int
}

func (s Span) String() string {
	return fmt.Sprintf("%s, %s, %s", plural(s.Years, "year"), plural(s.Months, "month"), plural(s.Days, "day"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

// date truncates t to midnight UTC of its calendar day.
func date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(in types.Input, name string) (time.Time, error) {
	v, err := in.Require(name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, types.InputError("%s must be a date (YYYY-MM-DD)", name)
	}
	return t, nil
}

// Between returns the calendar span from a to b. It requires a <= b.
// Month steps clamp to the end of shorter months, so Jan 31 to Mar 1 2024
// is 1 month 1 day.
func Between(a, b time.Time) Span {
	a, b = date(a), date(b)
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	anchor := addMonthsClamped(a, months)
	if anchor.After(b) {
		months--
		anchor = addMonthsClamped(a, months)
	}
	return Span{Years: months / 12, Months: months % 12, Days: DaysBetween(anchor, b)}
}

// addMonthsClamped adds n months to t, clamping the day to the length of
// the target month.
func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), last)-1)
}

// DaysBetween counts whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(date(b).Sub(date(a)).Hours() / 24)
}

// BusinessDays counts Monday-to-Friday days in [a, b).
func BusinessDays(a, b time.Time) int {
	n := 0
	for d := date(a); d.Before(date(b)); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

// nextBirthday returns the next anniversary of birth on or after today.
// Feb 29 birthdays fall on Mar 1 in common years.
func nextBirthday(birth, today time.Time) time.Time {
	next := time.Date(today.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

// Age is the age-calculator widget.
type Age struct {
	Now func() time.Time
}

// Run implements types.Widget.
func (a Age) Run(_ context.Context, in types.Input) (types.Result, error) {
	birth, err := parseDate(in, "birthdate")
	if err != nil {
		return types.Result{}, err
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	on := date(now())
	if in.Get("on") != "" {
		if on, err = parseDate(in, "on"); err != nil {
			return types.Result{}, err
		}
	}
	if birth.After(on) {
		return types.Result{}, types.InputError("birthdate is in the future")
	}

	span := Between(birth, on)
	days := DaysBetween(birth, on)
	res := types.Result{Output: span.String()}
	res.Add("Years", strconv.Itoa(span.Years)).
		Add("Total months", widgets.Number(float64(span.Years*12+span.Months), 0)).
		Add("Total weeks", widgets.Number(float64(days/7), 0)).
		Add("Total days", widgets.Number(float64(days), 0)).
		Add("Next birthday", plural(DaysBetween(on, nextBirthday(birth, on)), "day"))
	return res, nil
}

// DateDifference returns the date-difference widget. The end date may come
// before the start; the span is then reported as negative days.
func DateDifference() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		start, err := parseDate(in, "start")
		if err != nil {
			return types.Result{}, err
		}
		end, err := parseDate(in, "end")
		if err != nil {
			return types.Result{}, err
		}
		sign := 1
		if end.Before(start) {
			start, end, sign = end, start, -1
		}
		if in.Bool("include_end") {
			end = end.AddDate(0, 0, 1)
		}

		days := DaysBetween(start, end)
		res := types.Result{Output: widgets.Number(float64(sign*days), 0) + " days"}
		res.Add("Calendar", Between(start, end).String()).
			Add("Weeks", fmt.Sprintf("%d weeks, %s", days/7, plural(days%7, "day"))).
			Add("Business days", widgets.Number(float64(BusinessDays(start, end)), 0)).
			Add("Hours", widgets.Number(float64(days*24), 0))
		return res, nil
	})
}
