package progress

import "time"

const dayLayout = "2006-01-02"

// DayOf renders the calendar day of t in loc. All streak comparisons happen
// on these day strings, so "today" is defined once by whoever owns loc.
func DayOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

// Streak is the forward-only completion streak. Un-completing a resource
// never rolls it back.
type Streak struct {
	Current       int
	LastCompleted string // day string, empty when the user never completed anything
}

// Advance applies one new completion event occurring at eventTime and returns
// the resulting streak. Rules:
//
//	same day as LastCompleted  -> unchanged
//	the day after              -> Current+1
//	anything else              -> reset to 1
//
// Callers must only invoke this for transitions into "completed"; duplicate
// toggles of an already-completed resource are not new events.
func Advance(s Streak, eventTime time.Time, loc *time.Location) Streak {
	today := DayOf(eventTime, loc)
	if s.LastCompleted == today {
		return s
	}

	yesterday := DayOf(eventTime.In(loc).AddDate(0, 0, -1), loc)
	if s.LastCompleted == yesterday {
		return Streak{Current: s.Current + 1, LastCompleted: today}
	}

	return Streak{Current: 1, LastCompleted: today}
}
