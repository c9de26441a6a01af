package engine

import "time"

// Streak is the consecutive-day activity record. LastActiveDate is a
// calendar date string ("2006-01-02"), empty when no day has counted yet.
type Streak struct {
	Current        int
	Longest        int
	LastActiveDate string
}

// DateString renders t as the calendar-date key streaks are compared on.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// AdvanceStreak applies one qualifying day to the record. Calling it again
// for the same day is a no-op, so it is safe to run after every session.
// Yesterday extends the run; any larger gap restarts it at one.
func AdvanceStreak(s Streak, today time.Time) Streak {
	day := DateString(today)
	if s.LastActiveDate == day {
		return s
	}
	if s.LastActiveDate == DateString(today.AddDate(0, 0, -1)) {
		s.Current++
	} else {
		s.Current = 1
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastActiveDate = day
	return s
}
