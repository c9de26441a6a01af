package engine

import "time"

// GoalTracker evaluates today's study time against the daily target. It
// keeps its own completion streak, separate from the activity streak, and
// remembers whether the current crossing has already been announced.
type GoalTracker struct {
	TargetMinutes     int
	Streak            int
	LastCompletedDate string

	notified bool
}

// GoalStatus is one evaluation of the goal. JustMet is edge-triggered: true
// only on the evaluation where Met first becomes true, re-armed once Met
// drops back below target (i.e. the next calendar day). StreakAdvanced tells
// the caller the tracker mutated state worth persisting.
type GoalStatus struct {
	TodayMinutes   int
	Progress       float64
	Met            bool
	JustMet        bool
	StreakAdvanced bool
}

func (g *GoalTracker) Evaluate(todayTotalSeconds int, today time.Time) GoalStatus {
	if g.TargetMinutes <= 0 {
		return GoalStatus{}
	}

	st := GoalStatus{TodayMinutes: todayTotalSeconds / 60}
	st.Progress = float64(st.TodayMinutes) / float64(g.TargetMinutes) * 100
	if st.Progress > 100 {
		st.Progress = 100
	}
	st.Met = st.TodayMinutes >= g.TargetMinutes

	if !st.Met {
		g.notified = false
		return st
	}
	if !g.notified {
		g.notified = true
		st.JustMet = true
	}

	day := DateString(today)
	if g.LastCompletedDate != day {
		if g.LastCompletedDate == DateString(today.AddDate(0, 0, -1)) {
			g.Streak++
		} else {
			g.Streak = 1
		}
		g.LastCompletedDate = day
		st.StreakAdvanced = true
	}
	return st
}
