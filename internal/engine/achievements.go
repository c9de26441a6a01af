package engine

import "time"

// Requirement types an achievement can be gated on.
const (
	ReqTotalHours    = "total_hours"
	ReqStreakDays    = "streak_days"
	ReqSessionsCount = "sessions_count"
)

// Achievement is one entry of the static catalog.
type Achievement struct {
	ID               int64
	Key              string
	Name             string
	Description      string
	Icon             string
	RequirementType  string
	RequirementValue int
}

// EarnedAchievement links a catalog entry to the moment it was earned.
type EarnedAchievement struct {
	AchievementID int64
	EarnedAt      time.Time
}

// Stats are the aggregates achievements are evaluated against.
type Stats struct {
	TotalHours    float64
	CurrentStreak int
	SessionsCount int
}

// CheckAchievements returns the catalog entries that newly qualify under
// stats. Entries already in earned are never re-evaluated, so repeated calls
// with the same inputs report each award exactly once (provided the caller
// records the returned batch).
func CheckAchievements(catalog []Achievement, earned map[int64]bool, stats Stats) []Achievement {
	var awarded []Achievement
	for _, a := range catalog {
		if earned[a.ID] {
			continue
		}
		var ok bool
		switch a.RequirementType {
		case ReqTotalHours:
			ok = stats.TotalHours >= float64(a.RequirementValue)
		case ReqStreakDays:
			ok = stats.CurrentStreak >= a.RequirementValue
		case ReqSessionsCount:
			ok = stats.SessionsCount >= a.RequirementValue
		}
		if ok {
			awarded = append(awarded, a)
		}
	}
	return awarded
}
