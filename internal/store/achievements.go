package store

import (
	"fmt"
	"time"

	"github.com/hasibul/akta/internal/engine"
)

// ListAchievements returns the static catalog, ordered by requirement value
// ascending so the easiest awards come first.
func (s *Store) ListAchievements() ([]engine.Achievement, error) {
	rows, err := s.db.Query(`
		SELECT id, key, name, description, icon, requirement_type, requirement_value
		FROM achievements
		ORDER BY requirement_value, key`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var catalog []engine.Achievement
	for rows.Next() {
		var a engine.Achievement
		if err := rows.Scan(&a.ID, &a.Key, &a.Name, &a.Description, &a.Icon, &a.RequirementType, &a.RequirementValue); err != nil {
			return nil, err
		}
		catalog = append(catalog, a)
	}
	return catalog, rows.Err()
}

func (s *Store) ListEarnedAchievements() ([]engine.EarnedAchievement, error) {
	rows, err := s.db.Query(`SELECT achievement_id, earned_at FROM earned_achievements ORDER BY earned_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list earned achievements: %w", err)
	}
	defer rows.Close()

	var earned []engine.EarnedAchievement
	for rows.Next() {
		var ea engine.EarnedAchievement
		var earnedAt string
		if err := rows.Scan(&ea.AchievementID, &earnedAt); err != nil {
			return nil, err
		}
		ea.EarnedAt, _ = time.Parse(time.RFC3339, earnedAt)
		earned = append(earned, ea)
	}
	return earned, rows.Err()
}

// EarnedSet returns earned achievement ids keyed for membership checks.
func (s *Store) EarnedSet() (map[int64]bool, error) {
	earned, err := s.ListEarnedAchievements()
	if err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(earned))
	for _, ea := range earned {
		set[ea.AchievementID] = true
	}
	return set, nil
}

// AwardAchievement records an earned achievement. The unique constraint on
// achievement_id makes the insert append-only and at-most-once.
func (s *Store) AwardAchievement(achievementID int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO earned_achievements (achievement_id, earned_at) VALUES (?, ?)`,
		achievementID, now,
	)
	return err
}
