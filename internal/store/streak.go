package store

import (
	"fmt"

	"github.com/hasibul/akta/internal/engine"
)

// GetStreak reads the single streak row, zero defaults when untouched.
func (s *Store) GetStreak() (engine.Streak, error) {
	var st engine.Streak
	err := s.db.QueryRow(
		`SELECT current_streak, longest_streak, last_active_date FROM streak WHERE id = 1`,
	).Scan(&st.Current, &st.Longest, &st.LastActiveDate)
	if err != nil {
		return engine.Streak{}, fmt.Errorf("get streak: %w", err)
	}
	return st, nil
}

func (s *Store) SaveStreak(st engine.Streak) error {
	_, err := s.db.Exec(
		`UPDATE streak SET current_streak = ?, longest_streak = ?, last_active_date = ? WHERE id = 1`,
		st.Current, st.Longest, st.LastActiveDate,
	)
	return err
}
