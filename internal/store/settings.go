package store

import (
	"fmt"
	"strconv"

	"github.com/hasibul/akta/internal/engine"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (s *Store) settingInt(key string, fallback int) int {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s *Store) settingBool(key string, fallback bool) bool {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	return v == "1"
}

func boolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// LoadSettings reads the pomodoro configuration, falling back to defaults
// for any missing or malformed key.
func (s *Store) LoadSettings() engine.Settings {
	d := engine.DefaultSettings()
	return engine.Settings{
		WorkMinutes:             s.settingInt("work_minutes", d.WorkMinutes),
		ShortBreakMinutes:       s.settingInt("short_break_minutes", d.ShortBreakMinutes),
		LongBreakMinutes:        s.settingInt("long_break_minutes", d.LongBreakMinutes),
		SessionsBeforeLongBreak: s.settingInt("sessions_before_long_break", d.SessionsBeforeLongBreak),
		AutoStartBreak:          s.settingBool("auto_start_break", d.AutoStartBreak),
		AutoStartWork:           s.settingBool("auto_start_work", d.AutoStartWork),
		SoundEnabled:            s.settingBool("sound_enabled", d.SoundEnabled),
		DailyGoalMinutes:        s.settingInt("daily_goal_minutes", d.DailyGoalMinutes),
	}
}

func (s *Store) SaveSettings(cfg engine.Settings) error {
	pairs := []struct{ key, value string }{
		{"work_minutes", strconv.Itoa(cfg.WorkMinutes)},
		{"short_break_minutes", strconv.Itoa(cfg.ShortBreakMinutes)},
		{"long_break_minutes", strconv.Itoa(cfg.LongBreakMinutes)},
		{"sessions_before_long_break", strconv.Itoa(cfg.SessionsBeforeLongBreak)},
		{"auto_start_break", boolValue(cfg.AutoStartBreak)},
		{"auto_start_work", boolValue(cfg.AutoStartWork)},
		{"sound_enabled", boolValue(cfg.SoundEnabled)},
		{"daily_goal_minutes", strconv.Itoa(cfg.DailyGoalMinutes)},
	}
	for _, p := range pairs {
		if err := s.SetSetting(p.key, p.value); err != nil {
			return fmt.Errorf("save setting %q: %w", p.key, err)
		}
	}
	return nil
}

// LoadGoal restores the daily goal tracker, including its own completion
// streak, which is independent of the activity streak.
func (s *Store) LoadGoal() engine.GoalTracker {
	lastCompleted, err := s.GetSetting("goal_last_completed")
	if err != nil {
		lastCompleted = ""
	}
	return engine.GoalTracker{
		TargetMinutes:     s.settingInt("daily_goal_minutes", engine.DefaultSettings().DailyGoalMinutes),
		Streak:            s.settingInt("goal_streak", 0),
		LastCompletedDate: lastCompleted,
	}
}

func (s *Store) SaveGoal(g engine.GoalTracker) error {
	if err := s.SetSetting("goal_streak", strconv.Itoa(g.Streak)); err != nil {
		return err
	}
	return s.SetSetting("goal_last_completed", g.LastCompletedDate)
}
