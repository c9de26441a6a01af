package store

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/hasibul/akta/internal/engine"
)

// CreateSession persists an accepted study interval. It satisfies
// engine.SessionSink; validation (the 60-second floor, subject selection)
// has already happened by the time a candidate reaches this point.
func (s *Store) CreateSession(subjectID int64, subjectName, subjectColor string, durationSeconds int) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO study_sessions (subject_id, subject_name, subject_color, duration, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		subjectID, subjectName, subjectColor, durationSeconds, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *Store) GetSession(id int64) (*StudySession, error) {
	sess := &StudySession{}
	var startedAt string
	var subjectID sql.NullInt64

	err := s.db.QueryRow(
		`SELECT id, subject_id, subject_name, subject_color, duration, started_at
		 FROM study_sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &subjectID, &sess.SubjectName, &sess.SubjectColor, &sess.Duration, &startedAt)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	if subjectID.Valid {
		sess.SubjectID = &subjectID.Int64
	}
	sess.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	return sess, nil
}

// ListSessions returns sessions newest first. limit <= 0 means no limit.
func (s *Store) ListSessions(limit int) ([]StudySession, error) {
	query := `SELECT id, subject_id, subject_name, subject_color, duration, started_at
		 FROM study_sessions ORDER BY started_at DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []StudySession
	for rows.Next() {
		var sess StudySession
		var startedAt string
		var subjectID sql.NullInt64
		if err := rows.Scan(&sess.ID, &subjectID, &sess.SubjectName, &sess.SubjectColor, &sess.Duration, &startedAt); err != nil {
			return nil, err
		}
		if subjectID.Valid {
			sess.SubjectID = &subjectID.Int64
		}
		sess.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *Store) DeleteSession(id int64) error {
	_, err := s.db.Exec(`DELETE FROM study_sessions WHERE id = ?`, id)
	return err
}

// startOfDay returns midnight of t's calendar day in t's location. Day
// buckets follow the user's wall clock, the same base the streak and goal
// trackers key their dates on.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *Store) rangeTotal(from, to time.Time) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(duration), 0) FROM study_sessions WHERE started_at >= ? AND started_at < ?`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

func (s *Store) TodayTotal() (int64, error) {
	from := startOfDay(time.Now())
	return s.rangeTotal(from, from.AddDate(0, 0, 1))
}

func (s *Store) WeekTotal() (int64, error) {
	today := startOfDay(time.Now())
	return s.rangeTotal(today.AddDate(0, 0, -6), today.AddDate(0, 0, 1))
}

// SubjectTotals aggregates all-time study seconds per subject snapshot name,
// largest first.
func (s *Store) SubjectTotals() ([]SubjectTotal, error) {
	rows, err := s.db.Query(`
		SELECT subject_name, subject_color, COALESCE(SUM(duration), 0)
		FROM study_sessions
		GROUP BY subject_name, subject_color
		ORDER BY SUM(duration) DESC`)
	if err != nil {
		return nil, fmt.Errorf("subject totals: %w", err)
	}
	defer rows.Close()

	var totals []SubjectTotal
	for rows.Next() {
		var st SubjectTotal
		if err := rows.Scan(&st.Name, &st.Color, &st.TotalSeconds); err != nil {
			return nil, err
		}
		totals = append(totals, st)
	}
	return totals, rows.Err()
}

// DailyTotals aggregates study seconds per calendar day in [from, to).
// Timestamps are stored in UTC; each session is bucketed by its calendar day
// in from's location, so a late-evening session lands on the day the user's
// wall clock says it happened.
func (s *Store) DailyTotals(from, to time.Time) ([]DayTotal, error) {
	rows, err := s.db.Query(`
		SELECT started_at, duration
		FROM study_sessions
		WHERE started_at >= ? AND started_at < ?`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	loc := from.Location()
	byDay := map[string]int64{}
	for rows.Next() {
		var startedAt string
		var duration int64
		if err := rows.Scan(&startedAt, &duration); err != nil {
			return nil, err
		}
		started, err := time.Parse(time.RFC3339, startedAt)
		if err != nil {
			continue
		}
		byDay[started.In(loc).Format("2006-01-02")] += duration
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	var totals []DayTotal
	for _, day := range days {
		totals = append(totals, DayTotal{Date: day, TotalSeconds: byDay[day]})
	}
	return totals, nil
}

func (s *Store) SessionCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM study_sessions`).Scan(&count)
	return count, err
}

func (s *Store) TotalSeconds() (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(`SELECT COALESCE(SUM(duration), 0) FROM study_sessions`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

// Stats assembles the aggregates achievement checks run against.
func (s *Store) Stats() (engine.Stats, error) {
	total, err := s.TotalSeconds()
	if err != nil {
		return engine.Stats{}, fmt.Errorf("stats total: %w", err)
	}
	count, err := s.SessionCount()
	if err != nil {
		return engine.Stats{}, fmt.Errorf("stats count: %w", err)
	}
	streak, err := s.GetStreak()
	if err != nil {
		return engine.Stats{}, fmt.Errorf("stats streak: %w", err)
	}
	return engine.Stats{
		TotalHours:    float64(total) / 3600,
		CurrentStreak: streak.Current,
		SessionsCount: count,
	}, nil
}
