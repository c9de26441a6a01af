package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS subjects (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE,
		color       TEXT NOT NULL DEFAULT '#7AA2F7',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS study_sessions (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		subject_id    INTEGER REFERENCES subjects(id) ON DELETE SET NULL,
		subject_name  TEXT NOT NULL,
		subject_color TEXT NOT NULL,
		duration      INTEGER NOT NULL,
		started_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_subject ON study_sessions(subject_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON study_sessions(started_at);

	CREATE TABLE IF NOT EXISTS streak (
		id               INTEGER PRIMARY KEY CHECK (id = 1),
		current_streak   INTEGER NOT NULL DEFAULT 0,
		longest_streak   INTEGER NOT NULL DEFAULT 0,
		last_active_date TEXT NOT NULL DEFAULT ''
	);

	INSERT OR IGNORE INTO streak (id) VALUES (1);

	CREATE TABLE IF NOT EXISTS achievements (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		key               TEXT NOT NULL UNIQUE,
		name              TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		icon              TEXT NOT NULL DEFAULT '',
		requirement_type  TEXT NOT NULL,
		requirement_value INTEGER NOT NULL
	);

	INSERT OR IGNORE INTO achievements (key, name, description, icon, requirement_type, requirement_value) VALUES
		('first_session',   'First Focus',     'Record your first study session',    '⏱', 'sessions_count', 1),
		('ten_sessions',    'Getting Serious', 'Record 10 study sessions',           '📚', 'sessions_count', 10),
		('fifty_sessions',  'Session Veteran', 'Record 50 study sessions',           '🎯', 'sessions_count', 50),
		('hundred_sessions','Centurion',       'Record 100 study sessions',          '🏛', 'sessions_count', 100),
		('streak_three',    'Warming Up',      'Study 3 days in a row',              '🔥', 'streak_days', 3),
		('streak_week',     'One Week Strong', 'Study 7 days in a row',              '⚡', 'streak_days', 7),
		('streak_month',    'Habit Formed',    'Study 30 days in a row',             '🌟', 'streak_days', 30),
		('one_hour',        'First Hour',      'Accumulate 1 hour of study time',    '🕐', 'total_hours', 1),
		('ten_hours',       'Deep Diver',      'Accumulate 10 hours of study time',  '🌊', 'total_hours', 10),
		('fifty_hours',     'Scholar',         'Accumulate 50 hours of study time',  '🎓', 'total_hours', 50),
		('hundred_hours',   'Master of Focus', 'Accumulate 100 hours of study time', '🏆', 'total_hours', 100);

	CREATE TABLE IF NOT EXISTS earned_achievements (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		achievement_id INTEGER NOT NULL UNIQUE REFERENCES achievements(id),
		earned_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS todos (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT NOT NULL,
		completed   INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('work_minutes',               '25'),
		('short_break_minutes',        '5'),
		('long_break_minutes',         '15'),
		('sessions_before_long_break', '4'),
		('auto_start_break',           '0'),
		('auto_start_work',            '0'),
		('sound_enabled',              '1'),
		('daily_goal_minutes',         '60'),
		('goal_streak',                '0'),
		('goal_last_completed',        '');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/akta/akta.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "akta", "akta.db"), nil
}
