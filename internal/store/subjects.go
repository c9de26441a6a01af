package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateSubject(name, color string) (*Subject, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO subjects (name, color, created_at) VALUES (?, ?, ?)`,
		name, color, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert subject: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSubject(id)
}

func (s *Store) GetSubject(id int64) (*Subject, error) {
	sub := &Subject{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, name, color, created_at FROM subjects WHERE id = ?`, id,
	).Scan(&sub.ID, &sub.Name, &sub.Color, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get subject %d: %w", id, err)
	}
	sub.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return sub, nil
}

func (s *Store) ListSubjects() ([]Subject, error) {
	rows, err := s.db.Query(`SELECT id, name, color, created_at FROM subjects ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []Subject
	for rows.Next() {
		var sub Subject
		var createdAt string
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Color, &createdAt); err != nil {
			return nil, err
		}
		sub.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		subjects = append(subjects, sub)
	}
	return subjects, rows.Err()
}

// DeleteSubject removes a subject. Existing sessions keep their denormalized
// name/color snapshot; only the live reference is cleared.
func (s *Store) DeleteSubject(id int64) error {
	_, err := s.db.Exec(`DELETE FROM subjects WHERE id = ?`, id)
	return err
}
