package store

import (
	"fmt"
	"strings"
	"time"
)

func (s *Store) CreateTodo(title string) (*Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("empty todo title")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO todos (title, created_at) VALUES (?, ?)`, title, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTodo(id)
}

func (s *Store) GetTodo(id int64) (*Todo, error) {
	t := &Todo{}
	var createdAt string
	var completed int
	err := s.db.QueryRow(
		`SELECT id, title, completed, created_at FROM todos WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &completed, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}
	t.Completed = completed == 1
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return t, nil
}

func (s *Store) ListTodos() ([]Todo, error) {
	rows, err := s.db.Query(`SELECT id, title, completed, created_at FROM todos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		var createdAt string
		var completed int
		if err := rows.Scan(&t.ID, &t.Title, &completed, &createdAt); err != nil {
			return nil, err
		}
		t.Completed = completed == 1
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (s *Store) SetTodoCompleted(id int64, completed bool) error {
	v := 0
	if completed {
		v = 1
	}
	_, err := s.db.Exec(`UPDATE todos SET completed = ? WHERE id = ?`, v, id)
	return err
}

func (s *Store) DeleteTodo(id int64) error {
	_, err := s.db.Exec(`DELETE FROM todos WHERE id = ?`, id)
	return err
}
