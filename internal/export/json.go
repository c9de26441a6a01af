package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hasibul/akta/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID          int64  `json:"id"`
	Subject     string `json:"subject"`
	Color       string `json:"color,omitempty"`
	StartedAt   string `json:"started_at"`
	DurationSec int64  `json:"duration_seconds"`
	Duration    string `json:"duration"`
}

func ToJSON(sessions []store.StudySession, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, sess := range sessions {
		out.Sessions = append(out.Sessions, jsonSession{
			ID:          sess.ID,
			Subject:     sess.SubjectName,
			Color:       sess.SubjectColor,
			StartedAt:   sess.StartedAt.Local().Format(time.RFC3339),
			DurationSec: sess.Duration,
			Duration:    formatDuration(sess.Duration),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
