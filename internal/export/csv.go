package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/hasibul/akta/internal/store"
)

// ToCSV writes sessions to path. Subject name and color come from the
// per-session snapshot, so exports survive subject deletion.
func ToCSV(sessions []store.StudySession, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Subject", "Started", "Duration (s)", "Duration"}); err != nil {
		return err
	}

	for _, sess := range sessions {
		row := []string{
			fmt.Sprintf("%d", sess.ID),
			sess.SubjectName,
			sess.StartedAt.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", sess.Duration),
			formatDuration(sess.Duration),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
