package tui

import (
	"fmt"
	"time"

	"github.com/hasibul/akta/internal/engine"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewPomodoro
	viewStats
	viewSubjects
	viewTodos
	viewSettings
)

var viewNames = []string{"Dashboard", "Pomodoro", "Stats", "Subjects", "Todos", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// sessionSavedMsg announces a persisted study session. The app reacts by
// advancing the streak, re-evaluating the daily goal and checking
// achievements.
type sessionSavedMsg struct {
	seconds int
}

// settingsSavedMsg carries the new configuration to every interested view.
type settingsSavedMsg struct {
	settings engine.Settings
}

type subjectSelectedMsg struct {
	subject engine.SelectedSubject
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatClock renders whole seconds as HH:MM:SS.
func formatClock(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatClock(int(secs))
}

// formatCountdown renders remaining seconds as MM:SS, the pomodoro display.
func formatCountdown(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}

func formatMinutes(secs int64) string {
	return fmt.Sprintf("%dm", secs/60)
}
