package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hasibul/akta/internal/engine"
	"github.com/hasibul/akta/internal/store"
)

// dashboardModel is the stopwatch view: free-form study timing against the
// selected subject, plus today's totals and the activity streak.
type dashboardModel struct {
	store    *store.Store
	recorder *engine.Recorder
	watch    engine.Stopwatch
	width    int
	height   int

	todayTotal int64
	goalTarget int
	streak     engine.Streak
	subjects   []store.Subject
	recent     []store.StudySession

	// Subject picker state
	picking      bool
	pickerCursor int
	// start the stopwatch once a subject is picked
	startOnPick bool
}

func newDashboardModel(s *store.Store, rec *engine.Recorder) dashboardModel {
	return dashboardModel{
		store:    s,
		recorder: rec,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool { return d.watch.Running() }
func (d dashboardModel) isPaused() bool  { return d.watch.Paused() }
func (d dashboardModel) elapsed() int    { return d.watch.Elapsed() }

type dashboardDataMsg struct {
	todayTotal int64
	goalTarget int
	streak     engine.Streak
	subjects   []store.Subject
	recent     []store.StudySession
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		total, _ := d.store.TodayTotal()
		streak, _ := d.store.GetStreak()
		subjects, _ := d.store.ListSubjects()
		recent, _ := d.store.ListSessions(5)
		cfg := d.store.LoadSettings()

		return dashboardDataMsg{
			todayTotal: total,
			goalTarget: cfg.DailyGoalMinutes,
			streak:     streak,
			subjects:   subjects,
			recent:     recent,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.todayTotal = msg.todayTotal
		d.goalTarget = msg.goalTarget
		d.streak = msg.streak
		d.subjects = msg.subjects
		d.recent = msg.recent
		return d, nil

	case tickMsg:
		d.watch.Tick()
		return d, nil

	case tea.KeyMsg:
		if d.picking {
			return d.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			return d.startStopwatch()

		case key.Matches(msg, keys.Stop):
			return d.stopAndRecord()

		case key.Matches(msg, keys.Pause):
			if !d.watch.Running() {
				return d, nil
			}
			if d.watch.Paused() {
				d.watch.Resume()
			} else {
				d.watch.Pause()
			}
			return d, nil

		case key.Matches(msg, keys.Reset):
			d.watch.Reset()
			return d, status("Stopwatch reset")

		case key.Matches(msg, keys.Subject):
			if len(d.subjects) == 0 {
				return d, statusError("No subjects yet. Press 4 to create one.")
			}
			d.picking = true
			d.pickerCursor = 0
			d.startOnPick = false
			return d, nil
		}
	}
	return d, nil
}

func (d dashboardModel) startStopwatch() (dashboardModel, tea.Cmd) {
	if d.watch.Running() && !d.watch.Paused() {
		return d, nil
	}
	if d.recorder.Subject() == nil {
		if len(d.subjects) == 0 {
			return d, statusError("No subjects yet. Press 4 to create one.")
		}
		if len(d.subjects) == 1 {
			sub := d.subjects[0]
			d.watch.Start()
			return d, func() tea.Msg {
				return subjectSelectedMsg{subject: engine.SelectedSubject{ID: sub.ID, Name: sub.Name, Color: sub.Color}}
			}
		}
		d.picking = true
		d.pickerCursor = 0
		d.startOnPick = true
		return d, nil
	}
	d.watch.Start()
	return d, status("Stopwatch started")
}

// stopAndRecord freezes the stopwatch, offers the elapsed seconds to
// accounting and zeroes the display. Rejected candidates leave no trace.
func (d dashboardModel) stopAndRecord() (dashboardModel, tea.Cmd) {
	if !d.watch.Running() {
		return d, nil
	}
	d.watch.Stop()
	seconds := d.watch.Elapsed()
	d.watch.Reset()

	accepted, err := d.recorder.Record(seconds)
	if err != nil {
		return d, statusError(fmt.Sprintf("Could not save session: %v", err))
	}
	if !accepted {
		if d.recorder.Subject() == nil {
			return d, statusError("No subject selected, nothing saved")
		}
		return d, status("Under a minute, not counted")
	}
	return d, func() tea.Msg { return sessionSavedMsg{seconds: seconds} }
}

func (d dashboardModel) updatePicker(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if d.pickerCursor > 0 {
			d.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if d.pickerCursor < len(d.subjects)-1 {
			d.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		sub := d.subjects[d.pickerCursor]
		d.picking = false
		if d.startOnPick {
			d.watch.Start()
		}
		return d, func() tea.Msg {
			return subjectSelectedMsg{subject: engine.SelectedSubject{ID: sub.ID, Name: sub.Name, Color: sub.Color}}
		}
	case key.Matches(msg, keys.Back):
		d.picking = false
	}
	return d, nil
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func statusError(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	timerPanel := d.renderTimerPanel(contentWidth)
	todayPanel := d.renderTodayPanel(contentWidth)

	var bottomPanel string
	if d.picking {
		bottomPanel = d.renderSubjectPicker(contentWidth)
	} else {
		bottomPanel = d.renderRecentPanel(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, todayPanel, bottomPanel)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	var timeDisplay string
	var indicator string

	subjectLine := mutedStyle.Render("No subject — press c to choose")
	if sub := d.recorder.Subject(); sub != nil {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(sub.Color)).Render("●")
		subjectLine = dot + " " + highlightStyle.Render(sub.Name)
	}

	if d.watch.Running() {
		timeStr := formatClock(d.watch.Elapsed())
		if d.watch.Paused() {
			timeDisplay = timerPausedStyle.Width(w - 6).Render(timeStr)
			indicator = warningStyle.Render("⏸  PAUSED")
		} else {
			timeDisplay = timerRunningStyle.Width(w - 6).Render(timeStr)
			indicator = successStyle.Render("●  STUDYING")
		}

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			subjectLine,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay = timerStyle.Width(w - 6).Render("00:00:00")
	indicator = mutedStyle.Render("■  STOPPED")
	hint := mutedStyle.Render("Press s to start studying")

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		subjectLine,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	total := highlightStyle.Render(formatSeconds(d.todayTotal))
	header := fmt.Sprintf("%s  %s", title, total)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, d.renderGoalBar(w-8))

	if d.streak.Current > 0 {
		streak := fmt.Sprintf("  🔥 %d day streak (best %d)", d.streak.Current, d.streak.Longest)
		rows = append(rows, successStyle.Render(streak))
	} else {
		rows = append(rows, mutedStyle.Render("  No streak yet — study today to start one"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderGoalBar draws today's minutes against the daily target.
func (d dashboardModel) renderGoalBar(w int) string {
	if d.goalTarget <= 0 {
		return mutedStyle.Render("  No daily goal set")
	}
	todayMin := int(d.todayTotal / 60)
	ratio := float64(todayMin) / float64(d.goalTarget)
	if ratio > 1 {
		ratio = 1
	}

	barWidth := w - 20
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(ratio * float64(barWidth))
	bar := progressFilledStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", barWidth-filled))

	label := fmt.Sprintf(" %d/%d min", todayMin, d.goalTarget)
	if todayMin >= d.goalTarget {
		label = successStyle.Render(label + " ✓")
	} else {
		label = mutedStyle.Render(label)
	}
	return "  " + bar + label
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Sessions")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No sessions yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, sess := range d.recent {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(sess.SubjectColor)).Render("●")
		startStr := sess.StartedAt.Local().Format("Jan 02 15:04")
		row := fmt.Sprintf("  %s %s  %-16s %s", dot, startStr, sess.SubjectName, formatSeconds(sess.Duration))
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderSubjectPicker(w int) string {
	title := titleStyle.Render("Select Subject")

	var rows []string
	rows = append(rows, title)
	for i, sub := range d.subjects {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(sub.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == d.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, dot, sub.Name)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
