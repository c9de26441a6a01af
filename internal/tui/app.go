package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hasibul/akta/internal/engine"
	"github.com/hasibul/akta/internal/export"
	"github.com/hasibul/akta/internal/store"
)

// App is the root Bubble Tea model. It owns the single once-per-second tick
// and fans it out to both timers, so no view ever runs its own clock.
type App struct {
	store    *store.Store
	recorder *engine.Recorder
	goal     engine.GoalTracker
	settings engine.Settings

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	pomodoro  pomodoroModel
	stats     statsModel
	subjects  subjectsModel
	todos     todosModel
	config    settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	cfg := s.LoadSettings()
	rec := engine.NewRecorder(s)

	return App{
		store:      s,
		recorder:   rec,
		goal:       s.LoadGoal(),
		settings:   cfg,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s, rec),
		pomodoro:   newPomodoroModel(rec, cfg),
		stats:      newStatsModel(s),
		subjects:   newSubjectsModel(s),
		todos:      newTodosModel(s),
		config:     newSettingsModel(s, cfg),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.pomodoro.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.subjects.setSize(a.width, contentHeight)
		a.todos.setSize(a.width, contentHeight)
		a.config.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewPomodoro
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSubjects
			return a, a.subjects.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewTodos
			return a, a.todos.refresh()
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewSettings
			return a, a.config.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 6
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// Both timers count against the same tick; views never self-tick.
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		a.pomodoro, cmd = a.pomodoro.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case sessionSavedMsg:
		return a.afterSessionSaved(msg.seconds)

	case settingsSavedMsg:
		a.settings = msg.settings
		a.goal.TargetMinutes = msg.settings.DailyGoalMinutes
		a.pomodoro.applySettings(msg.settings)
		a.status = "Settings saved"
		return a, nil

	case subjectSelectedMsg:
		sub := msg.subject
		a.recorder.Select(&sub)
		a.status = "Studying " + sub.Name
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// afterSessionSaved runs the bookkeeping a new session triggers: activity
// streak, daily goal and achievement checks. It runs inline so the goal
// tracker's edge-trigger state survives in the model.
func (a App) afterSessionSaved(seconds int) (tea.Model, tea.Cmd) {
	now := time.Now()
	var notes []string
	notes = append(notes, fmt.Sprintf("Saved %s of study", formatClock(seconds)))

	if st, err := a.store.GetStreak(); err == nil {
		advanced := engine.AdvanceStreak(st, now)
		if advanced != st {
			a.store.SaveStreak(advanced)
			if advanced.Current > st.Current {
				notes = append(notes, fmt.Sprintf("%d day streak", advanced.Current))
			}
		}
	}

	todayTotal, _ := a.store.TodayTotal()
	goalStatus := a.goal.Evaluate(int(todayTotal), now)
	if goalStatus.StreakAdvanced {
		a.store.SaveGoal(a.goal)
	}
	if goalStatus.JustMet {
		notes = append(notes, fmt.Sprintf("Daily goal reached (%d min)", goalStatus.TodayMinutes))
	}

	chime := goalStatus.JustMet
	catalog, _ := a.store.ListAchievements()
	earned, _ := a.store.EarnedSet()
	if stats, err := a.store.Stats(); err == nil {
		for _, ach := range engine.CheckAchievements(catalog, earned, stats) {
			a.store.AwardAchievement(ach.ID)
			notes = append(notes, fmt.Sprintf("Unlocked: %s %s", ach.Icon, ach.Name))
			chime = true
		}
	}

	a.status = strings.Join(notes, " · ")
	if chime && a.settings.SoundEnabled {
		a.status += "\a"
	}
	return a, a.dashboard.loadData()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewPomodoro:
		a.pomodoro, cmd = a.pomodoro.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSubjects:
		a.subjects, cmd = a.subjects.update(msg)
	case viewTodos:
		a.todos, cmd = a.todos.update(msg)
	case viewSettings:
		a.config, cmd = a.config.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewSubjects:
		return a.subjects.formActive
	case viewTodos:
		return a.todos.formActive
	case viewSettings:
		return a.config.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewStats:
		return a.stats.refresh()
	case viewSubjects:
		return a.subjects.refresh()
	case viewTodos:
		return a.todos.refresh()
	case viewSettings:
		return a.config.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewPomodoro:
		content = a.pomodoro.view()
	case viewStats:
		content = a.stats.view()
	case viewSubjects:
		content = a.subjects.view()
	case viewTodos:
		content = a.todos.view()
	case viewSettings:
		content = a.config.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("akta")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Active timer indicator, whichever timer owns the tick.
	timerInfo := ""
	if a.dashboard.isRunning() {
		elapsed := formatClock(a.dashboard.elapsed())
		timerInfo = successStyle.Render(" ● " + elapsed)
		if a.dashboard.isPaused() {
			timerInfo = warningStyle.Render(" ⏸ " + elapsed)
		}
	} else if a.pomodoro.isRunning() {
		remaining := formatCountdown(a.pomodoro.remaining())
		timerInfo = successStyle.Render(" ◔ " + remaining)
		if a.pomodoro.isPaused() {
			timerInfo = warningStyle.Render(" ⏸ " + remaining)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		sessions, err := a.store.ListSessions(0)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("akta-export-%s.csv", dateStr))
			if err := export.ToCSV(sessions, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("akta-export-%s.json", dateStr))
			if err := export.ToJSON(sessions, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
