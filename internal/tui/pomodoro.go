package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hasibul/akta/internal/engine"
)

// pomodoroModel renders the work/break cycle. All timing lives in the engine
// state machine; this model only feeds it ticks and key presses and turns the
// returned events into status lines and saved sessions.
type pomodoroModel struct {
	recorder *engine.Recorder
	pom      *engine.Pomodoro
	width    int
	height   int
}

func newPomodoroModel(rec *engine.Recorder, cfg engine.Settings) pomodoroModel {
	return pomodoroModel{
		recorder: rec,
		pom:      engine.NewPomodoro(cfg),
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *pomodoroModel) applySettings(cfg engine.Settings) {
	p.pom.SetSettings(cfg)
}

func (p pomodoroModel) isRunning() bool { return p.pom.Running() }
func (p pomodoroModel) isPaused() bool  { return p.pom.Paused() }
func (p pomodoroModel) remaining() int  { return p.pom.SecondsRemaining() }

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return p, p.handleEvents(p.pom.Tick())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if p.pom.Running() && !p.pom.Paused() {
				return p, nil
			}
			p.pom.Start()
			return p, status(fmt.Sprintf("Started %s", p.pom.Phase()))

		case key.Matches(msg, keys.Pause):
			if !p.pom.Running() {
				return p, nil
			}
			if p.pom.Paused() {
				p.pom.Resume()
				return p, status("Resumed")
			}
			p.pom.Pause()
			return p, status("Paused")

		case key.Matches(msg, keys.Skip):
			if !p.pom.Running() && !p.pom.Paused() {
				return p, nil
			}
			return p, p.handleEvents(p.pom.Skip())

		case key.Matches(msg, keys.Reset):
			p.pom.Reset()
			return p, status("Phase reset")
		}

		switch msg.String() {
		case "R":
			p.pom.ResetAll()
			return p, status("Pomodoro reset")
		case "w":
			return p, p.handleEvents(p.pom.SetPhase(engine.PhaseWork))
		case "b":
			return p, p.handleEvents(p.pom.SetPhase(engine.PhaseShortBreak))
		case "B":
			return p, p.handleEvents(p.pom.SetPhase(engine.PhaseLongBreak))
		}
	}
	return p, nil
}

// handleEvents consumes the events a transition produced, in order. Work
// completions go through the same accounting rule as the stopwatch.
func (p pomodoroModel) handleEvents(events []engine.Event) tea.Cmd {
	if len(events) == 0 {
		return nil
	}

	var cmds []tea.Cmd
	var notes []string
	chime := false

	for _, ev := range events {
		switch ev.Kind {
		case engine.EventWorkComplete:
			seconds := ev.Seconds
			accepted, err := p.recorder.Record(seconds)
			switch {
			case err != nil:
				cmds = append(cmds, statusError(fmt.Sprintf("Could not save session: %v", err)))
			case accepted:
				cmds = append(cmds, func() tea.Msg { return sessionSavedMsg{seconds: seconds} })
			case p.recorder.Subject() == nil:
				notes = append(notes, "no subject selected, focus not saved")
			default:
				notes = append(notes, "under a minute, not counted")
			}
		case engine.EventBreakComplete:
			notes = append(notes, "break over")
		case engine.EventPhaseChanged:
			notes = append(notes, "next: "+ev.Phase.String())
		case engine.EventChime:
			chime = true
		}
	}

	if len(notes) > 0 {
		text := strings.Join(notes, " · ")
		if chime {
			text += "\a"
		}
		cmds = append(cmds, status(text))
	} else if chime {
		cmds = append(cmds, status("\a"))
	}
	return tea.Batch(cmds...)
}

func (p pomodoroModel) view() string {
	w := p.width - 4

	title := titleStyle.Render("Pomodoro")

	var timeDisplay string
	var phaseLabel string

	countdown := formatCountdown(p.pom.SecondsRemaining())
	switch p.pom.Phase() {
	case engine.PhaseWork:
		timeDisplay = accentStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(countdown)
		phaseLabel = accentStyle.Bold(true).Render("FOCUS")
	case engine.PhaseShortBreak:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(countdown)
		phaseLabel = successStyle.Bold(true).Render("SHORT BREAK")
	case engine.PhaseLongBreak:
		timeDisplay = highlightStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(countdown)
		phaseLabel = highlightStyle.Bold(true).Render("LONG BREAK")
	}

	var state string
	switch {
	case p.pom.Paused():
		state = warningStyle.Render("⏸  paused")
	case p.pom.Running():
		state = successStyle.Render("●  running")
	default:
		state = mutedStyle.Render("press s to start")
	}

	subjectLine := mutedStyle.Render("No subject — focus time will not be saved")
	if sub := p.recorder.Subject(); sub != nil {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(sub.Color)).Render("●")
		subjectLine = dot + " " + highlightStyle.Render(sub.Name)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
		state,
		"",
		p.renderCycle(),
		subjectLine,
	)

	var controls string
	switch {
	case p.pom.Running() || p.pom.Paused():
		controls = mutedStyle.Render("space: pause/resume  n: skip  r: reset  R: reset all")
	default:
		controls = mutedStyle.Render("s: start  n: skip  w/b/B: set phase  R: reset all")
	}

	total := mutedStyle.Render(fmt.Sprintf("focused today in cycles: %s", formatClock(p.pom.TotalWorkSeconds())))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", total, controls),
	)
}

// renderCycle shows progress toward the long break as a dot per session.
func (p pomodoroModel) renderCycle() string {
	cycle := p.pom.Settings().SessionsBeforeLongBreak
	if cycle <= 0 {
		return ""
	}
	done := p.pom.CompletedSessions() % cycle
	if done == 0 && p.pom.CompletedSessions() > 0 {
		done = cycle
	}

	var parts []string
	for i := 0; i < cycle; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && p.pom.Phase() == engine.PhaseWork && p.pom.Running():
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  %d completed", p.pom.CompletedSessions()))
	return progress + counter
}
