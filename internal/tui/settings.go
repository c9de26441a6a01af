package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/hasibul/akta/internal/engine"
	"github.com/hasibul/akta/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	current engine.Settings

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	work      *string
	shortBrk  *string
	longBrk   *string
	cycle     *string
	dailyGoal *string
	autoBreak *bool
	autoWork  *bool
	sound     *bool
}

func newSettingsModel(s *store.Store, cfg engine.Settings) settingsModel {
	w, sb, lb, cy, dg := "", "", "", "", ""
	ab, aw, snd := false, false, true
	return settingsModel{
		store:     s,
		current:   cfg,
		work:      &w,
		shortBrk:  &sb,
		longBrk:   &lb,
		cycle:     &cy,
		dailyGoal: &dg,
		autoBreak: &ab,
		autoWork:  &aw,
		sound:     &snd,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings engine.Settings
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{settings: s.store.LoadSettings()}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.current = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func validPositive(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.work = strconv.Itoa(s.current.WorkMinutes)
	*s.shortBrk = strconv.Itoa(s.current.ShortBreakMinutes)
	*s.longBrk = strconv.Itoa(s.current.LongBreakMinutes)
	*s.cycle = strconv.Itoa(s.current.SessionsBeforeLongBreak)
	*s.dailyGoal = strconv.Itoa(s.current.DailyGoalMinutes)
	*s.autoBreak = s.current.AutoStartBreak
	*s.autoWork = s.current.AutoStartWork
	*s.sound = s.current.SoundEnabled

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus length (min)").Value(s.work).Validate(validPositive),
			huh.NewInput().Title("Short break (min)").Value(s.shortBrk).Validate(validPositive),
			huh.NewInput().Title("Long break (min)").Value(s.longBrk).Validate(validPositive),
			huh.NewInput().Title("Sessions before long break").Value(s.cycle).Validate(validPositive),
		).Title("Pomodoro"),
		huh.NewGroup(
			huh.NewConfirm().Title("Auto-start breaks").Value(s.autoBreak),
			huh.NewConfirm().Title("Auto-start focus after breaks").Value(s.autoWork),
			huh.NewConfirm().Title("Completion sound").Value(s.sound),
			huh.NewInput().Title("Daily goal (min)").Value(s.dailyGoal).Validate(validPositive),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s.saveSettings()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() (settingsModel, tea.Cmd) {
	cfg := s.current
	cfg.WorkMinutes = parseIntOr(*s.work, cfg.WorkMinutes)
	cfg.ShortBreakMinutes = parseIntOr(*s.shortBrk, cfg.ShortBreakMinutes)
	cfg.LongBreakMinutes = parseIntOr(*s.longBrk, cfg.LongBreakMinutes)
	cfg.SessionsBeforeLongBreak = parseIntOr(*s.cycle, cfg.SessionsBeforeLongBreak)
	cfg.DailyGoalMinutes = parseIntOr(*s.dailyGoal, cfg.DailyGoalMinutes)
	cfg.AutoStartBreak = *s.autoBreak
	cfg.AutoStartWork = *s.autoWork
	cfg.SoundEnabled = *s.sound

	if err := s.store.SaveSettings(cfg); err != nil {
		return s, statusError(fmt.Sprintf("Could not save settings: %v", err))
	}
	s.current = cfg
	return s, func() tea.Msg { return settingsSavedMsg{settings: cfg} }
}

func parseIntOr(v string, fallback int) int {
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return fallback
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit")

	row := func(label, value string) string {
		l := lipgloss.NewStyle().Width(28).Render(label)
		return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
	}
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	rows := []string{
		title,
		"",
		row("Focus length", fmt.Sprintf("%d min", s.current.WorkMinutes)),
		row("Short break", fmt.Sprintf("%d min", s.current.ShortBreakMinutes)),
		row("Long break", fmt.Sprintf("%d min", s.current.LongBreakMinutes)),
		row("Sessions before long break", strconv.Itoa(s.current.SessionsBeforeLongBreak)),
		row("Auto-start breaks", onOff(s.current.AutoStartBreak)),
		row("Auto-start focus", onOff(s.current.AutoStartWork)),
		row("Completion sound", onOff(s.current.SoundEnabled)),
		row("Daily goal", fmt.Sprintf("%d min", s.current.DailyGoalMinutes)),
		"",
		hint,
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
