package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/hasibul/akta/internal/store"
)

var subjectColors = []string{"#7AA2F7", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#BB9AF7"}

type subjectsModel struct {
	store  *store.Store
	width  int
	height int

	subjects []store.Subject
	cursor   int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName  *string
	formColor *string
}

func newSubjectsModel(s *store.Store) subjectsModel {
	name, color := "", subjectColors[0]
	return subjectsModel{
		store:     s,
		formName:  &name,
		formColor: &color,
	}
}

func (m *subjectsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type subjectsDataMsg struct {
	subjects []store.Subject
}

func (m subjectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		subjects, _ := m.store.ListSubjects()
		return subjectsDataMsg{subjects: subjects}
	}
}

func (m subjectsModel) update(msg tea.Msg) (subjectsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case subjectsDataMsg:
		m.subjects = msg.subjects
		if m.cursor >= len(m.subjects) {
			m.cursor = max(0, len(m.subjects)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.subjects)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showNewSubjectForm()
		case key.Matches(msg, keys.Delete):
			if len(m.subjects) > 0 {
				sub := m.subjects[m.cursor]
				if err := m.store.DeleteSubject(sub.ID); err != nil {
					return m, statusError(fmt.Sprintf("Could not delete %s: %v", sub.Name, err))
				}
				return m, tea.Batch(
					m.refresh(),
					status("Deleted "+sub.Name+" (sessions keep their history)"),
				)
			}
		}
	}
	return m, nil
}

func (m subjectsModel) showNewSubjectForm() (subjectsModel, tea.Cmd) {
	*m.formName = ""
	*m.formColor = subjectColors[0]

	colorOptions := make([]huh.Option[string], len(subjectColors))
	for i, c := range subjectColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subject Name").Value(m.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(m.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m subjectsModel) updateForm(msg tea.Msg) (subjectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		if *m.formName != "" {
			if _, err := m.store.CreateSubject(*m.formName, *m.formColor); err != nil {
				return m, tea.Batch(
					m.refresh(),
					statusError(fmt.Sprintf("Could not create subject: %v", err)),
				)
			}
		}
		return m, m.refresh()
	}

	return m, cmd
}

func (m subjectsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Subject")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Subjects")

	if len(m.subjects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No subjects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, sub := range m.subjects {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(sub.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-24s", cursor, dot, sub.Name)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
