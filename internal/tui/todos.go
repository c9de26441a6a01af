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

type todosModel struct {
	store  *store.Store
	width  int
	height int

	todos  []store.Todo
	cursor int

	formActive bool
	form       *huh.Form
	formTitle  *string
}

func newTodosModel(s *store.Store) todosModel {
	title := ""
	return todosModel{
		store:     s,
		formTitle: &title,
	}
}

func (m *todosModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type todosDataMsg struct {
	todos []store.Todo
}

func (m todosModel) refresh() tea.Cmd {
	return func() tea.Msg {
		todos, _ := m.store.ListTodos()
		return todosDataMsg{todos: todos}
	}
}

func (m todosModel) update(msg tea.Msg) (todosModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case todosDataMsg:
		m.todos = msg.todos
		if m.cursor >= len(m.todos) {
			m.cursor = max(0, len(m.todos)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.todos)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(m.todos) > 0 {
				todo := m.todos[m.cursor]
				m.store.SetTodoCompleted(todo.ID, !todo.Completed)
				return m, m.refresh()
			}
		case key.Matches(msg, keys.New):
			return m.showNewTodoForm()
		case key.Matches(msg, keys.Delete):
			if len(m.todos) > 0 {
				m.store.DeleteTodo(m.todos[m.cursor].ID)
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func (m todosModel) showNewTodoForm() (todosModel, tea.Cmd) {
	*m.formTitle = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("What do you need to do?").Value(m.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m todosModel) updateForm(msg tea.Msg) (todosModel, tea.Cmd) {
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
		if strings.TrimSpace(*m.formTitle) != "" {
			if _, err := m.store.CreateTodo(*m.formTitle); err != nil {
				return m, statusError(fmt.Sprintf("Could not add todo: %v", err))
			}
		}
		return m, m.refresh()
	}

	return m, cmd
}

func (m todosModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Todo")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Todos")

	if len(m.todos) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing on the list. Press n to add a todo."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, todo := range m.todos {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		check := "☐"
		style := normalItemStyle
		if todo.Completed {
			check = "☑"
			style = doneItemStyle
		}
		if i == m.cursor {
			style = selectedItemStyle
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, check, style.Render(todo.Title)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: toggle  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
