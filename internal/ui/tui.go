// Package ui implements the interactive terminal UI.
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"simpletodo/internal/output"
	"simpletodo/internal/service"
	"simpletodo/internal/task"
)

type mode int

const (
	modeBrowse mode = iota
	modeInput
	modeConfirm
)

// Model is the Bubbletea model for the task list.
//
// Every change goes through the service, which saves it; the model only
// keeps the last listing it fetched.
type Model struct {
	svc       service.Service
	tasks     task.Collection
	cursor    int
	mode      mode
	editingID string // empty while adding
	input     textinput.Model
	plan      service.BulkPlan
	status    string
	width     int
	quitting  bool
}

// New creates a model showing svc's tasks.
func New(svc service.Service) Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 50

	m := Model{svc: svc, input: ti}
	m.refresh()
	return m
}

// Run starts the UI on in/out and blocks until the user quits or ctx is
// done.
func Run(ctx context.Context, svc service.Service, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(svc),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(20, msg.Width-16)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case " ", "x", "enter":
		if t, ok := m.current(); ok {
			m.svc.Toggle(t.ID)
			m.refresh()
		}

	case "a", "n":
		return m.startInput("", "")

	case "e":
		if t, ok := m.current(); ok {
			return m.startInput(t.ID, t.Text)
		}

	case "d", "delete", "backspace":
		if t, ok := m.current(); ok {
			m.svc.Delete(t.ID)
			m.refresh()
		}

	case "D":
		m.plan = service.PlanBulkDelete(m.tasks, false)
		if m.plan.Action == service.BulkNone {
			m.status = "No tasks to delete"
			return m, nil
		}
		m.mode = modeConfirm
	}
	return m, nil
}

func (m Model) startInput(id, text string) (tea.Model, tea.Cmd) {
	m.mode = modeInput
	m.editingID = id
	if id == "" {
		m.input.Placeholder = "New Task"
	} else {
		m.input.Placeholder = "Edit task..."
	}
	m.input.SetValue(text)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.stopInput(), nil

	case "enter":
		value := m.input.Value()
		if _, ok := task.NormalizeText(value); !ok {
			// Blank submit does nothing; keep the field open.
			return m, nil
		}
		if m.editingID == "" {
			m.svc.Add(value)
			m.cursor = 0
		} else {
			m.svc.Edit(m.editingID, value)
		}
		m = m.stopInput()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) stopInput() Model {
	m.mode = modeBrowse
	m.editingID = ""
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		n := service.ApplyBulkDelete(m.svc, m.plan)
		m.status = fmt.Sprintf("Deleted %s", output.Plural(n, "task"))
		m.mode = modeBrowse
		m.refresh()

	case "n", "N", "esc", "q":
		m.mode = modeBrowse
	}
	return m, nil
}

func (m Model) current() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *Model) refresh() {
	m.tasks = m.svc.Tasks()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Simple Todo"))
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(emptyStyle.Render("No tasks yet. Press a to add one."))
		b.WriteString("\n")
	}
	for i, t := range m.tasks {
		b.WriteString(m.renderTask(i, t))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeInput:
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeConfirm:
		b.WriteString("\n")
		b.WriteString(confirmStyle.Render(fmt.Sprintf("%s\n%s (y/n)", m.plan.Title(), m.plan.Prompt())))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTask(i int, t task.Task) string {
	cursor := "  "
	if i == m.cursor && m.mode == modeBrowse {
		cursor = cursorStyle.Render("> ")
	}
	box := "[ ]"
	text := t.Text
	if t.Completed {
		box = checkedStyle.Render("[x]")
		text = completedTextStyle.Render(text)
	}
	return cursor + box + " " + text
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeInput:
		return "enter save • esc cancel"
	case modeConfirm:
		return "y confirm • n cancel"
	default:
		return "a add • e edit • space toggle • d delete • D bulk delete • q quit"
	}
}
