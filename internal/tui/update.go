package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.PrevDay):
			m.day = m.day.AddDate(0, 0, -1)
			m.selected = 0
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.NextDay):
			m.day = m.day.AddDate(0, 0, 1)
			m.selected = 0
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Today):
			m.day = m.today()
			m.selected = 0
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
			return m, nil

		case key.Matches(msg, m.keys.Done):
			m.toggleDone()
			return m, nil

		case key.Matches(msg, m.keys.Remove):
			m.removeSelected()
			return m, nil
		}
	}

	return m, nil
}

func (m *Model) toggleDone() {
	if m.selected >= len(m.entries) {
		return
	}
	e := m.entries[m.selected]
	if e.placement.SubtaskID == "" {
		return
	}

	subtask, err := m.store.GetSubtask(e.placement.SubtaskID)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	subtask.Done = !subtask.Done
	if err := m.store.UpdateSubtask(subtask); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.reload()
}

func (m *Model) removeSelected() {
	if m.selected >= len(m.entries) {
		return
	}
	e := m.entries[m.selected]
	if err := m.store.DeleteScheduledTask(e.placement.ID); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.reload()
}
