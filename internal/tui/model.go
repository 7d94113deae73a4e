// Package tui is a compact week-agenda view over the stored schedule:
// navigate days, inspect placements, mark subtasks done, and remove
// placements without leaving the terminal.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jtwaugh/taskweave/internal/constants"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/scheduler"
	"github.com/jtwaugh/taskweave/internal/storage"
	"github.com/jtwaugh/taskweave/internal/utils"
)

// entry is one rendered placement row with its resolved titles.
type entry struct {
	placement models.ScheduledTask
	title     string
	done      bool
}

type KeyMap struct {
	PrevDay key.Binding
	NextDay key.Binding
	Up      key.Binding
	Down    key.Binding
	Today   key.Binding
	Done    key.Binding
	Remove  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
		NextDay: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Done:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
		Remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove placement")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type Model struct {
	store     storage.Provider
	scheduler *scheduler.Scheduler
	keys      KeyMap
	help      help.Model

	day      time.Time
	entries  []entry
	selected int
	errMsg   string
	width    int
	height   int
	quitting bool
}

func NewModel(store storage.Provider, sched *scheduler.Scheduler) Model {
	m := Model{
		store:     store,
		scheduler: sched,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
	m.day = m.today()
	m.reload()
	return m
}

// today resolves the current day in the configured timezone, falling back to
// system time when settings are unavailable.
func (m Model) today() time.Time {
	if settings, err := m.store.GetSettings(); err == nil {
		if now, err := utils.NowInTimezone(settings.Timezone); err == nil {
			return now
		}
	}
	return time.Now()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.Done, m.keys.Remove, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.PrevDay, m.keys.NextDay, m.keys.Today},
		{m.keys.Up, m.keys.Down, m.keys.Done, m.keys.Remove},
		{m.keys.Help, m.keys.Quit},
	}
}

// reload refreshes the selected day's placements from the store.
func (m *Model) reload() {
	m.errMsg = ""
	date := m.day.Format(constants.DateFormat)
	placements, err := m.store.GetScheduledTasks(date)
	if err != nil {
		m.errMsg = err.Error()
		m.entries = nil
		return
	}

	entries := make([]entry, 0, len(placements))
	for _, p := range placements {
		e := entry{placement: p, title: "unknown task"}
		if p.SubtaskID != "" {
			if st, err := m.store.GetSubtask(p.SubtaskID); err == nil {
				e.title = st.Title
				e.done = st.Done
			}
		} else if task, err := m.store.GetTask(p.TaskID); err == nil {
			e.title = task.Title
		}
		entries = append(entries, e)
	}
	m.entries = entries
	if m.selected >= len(entries) {
		m.selected = max(0, len(entries)-1)
	}
}
