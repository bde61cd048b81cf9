package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reconnect/internal/engine"
	"reconnect/internal/storage"
	"reconnect/internal/ui"
)

type tab int

const (
	tabDashboard tab = iota
	tabTasks
	tabHabits
	tabRewards
	tabCount
)

var tabNames = [tabCount]string{"Dashboard", "Tasks", "Habits", "Rewards"}

// filterCycle is the order the filter key steps through.
var filterCycle = append([]engine.Category{engine.CategoryAll}, engine.Categories...)

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Up      key.Binding
	Down    key.Binding
	Act     key.Binding
	Add     key.Binding
	Delete  key.Binding
	Filter  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextTab: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Act:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "complete/toggle/redeem")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Delete:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete task")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Act, k.Add, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down},
		{k.Act, k.Add, k.Delete, k.Filter},
		{k.Refresh, k.Help, k.Quit},
	}
}

// snapshot is what the view renders; it is taken inside commands so the
// service is only touched from one command at a time. tasks holds only the
// tasks matching the active category filter.
type snapshot struct {
	stats    engine.Stats
	tasks    []storage.Task
	habits   []storage.Habit
	rewards  []engine.Reward
	activity []storage.Activity
	now      time.Time
}

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	keys  keyMap
	help  help.Model
	input textinput.Model

	width  int
	height int

	tab     tab
	cursor  [tabCount]int
	filter  int // index into filterCycle
	adding  bool
	snap    snapshot
	lastLog string
	busy    bool
}

type loadedMsg struct {
	snap snapshot
	note string
}

type actionMsg struct {
	text string
	err  error
	snap snapshot
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	ti := textinput.New()
	ti.Placeholder = "Task title  #category  !difficulty"
	ti.CharLimit = 200
	ti.Width = 48
	ti.Prompt = ui.IconPlus + " "

	return boardModel{
		ctx:     ctx,
		svc:     svc,
		keys:    defaultKeys(),
		help:    help.New(),
		input:   ti,
		busy:    true,
		lastLog: "Loading…",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd("")
}

func takeSnapshot(svc *engine.Service, filter engine.Category) snapshot {
	return snapshot{
		stats:    svc.Stats(),
		tasks:    svc.FilterTasks(filter),
		habits:   svc.Habits(),
		rewards:  svc.Rewards(),
		activity: svc.Activity(),
		now:      time.Now(),
	}
}

// loadCmd takes a fresh snapshot; a non-empty note replaces the default status line.
func (m boardModel) loadCmd(note string) tea.Cmd {
	svc, filter := m.svc, m.currentFilter()
	return func() tea.Msg {
		return loadedMsg{snap: takeSnapshot(svc, filter), note: note}
	}
}

// actionCmd runs fn against the service and returns its status line along with
// a fresh snapshot.
func (m boardModel) actionCmd(fn func(ctx context.Context, svc *engine.Service) (string, error)) tea.Cmd {
	ctx, svc, filter := m.ctx, m.svc, m.currentFilter()
	return func() tea.Msg {
		text, err := fn(ctx, svc)
		return actionMsg{text: text, err: err, snap: takeSnapshot(svc, filter)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case loadedMsg:
		m.busy = false
		m.snap = msg.snap
		m.clampCursors()
		m.lastLog = msg.note
		if m.lastLog == "" {
			m.lastLog = fmt.Sprintf("Refreshed at %s.", msg.snap.now.Format("15:04:05"))
		}
		return m, nil
	case actionMsg:
		m.busy = false
		m.snap = msg.snap
		m.clampCursors()
		if msg.err != nil {
			m.lastLog = ui.Bad.Render(ui.IconError + " " + msg.err.Error())
		} else {
			m.lastLog = msg.text
		}
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		m.lastLog = "Add cancelled."
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		in, err := parseQuickAdd(value, m.currentFilter())
		if err != nil {
			m.lastLog = ui.Bad.Render(ui.IconError + " " + err.Error())
			return m, nil
		}
		m.busy = true
		return m, m.actionCmd(func(ctx context.Context, svc *engine.Service) (string, error) {
			t, err := svc.CreateTask(ctx, in)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added %q (%s, +%d XP)", t.Title, t.Difficulty, t.XPValue), nil
		})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.tab] > 0 {
			m.cursor[m.tab]--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.tab] < m.rowCount()-1 {
			m.cursor[m.tab]++
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.busy = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd("")
	case key.Matches(msg, m.keys.Filter):
		if m.tab != tabTasks {
			return m, nil
		}
		m.filter = (m.filter + 1) % len(filterCycle)
		m.cursor[tabTasks] = 0
		m.busy = true
		cmd := m.loadCmd("Filter: " + filterLabel(m.currentFilter()))
		return m, cmd
	case key.Matches(msg, m.keys.Add):
		if m.tab != tabTasks {
			return m, nil
		}
		m.adding = true
		m.lastLog = "New task: enter to save, esc to cancel."
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selectedTask()
		if m.tab != tabTasks || !ok {
			return m, nil
		}
		m.busy = true
		return m, m.actionCmd(func(ctx context.Context, svc *engine.Service) (string, error) {
			if !svc.DeleteTask(ctx, t.ID) {
				return "Task already gone.", nil
			}
			return fmt.Sprintf("Deleted %q", t.Title), nil
		})
	case key.Matches(msg, m.keys.Act):
		return m.act()
	}
	return m, nil
}

// act applies the primary action of the current tab to the selected row.
func (m boardModel) act() (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabTasks:
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if t.Completed {
			m.lastLog = "Already done."
			return m, nil
		}
		m.busy = true
		return m, m.actionCmd(func(ctx context.Context, svc *engine.Service) (string, error) {
			res := svc.CompleteTask(ctx, t.ID)
			if !res.Applied {
				return "Nothing to complete.", nil
			}
			return describeAward(fmt.Sprintf("Completed %q", res.Title), res.Award), nil
		})
	case tabHabits:
		if m.cursor[tabHabits] >= len(m.snap.habits) {
			return m, nil
		}
		h := m.snap.habits[m.cursor[tabHabits]]
		m.busy = true
		return m, m.actionCmd(func(ctx context.Context, svc *engine.Service) (string, error) {
			res := svc.ToggleHabitDay(ctx, h.ID)
			if !res.Applied {
				return "Habit not found.", nil
			}
			if !res.Done {
				return fmt.Sprintf("Unmarked %q for today (streak %d)", res.Name, res.Streak), nil
			}
			return describeAward(fmt.Sprintf("%s %q (streak %d)", ui.IconFire, res.Name, res.Streak), res.Award), nil
		})
	case tabRewards:
		if m.cursor[tabRewards] >= len(m.snap.rewards) {
			return m, nil
		}
		r := m.snap.rewards[m.cursor[tabRewards]]
		m.busy = true
		return m, m.actionCmd(func(ctx context.Context, svc *engine.Service) (string, error) {
			res, err := svc.Redeem(ctx, r.ID)
			if err != nil {
				if errors.Is(err, engine.ErrInsufficientCredits) {
					return "", fmt.Errorf("not enough credits for %s (%d needed, %d available)", r.Name, r.Cost, res.CreditsLeft)
				}
				return "", err
			}
			return fmt.Sprintf("%s Redeemed %s (-%d credits, %d left)", ui.IconGift, r.Name, r.Cost, res.CreditsLeft), nil
		})
	}
	return m, nil
}

func describeAward(head string, a engine.Award) string {
	s := fmt.Sprintf("%s: +%d XP, +%d credits", head, a.XP, a.Credits)
	if a.LevelUp {
		s += fmt.Sprintf("  %s level %d → %d (+%d credits)", ui.BadgeLevelUp, a.LevelBefore, a.LevelAfter, a.LevelBonus)
	}
	return s
}

// parseQuickAdd reads "title words #category !difficulty". Tags are optional;
// category falls back to the active filter (personal when it is "all") and
// difficulty to easy.
func parseQuickAdd(value string, filter engine.Category) (engine.CreateTaskInput, error) {
	in := engine.CreateTaskInput{Category: filter, Difficulty: engine.DifficultyEasy}
	if filter == engine.CategoryAll {
		in.Category = engine.CategoryPersonal
	}

	var words []string
	for _, f := range strings.Fields(value) {
		switch {
		case len(f) > 1 && f[0] == '#':
			c, err := engine.ParseCategory(f[1:])
			if err != nil {
				return in, err
			}
			if c != engine.CategoryAll {
				in.Category = c
			}
		case len(f) > 1 && f[0] == '!':
			d, err := engine.ParseDifficulty(f[1:])
			if err != nil {
				return in, err
			}
			in.Difficulty = d
		default:
			words = append(words, f)
		}
	}
	in.Title = strings.Join(words, " ")
	if in.Title == "" {
		return in, errors.New("title is required")
	}
	return in, nil
}

func (m boardModel) currentFilter() engine.Category {
	return filterCycle[m.filter]
}

func filterLabel(c engine.Category) string {
	if c == engine.CategoryAll {
		return "All"
	}
	return engine.CategoryDisplayName(string(c))
}

func (m boardModel) selectedTask() (storage.Task, bool) {
	tasks := m.snap.tasks
	i := m.cursor[tabTasks]
	if i < 0 || i >= len(tasks) {
		return storage.Task{}, false
	}
	return tasks[i], true
}

func (m boardModel) rowCount() int {
	switch m.tab {
	case tabTasks:
		return len(m.snap.tasks)
	case tabHabits:
		return len(m.snap.habits)
	case tabRewards:
		return len(m.snap.rewards)
	default:
		return 0
	}
}

func (m *boardModel) clampCursors() {
	cur := m.tab
	for t := tab(0); t < tabCount; t++ {
		m.tab = t
		n := m.rowCount()
		if m.cursor[t] >= n {
			m.cursor[t] = max(n-1, 0)
		}
	}
	m.tab = cur
}
