package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"reconnect/internal/engine"
	"reconnect/internal/storage"
)

func newTestBoard(t *testing.T) boardModel {
	t.Helper()
	backend, err := storage.NewJSONBackend(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	log := zaptest.NewLogger(t)
	svc := engine.NewService(context.Background(), storage.NewGateway(backend, log), engine.WithLogger(log))

	m := newBoardModel(context.Background(), svc)
	next, _ := m.Update(m.Init()())
	return next.(boardModel)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// press feeds a key and, when the model returns a service command, runs it and
// feeds the result back.
func press(t *testing.T, m boardModel, k tea.KeyMsg) boardModel {
	t.Helper()
	next, cmd := m.Update(k)
	m = next.(boardModel)
	if cmd == nil || !m.busy {
		return m
	}
	next, _ = m.Update(cmd())
	return next.(boardModel)
}

func TestBoard_TabsCycle(t *testing.T) {
	m := newTestBoard(t)
	assert.False(t, m.busy)
	assert.Equal(t, tabDashboard, m.tab)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabTasks, m.tab)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabRewards, m.tab)

	assert.Contains(t, m.View(), "Coffee Break")
}

func TestBoard_QuickAddAndComplete(t *testing.T) {
	m := newTestBoard(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("a"))
	require.True(t, m.adding)

	// While adding, "q" is text, not quit.
	m = press(t, m, runes("Walk q #health !h"))
	assert.Equal(t, "Walk q #health !h", m.input.Value())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.adding)
	require.Len(t, m.snap.tasks, 1)
	task := m.snap.tasks[0]
	assert.Equal(t, "Walk q", task.Title)
	assert.Equal(t, "health", task.Category)
	assert.Equal(t, "hard", task.Difficulty)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.snap.tasks[0].Completed)
	assert.Equal(t, task.XPValue, m.snap.stats.TotalXP)
	assert.Contains(t, m.lastLog, `Completed "Walk q"`)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Already done.", m.lastLog)

	m = press(t, m, runes("d"))
	assert.Empty(t, m.snap.tasks)
	assert.Equal(t, task.XPValue, m.snap.stats.TotalXP)
}

func TestBoard_AddCancel(t *testing.T) {
	m := newTestBoard(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("a"))
	m = press(t, m, runes("Nope"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.adding)
	assert.Empty(t, m.snap.tasks)
	assert.Empty(t, m.input.Value())
}

func TestBoard_RedeemWithoutCredits(t *testing.T) {
	m := newTestBoard(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, tabRewards, m.tab)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.lastLog, "not enough credits for Coffee Break")
	assert.Equal(t, 0, m.snap.stats.Credits)
}

func TestBoard_FilterCycle(t *testing.T) {
	m := newTestBoard(t)
	m = press(t, m, runes("f"))
	assert.Equal(t, engine.CategoryAll, m.currentFilter(), "filter only applies on the tasks tab")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("f"))
	assert.Equal(t, engine.CategoryPersonal, m.currentFilter())
	for range filterCycle[1:] {
		m = press(t, m, runes("f"))
	}
	assert.Equal(t, engine.CategoryAll, m.currentFilter())
}

func TestBoard_FilterShowsMatchingTasks(t *testing.T) {
	m := newTestBoard(t)
	ctx := context.Background()
	_, err := m.svc.CreateTask(ctx, engine.CreateTaskInput{Title: "Stretch", Category: engine.CategoryHealth, Difficulty: engine.DifficultyEasy})
	require.NoError(t, err)
	_, err = m.svc.CreateTask(ctx, engine.CreateTaskInput{Title: "Report", Category: engine.CategoryWork, Difficulty: engine.DifficultyEasy})
	require.NoError(t, err)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("r"))
	assert.Len(t, m.snap.tasks, 2)

	m = press(t, m, runes("f"))
	m = press(t, m, runes("f"))
	require.Equal(t, engine.CategoryHealth, m.currentFilter())
	require.Len(t, m.snap.tasks, 1)
	assert.Equal(t, "Stretch", m.snap.tasks[0].Title)
	assert.Contains(t, m.lastLog, "Filter:")
	assert.NotContains(t, m.View(), "Report")
	assert.Equal(t, 2, m.snap.stats.OpenTasks)
}

func TestBoard_Quit(t *testing.T) {
	m := newTestBoard(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestParseQuickAdd(t *testing.T) {
	in, err := parseQuickAdd("  Call mom  ", engine.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, engine.CreateTaskInput{Title: "Call mom", Category: engine.CategoryPersonal, Difficulty: engine.DifficultyEasy}, in)

	in, err = parseQuickAdd("Report !m", engine.CategoryWork)
	require.NoError(t, err)
	assert.Equal(t, engine.CategoryWork, in.Category)
	assert.Equal(t, engine.DifficultyMedium, in.Difficulty)

	_, err = parseQuickAdd("#home !h", engine.CategoryAll)
	assert.Error(t, err)

	_, err = parseQuickAdd("Dig #garden", engine.CategoryAll)
	assert.Error(t, err)
}
