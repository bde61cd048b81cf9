package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newBackend(t *testing.T, engine string) Backend {
	t.Helper()
	name := "state.json"
	if engine == EngineSQLite {
		name = "state.db"
	}
	b, err := NewByEngine(context.Background(), engine, filepath.Join(t.TempDir(), "nested", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func sampleState() State {
	created := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	done := created.Add(time.Hour)
	st := DefaultState()
	st.User = User{Level: 2, XP: 10, TotalXP: 60, Credits: 22, Streak: 1}
	st.Tasks = []Task{
		{ID: "t1", Title: "Walk", Category: "health", Difficulty: "easy", Completed: true, CreatedAt: created, CompletedAt: &done, XPValue: 20},
		{ID: "t2", Title: "Read", Category: "learning", Difficulty: "medium", CreatedAt: created, XPValue: 30},
	}
	st.Habits = []Habit{{ID: "h1", Name: "Water", Icon: "Water", Target: 7, Streak: 2, CompletedDays: []string{"2026-10-15"}, CreatedAt: created}}
	st.RecentActivity = []Activity{{Text: `Completed "Walk" (+20 XP)`, Timestamp: done}}
	return st
}

func TestMergeOverDefaults_MissingFieldsKeepDefaults(t *testing.T) {
	st, err := MergeOverDefaults([]byte(`{"tasks":[{"id":"a","title":"Walk","xpValue":20}]}`))
	require.NoError(t, err)

	assert.Equal(t, DefaultState().User, st.User)
	require.Len(t, st.Tasks, 1)
	assert.Equal(t, "Walk", st.Tasks[0].Title)
	assert.NotNil(t, st.Habits)
	assert.Empty(t, st.Habits)
	assert.NotNil(t, st.RecentActivity)
}

func TestMergeOverDefaults_PartialUserReplacesWholeUser(t *testing.T) {
	st, err := MergeOverDefaults([]byte(`{"user":{"credits":12}}`))
	require.NoError(t, err)

	// Nested fields are not back-filled from the default user.
	assert.Equal(t, User{Credits: 12}, st.User)
}

func TestMergeOverDefaults_NullFieldsKeepDefaults(t *testing.T) {
	st, err := MergeOverDefaults([]byte(`{"user":null,"tasks":null,"habits":[{"id":"h","target":3}],"recentActivity":null}`))
	require.NoError(t, err)

	assert.Equal(t, 1, st.User.Level)
	assert.NotNil(t, st.Tasks)
	require.Len(t, st.Habits, 1)
	assert.NotNil(t, st.Habits[0].CompletedDays)
	assert.NotNil(t, st.RecentActivity)
}

func TestMergeOverDefaults_Malformed(t *testing.T) {
	for _, doc := range []string{`{not json`, `[]`, `{"user":"level one"}`, `{"tasks":{"id":"x"}}`} {
		st, err := MergeOverDefaults([]byte(doc))
		assert.Error(t, err, doc)
		assert.Equal(t, DefaultState(), st, doc)
	}
}

func TestGateway_RoundTrip(t *testing.T) {
	for _, engine := range []string{EngineJSON, EngineSQLite} {
		t.Run(engine, func(t *testing.T) {
			ctx := context.Background()
			gw := NewGateway(newBackend(t, engine), zaptest.NewLogger(t))

			st, found := gw.Load(ctx)
			assert.False(t, found)
			assert.Equal(t, DefaultState(), st)

			want := sampleState()
			require.NoError(t, gw.Save(ctx, want))

			got, found := gw.Load(ctx)
			require.True(t, found)
			assert.Equal(t, want.User, got.User)
			require.Len(t, got.Tasks, 2)
			assert.True(t, got.Tasks[0].CompletedAt.Equal(*want.Tasks[0].CompletedAt))
			assert.Nil(t, got.Tasks[1].CompletedAt)
			assert.Equal(t, want.Habits[0].CompletedDays, got.Habits[0].CompletedDays)
			assert.Equal(t, want.RecentActivity[0].Text, got.RecentActivity[0].Text)

			// A second save overwrites rather than appends.
			want.User.Credits = 99
			require.NoError(t, gw.Save(ctx, want))
			got, _ = gw.Load(ctx)
			assert.Equal(t, 99, got.User.Credits)
		})
	}
}

func TestGateway_LoadMalformedFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o644))

	b, err := NewJSONBackend(path)
	require.NoError(t, err)
	gw := NewGateway(b, zaptest.NewLogger(t))

	st, found := gw.Load(ctx)
	assert.False(t, found)
	assert.Equal(t, DefaultState(), st)
}

func TestJSONBackend_WriteLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := NewJSONBackend(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	require.NoError(t, b.Write(ctx, []byte(`{"a":1}`)))
	require.NoError(t, b.Write(ctx, []byte(`{"a":2}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())

	data, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))
}

func TestJSONBackend_FailedWriteCleansUpTemp(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	b, err := NewJSONBackend(path)
	require.NoError(t, err)
	require.NoError(t, b.Write(ctx, []byte(`{"a":1}`)))

	// Replace the target with a non-empty directory so the rename fails.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0o755))

	err = b.Write(ctx, []byte(`{"a":2}`))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestSQLiteBackend_SingleRow(t *testing.T) {
	ctx := context.Background()
	b, err := NewSQLiteBackend(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	_, err = b.Read(ctx)
	assert.ErrorIs(t, err, ErrNoDocument)

	require.NoError(t, b.Write(ctx, []byte(`{"v":1}`)))
	require.NoError(t, b.Write(ctx, []byte(`{"v":2}`)))

	var n int
	require.NoError(t, b.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n))
	assert.Equal(t, 1, n)

	data, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(data))
}

func TestNewByEngine(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := NewByEngine(ctx, "", filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONBackend{}, b)

	b, err = NewByEngine(ctx, " SQLite ", filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteBackend{}, b)
	require.NoError(t, b.Close())

	_, err = NewByEngine(ctx, "postgres", filepath.Join(dir, "x"))
	assert.EqualError(t, err, "unsupported store engine: postgres")

	_, err = NewJSONBackend("  ")
	assert.Error(t, err)
}

func TestStateClone(t *testing.T) {
	st := sampleState()
	c := st.Clone()

	c.Tasks[0].Title = "changed"
	*c.Tasks[0].CompletedAt = time.Time{}
	c.Habits[0].CompletedDays[0] = "changed"
	c.RecentActivity[0].Text = "changed"

	assert.Equal(t, "Walk", st.Tasks[0].Title)
	assert.False(t, st.Tasks[0].CompletedAt.IsZero())
	assert.Equal(t, "2026-10-15", st.Habits[0].CompletedDays[0])
	assert.Equal(t, `Completed "Walk" (+20 XP)`, st.RecentActivity[0].Text)
}
