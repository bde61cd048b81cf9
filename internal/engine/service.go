package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reconnect/internal/storage"
)

// Persister loads and saves the whole state document.
type Persister interface {
	Load(ctx context.Context) (storage.State, bool)
	Save(ctx context.Context, st storage.State) error
}

// Service owns the application state for the lifetime of the process. Calls
// must be sequenced by the caller; it is not safe for concurrent use.
type Service struct {
	store   Persister
	state   storage.State
	found   bool
	catalog Catalog
	roller  Roller
	now     func() time.Time
	newID   func() string
	log     *zap.Logger
}

type Option func(*Service)

func WithRoller(r Roller) Option { return func(s *Service) { s.roller = r } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithIDGenerator(fn func() string) Option { return func(s *Service) { s.newID = fn } }

func WithCatalog(c Catalog) Option { return func(s *Service) { s.catalog = c } }

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService loads state from store (falling back to defaults) and returns a
// Service that saves through it after every mutation.
func NewService(ctx context.Context, store Persister, opts ...Option) *Service {
	s := &Service{
		store:   store,
		catalog: DefaultCatalog(),
		roller:  globalRoller{},
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state, s.found = store.Load(ctx)
	s.state.User = RepairLevel(s.state.User)
	return s
}

// FirstRun reports whether no stored state was found at startup.
func (s *Service) FirstRun() bool { return !s.found }

// persist saves the state; failures are logged and never undo the mutation.
func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.state); err != nil {
		s.log.Warn("persist failed, continuing in memory", zap.Error(err))
	}
}

func (s *Service) record(text string) {
	s.state.RecentActivity = RecordActivity(s.state.RecentActivity, text, s.now())
}

// Award describes the ledger change of a single completion.
type Award struct {
	XP          int
	Credits     int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	LevelBonus  int
}

func (s *Service) award(xp, credits int) Award {
	a := Award{XP: xp, Credits: credits, LevelBefore: s.state.User.Level}
	s.state.User.XP += xp
	s.state.User.TotalXP += xp
	s.state.User.Credits += credits
	a.LevelUp, a.LevelBonus = s.checkLevelUp()
	a.LevelAfter = s.state.User.Level
	return a
}

func (s *Service) checkLevelUp() (bool, int) {
	u, lu, ok := ApplyLevelUp(s.state.User)
	s.state.User = u
	if !ok {
		return false, 0
	}
	s.record(fmt.Sprintf("Level Up! Now Level %d (+%d credits)", lu.To, lu.Bonus))
	s.log.Info("level up", zap.Int("from", lu.From), zap.Int("to", lu.To), zap.Int("bonus", lu.Bonus))
	return true, lu.Bonus
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// Ledger returns a snapshot of the user's progression record.
func (s *Service) Ledger() storage.User { return s.state.User }

// State returns a deep copy of the whole aggregate.
func (s *Service) State() storage.State { return s.state.Clone() }

func (s *Service) Tasks() []storage.Task { return s.state.Clone().Tasks }

func (s *Service) Habits() []storage.Habit { return s.state.Clone().Habits }

// Activity returns the recent activity, newest first.
func (s *Service) Activity() []storage.Activity {
	return append([]storage.Activity{}, s.state.RecentActivity...)
}

func (s *Service) Rewards() []Reward { return s.catalog.Rewards() }

// Stats are the dashboard figures derived from the ledger and collections.
type Stats struct {
	Level          int
	XP             int
	TotalXP        int
	Credits        int
	Streak         int
	LevelSpan      int     // XP between the current level and the next
	LevelProgress  float64 // percent through the current level, clamped to [0,100]
	CompletedTasks int
	OpenTasks      int
	HabitsToday    int
}

func (s *Service) Stats() Stats {
	u := s.state.User
	cur := XPForLevel(u.Level)
	next := XPForNextLevel(u.Level)
	st := Stats{
		Level:     u.Level,
		XP:        u.XP,
		TotalXP:   u.TotalXP,
		Credits:   u.Credits,
		Streak:    u.Streak,
		LevelSpan: next - cur,
	}
	if st.LevelSpan > 0 {
		st.LevelProgress = float64(u.TotalXP-cur) / float64(st.LevelSpan) * 100
	}
	st.LevelProgress = min(max(st.LevelProgress, 0), 100)

	for _, t := range s.state.Tasks {
		if t.Completed {
			st.CompletedTasks++
		} else {
			st.OpenTasks++
		}
	}
	now := s.now()
	for _, h := range s.state.Habits {
		if CompletedToday(h, now) {
			st.HabitsToday++
		}
	}
	return st
}

// ResolveTaskID maps an id or a unique id prefix to a task id.
func (s *Service) ResolveTaskID(prefix string) (string, error) {
	ids := make([]string, 0, len(s.state.Tasks))
	for _, t := range s.state.Tasks {
		ids = append(ids, t.ID)
	}
	return resolveID("task", ids, prefix)
}

// ResolveHabitID maps an id or a unique id prefix to a habit id.
func (s *Service) ResolveHabitID(prefix string) (string, error) {
	ids := make([]string, 0, len(s.state.Habits))
	for _, h := range s.state.Habits {
		ids = append(ids, h.ID)
	}
	return resolveID("habit", ids, prefix)
}

func resolveID(kind string, ids []string, prefix string) (string, error) {
	p := strings.TrimSpace(prefix)
	if p == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	var match string
	n := 0
	for _, id := range ids {
		if id == p {
			return id, nil
		}
		if strings.HasPrefix(id, p) {
			match = id
			n++
		}
	}
	switch n {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, p)
	case 1:
		return match, nil
	default:
		return "", fmt.Errorf("%s id %q is ambiguous (%d matches)", kind, p, n)
	}
}
