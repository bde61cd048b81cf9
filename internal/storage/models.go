package storage

import "time"

// User is the progression ledger. Level is derived from TotalXP by the engine.
type User struct {
	Level   int `json:"level"`
	XP      int `json:"xp"`
	TotalXP int `json:"totalXP"`
	Credits int `json:"credits"`
	Streak  int `json:"streak"`
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Difficulty  string     `json:"difficulty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	XPValue     int        `json:"xpValue"`
}

type Habit struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Icon          string    `json:"icon"`
	Target        int       `json:"target"`
	Streak        int       `json:"streak"`
	CompletedDays []string  `json:"completedDays"` // local dates, 2006-01-02
	CreatedAt     time.Time `json:"createdAt"`
}

type Activity struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the whole persisted document.
type State struct {
	User           User       `json:"user"`
	Tasks          []Task     `json:"tasks"`
	Habits         []Habit    `json:"habits"`
	RecentActivity []Activity `json:"recentActivity"`
}

// DefaultState is the fresh document used on first run and whenever the stored
// one cannot be read.
func DefaultState() State {
	return State{
		User:           User{Level: 1},
		Tasks:          []Task{},
		Habits:         []Habit{},
		RecentActivity: []Activity{},
	}
}

// Clone returns a deep copy so callers cannot alias the engine's collections.
func (s State) Clone() State {
	out := State{
		User:           s.User,
		Tasks:          make([]Task, len(s.Tasks)),
		Habits:         make([]Habit, len(s.Habits)),
		RecentActivity: append([]Activity{}, s.RecentActivity...),
	}
	for i, t := range s.Tasks {
		if t.CompletedAt != nil {
			v := *t.CompletedAt
			t.CompletedAt = &v
		}
		out.Tasks[i] = t
	}
	for i, h := range s.Habits {
		h.CompletedDays = append([]string{}, h.CompletedDays...)
		out.Habits[i] = h
	}
	return out
}

func (s *State) normalize() {
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	if s.RecentActivity == nil {
		s.RecentActivity = []Activity{}
	}
	for i := range s.Habits {
		if s.Habits[i].CompletedDays == nil {
			s.Habits[i].CompletedDays = []string{}
		}
	}
}
