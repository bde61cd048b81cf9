package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"reconnect/internal/storage"
)

// DefaultHabitIcon is used when a habit is created without an icon.
const DefaultHabitIcon = "🔁"

type CreateHabitInput struct {
	Name   string
	Icon   string
	Target int // days
}

func (s *Service) CreateHabit(ctx context.Context, in CreateHabitInput) (*storage.Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("habit name is required")
	}
	if in.Target <= 0 {
		return nil, fmt.Errorf("target must be a positive integer, got %d", in.Target)
	}
	icon := strings.TrimSpace(in.Icon)
	if icon == "" {
		icon = DefaultHabitIcon
	}

	h := storage.Habit{
		ID:            s.newID(),
		Name:          name,
		Icon:          icon,
		Target:        in.Target,
		CompletedDays: []string{},
		CreatedAt:     s.now(),
	}
	s.state.Habits = append(s.state.Habits, h)
	s.persist(ctx)
	return &h, nil
}

type ToggleResult struct {
	Award
	Applied bool // false when the id is unknown
	HabitID string
	Name    string
	Done    bool // today is marked after the toggle
	Streak  int
}

// ToggleHabitDay flips today's mark on a habit. Marking adds to the streak and
// pays HabitXP/HabitCredits; unmarking takes one off the streak (not below zero)
// but keeps what was paid. Two toggles in one day therefore restore the streak
// and leave the ledger one award ahead.
func (s *Service) ToggleHabitDay(ctx context.Context, id string) ToggleResult {
	idx := s.habitIndex(id)
	if idx < 0 {
		return ToggleResult{HabitID: id}
	}

	now := s.now()
	today := DayKey(now)
	h := &s.state.Habits[idx]
	res := ToggleResult{Applied: true, HabitID: h.ID, Name: h.Name}

	if i := slices.Index(h.CompletedDays, today); i < 0 {
		h.CompletedDays = append(h.CompletedDays, today)
		h.Streak++
		res.Done = true
		res.Award = s.award(HabitXP, HabitCredits)
		s.record(fmt.Sprintf(`Completed habit "%s" (+%d XP)`, h.Name, HabitXP))
	} else {
		h.CompletedDays = slices.Delete(h.CompletedDays, i, i+1)
		h.Streak = max(0, h.Streak-1)
		res.Award = Award{LevelBefore: s.state.User.Level}
		res.Award.LevelUp, res.Award.LevelBonus = s.checkLevelUp()
		res.Award.LevelAfter = s.state.User.Level
	}
	res.Streak = h.Streak
	s.log.Debug("habit toggled", zap.String("id", h.ID), zap.Bool("done", res.Done), zap.Int("streak", h.Streak))

	s.persist(ctx)
	return res
}

// CompletedToday reports whether the habit is marked for now's local date.
func CompletedToday(h storage.Habit, now time.Time) bool {
	return slices.Contains(h.CompletedDays, DayKey(now))
}

// HabitProgress is streak/target, uncapped; it passes 1 once the streak
// exceeds the target. Renderers clamp it themselves.
func HabitProgress(h storage.Habit) float64 {
	if h.Target <= 0 {
		return 0
	}
	return float64(h.Streak) / float64(h.Target)
}

func (s *Service) habitIndex(id string) int {
	for i := range s.state.Habits {
		if s.state.Habits[i].ID == id {
			return i
		}
	}
	return -1
}
