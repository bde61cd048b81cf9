package engine

import (
	"context"
	"time"

	"reconnect/internal/storage"
)

// SeedSampleData fills a brand-new state with a couple of example tasks, a habit
// and a small starting balance. It does nothing unless this is the first run and
// there are no tasks yet.
func (s *Service) SeedSampleData(ctx context.Context) bool {
	if !s.FirstRun() || len(s.state.Tasks) > 0 {
		return false
	}

	now := s.now()
	s.state.Tasks = []storage.Task{
		{
			ID:          s.newID(),
			Title:       "Take a 15-minute walk",
			Category:    string(CategoryHealth),
			Difficulty:  string(DifficultyEasy),
			Completed:   true,
			CreatedAt:   now,
			CompletedAt: &now,
			XPValue:     20,
		},
		{
			ID:         s.newID(),
			Title:      "Read 5 pages of a book",
			Category:   string(CategoryLearning),
			Difficulty: string(DifficultyEasy),
			CreatedAt:  now,
			XPValue:    15,
		},
	}
	s.state.Habits = []storage.Habit{
		{
			ID:            s.newID(),
			Name:          "Drink water when I wake up",
			Icon:          "Water",
			Target:        7,
			Streak:        2,
			CompletedDays: []string{},
			CreatedAt:     now,
		},
	}
	s.state.User.XP = 20
	s.state.User.TotalXP = 20
	s.state.User.Credits = 10
	s.state.User.Streak = 1
	s.state.RecentActivity = []storage.Activity{
		{Text: `Completed "Take a 15-minute walk" (+20 XP)`, Timestamp: now},
		{Text: "Welcome to ReConnect!", Timestamp: now.Add(-time.Minute)},
	}

	s.persist(ctx)
	return true
}
