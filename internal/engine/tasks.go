package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"reconnect/internal/storage"
)

type CreateTaskInput struct {
	Title      string
	Category   Category
	Difficulty Difficulty
}

// CreateTask adds an open task whose XP value is rolled once, here, and never again.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*storage.Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Category.IsValid() {
		return nil, fmt.Errorf("invalid category: %q", in.Category)
	}
	xp, err := s.catalog.RollXP(s.roller, in.Difficulty)
	if err != nil {
		return nil, err
	}

	t := storage.Task{
		ID:         s.newID(),
		Title:      title,
		Category:   string(in.Category),
		Difficulty: string(in.Difficulty),
		CreatedAt:  s.now(),
		XPValue:    xp,
	}
	s.state.Tasks = append(s.state.Tasks, t)
	s.persist(ctx)
	return &t, nil
}

type CompleteResult struct {
	Award
	Applied bool // false when the id is unknown or the task was already completed
	TaskID  string
	Title   string
}

// CompleteTask pays out a task once. Unknown ids and already-completed tasks
// are silent no-ops that leave the ledger untouched.
func (s *Service) CompleteTask(ctx context.Context, id string) CompleteResult {
	idx := s.taskIndex(id)
	if idx < 0 || s.state.Tasks[idx].Completed {
		return CompleteResult{TaskID: id}
	}

	now := s.now()
	task := &s.state.Tasks[idx]
	task.Completed = true
	task.CompletedAt = &now

	a := s.award(task.XPValue, CreditsFromXP(task.XPValue))
	s.state.User = UpdateStreak(s.state.User, s.state.Tasks, now)
	s.record(fmt.Sprintf(`Completed "%s" (+%d XP)`, task.Title, task.XPValue))
	s.log.Debug("task completed", zap.String("id", task.ID), zap.Int("xp", a.XP), zap.Int("credits", a.Credits))

	res := CompleteResult{Award: a, Applied: true, TaskID: task.ID, Title: task.Title}
	s.persist(ctx)
	return res
}

// DeleteTask removes a task outright. Rewards already paid for it stay paid.
func (s *Service) DeleteTask(ctx context.Context, id string) bool {
	idx := s.taskIndex(id)
	if idx < 0 {
		return false
	}
	s.state.Tasks = append(s.state.Tasks[:idx], s.state.Tasks[idx+1:]...)
	s.persist(ctx)
	return true
}

// FilterTasks returns the tasks in the category, or every task for CategoryAll.
func (s *Service) FilterTasks(category Category) []storage.Task {
	tasks := s.Tasks()
	if category == CategoryAll {
		return tasks
	}
	out := make([]storage.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Category == string(category) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) taskIndex(id string) int {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
