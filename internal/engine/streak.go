package engine

import (
	"time"

	"reconnect/internal/storage"
)

const dayLayout = "2006-01-02"

// DayKey is the calendar-day key used for habit days and streak checks,
// taken in t's own location.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// UpdateStreak floors the ledger streak at 1 when any task was completed on
// now's local date. It never increments; completions on one day or across
// consecutive days only guarantee a streak of at least 1.
func UpdateStreak(u storage.User, tasks []storage.Task, now time.Time) storage.User {
	today := DayKey(now)
	for _, t := range tasks {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		if DayKey(t.CompletedAt.In(now.Location())) == today {
			u.Streak = max(u.Streak, 1)
			break
		}
	}
	return u
}
