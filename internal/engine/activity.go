package engine

import (
	"time"

	"reconnect/internal/storage"
)

// ActivityLimit is how many activity entries are kept.
const ActivityLimit = 8

// RecordActivity prepends an entry and drops anything past ActivityLimit.
func RecordActivity(log []storage.Activity, text string, now time.Time) []storage.Activity {
	out := make([]storage.Activity, 0, min(len(log)+1, ActivityLimit))
	out = append(out, storage.Activity{Text: text, Timestamp: now})
	for _, a := range log {
		if len(out) == ActivityLimit {
			break
		}
		out = append(out, a)
	}
	return out
}
