package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MergeOverDefaults decodes a stored document and lays its top-level fields over
// DefaultState. The merge is shallow: a field that is present
// replaces the default wholesale (a stored "user" without "level" decodes as
// level 0; the engine derives it from totalXP on load), and a field that is absent or null keeps the default.
func MergeOverDefaults(data []byte) (State, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return DefaultState(), fmt.Errorf("decode document: %w", err)
	}

	st := DefaultState()
	if err := replaceField(fields, "user", &st.User); err != nil {
		return DefaultState(), err
	}
	if err := replaceField(fields, "tasks", &st.Tasks); err != nil {
		return DefaultState(), err
	}
	if err := replaceField(fields, "habits", &st.Habits); err != nil {
		return DefaultState(), err
	}
	if err := replaceField(fields, "recentActivity", &st.RecentActivity); err != nil {
		return DefaultState(), err
	}
	st.normalize()
	return st, nil
}

func replaceField[T any](fields map[string]json.RawMessage, key string, dst *T) error {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	*dst = v
	return nil
}
