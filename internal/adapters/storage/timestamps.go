package storage

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is how instants are stored in TEXT columns.
const TimestampLayout = "2006-01-02T15:04:05.999999999Z07:00"

// FormatTime renders t for storage. The zero time is stored as NULL.
func FormatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(TimestampLayout)
}

// ParseTime reads a stored timestamp. Values written by older builds with
// time.Time.String() are accepted too.
func ParseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if idx := strings.Index(value, " m="); idx != -1 {
		value = value[:idx]
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse stored time %q", value)
}
