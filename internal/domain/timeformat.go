package domain

import "time"

// Scheduling timestamps (due_at, last_reviewed_at) are persisted as RFC 3339
// UTC strings. Entries written this way sort correctly under plain string
// comparison, which the due-date queries rely on. Changing the format breaks
// interoperability with previously persisted data.

// FormatTimestamp renders t as an RFC 3339 string in UTC, second precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// ParseTimestamp parses an RFC 3339 string produced by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatTimestampPtr renders an optional timestamp; nil maps to "".
func FormatTimestampPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTimestamp(*t)
}

// ParseTimestampPtr parses an optional timestamp; "" maps to nil.
func ParseTimestampPtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
