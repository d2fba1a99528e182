package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexTime decodes the timestamp shapes the content API has been seen to emit.
// Anything it cannot read becomes the zero time instead of a decode error, so a
// single malformed record never drops a whole endpoint.
type FlexTime struct {
	time.Time
}

func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t}
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '"' {
		// unix milliseconds
		if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil && ms > 0 {
			t.Time = time.UnixMilli(ms).UTC()
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	t.Time = ParseFlexTime(s)

	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// ParseFlexTime returns the zero time when s matches no known layout.
func ParseFlexTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range flexTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// FlexYear accepts both 2021 and "2021".
type FlexYear int

func (y *FlexYear) UnmarshalJSON(data []byte) error {
	*y = 0

	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v > 0 {
		*y = FlexYear(v)
	}
	return nil
}

// Time returns January 1st of the year, or the zero time.
func (y FlexYear) Time() time.Time {
	if y <= 0 {
		return time.Time{}
	}
	return time.Date(int(y), time.January, 1, 0, 0, 0, 0, time.UTC)
}
