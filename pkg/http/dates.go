package http

import (
	"fmt"
	"strings"
	"time"
)

const (
	ISODateLayout     = "2006-01-02"
	BritishDateLayout = "02/01/2006"
)

var dateLayouts = []string{
	ISODateLayout,
	BritishDateLayout,
	time.RFC3339,
}

// ParseDate accepts ISO (2024-06-01), British (01/06/2024) and RFC3339 values.
// The result is the UTC calendar date at midnight; any time of day is dropped.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := t.UTC().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD, dd/MM/yyyy or RFC3339", value)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(BritishDateLayout)
}
