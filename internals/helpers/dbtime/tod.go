// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"strings"
	"time"
)

// MaxStartTimeLen is the width of schedule_items.start_time.
const MaxStartTimeLen = 16

// NormalizeStartTime tidies a schedule start time. Clock values
// ("9:05", "09:05:00", "10:30 AM") become "HH:MM"; anything else
// ("after the sermon") is kept as typed, trimmed.
func NormalizeStartTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3:04 pm", "3:04pm"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}
