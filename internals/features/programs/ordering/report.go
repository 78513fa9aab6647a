package ordering

import (
	"fmt"
	"strings"
)

// Skip is one batch entry that was not applied.
type Skip struct {
	Index  int    `json:"index"`
	ID     *int64 `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// BatchReport says exactly which entries of a batch took effect.
type BatchReport struct {
	Applied []int64 `json:"applied"`
	Skipped []Skip  `json:"skipped"`
}

func newReport() BatchReport {
	return BatchReport{Applied: []int64{}, Skipped: []Skip{}}
}

func (r *BatchReport) apply(id int64) {
	r.Applied = append(r.Applied, id)
}

func (r *BatchReport) skip(index int, id *int64, reason string) {
	r.Skipped = append(r.Skipped, Skip{Index: index, ID: id, Reason: reason})
}

// Summary is a one-line description of the skipped entries.
func (r BatchReport) Summary() string {
	if len(r.Skipped) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		parts = append(parts, fmt.Sprintf("#%d: %s", s.Index, s.Reason))
	}
	return strings.Join(parts, "; ")
}
