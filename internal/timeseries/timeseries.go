// Package timeseries turns per-day activity samples from any platform into a
// chart-ready series.
package timeseries

import (
	"sort"
	"time"

	"resume-insight/internal/model"
)

// Series is a sorted activity series projected into parallel label and count
// sequences. Days absent from the input are absent here too; the consuming
// chart treats the x-axis as a continuous time scale so gaps render as
// implicit zeros.
type Series struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// Normalize sorts samples ascending by calendar date and projects them into a
// Series. A missing or empty input yields nil, which callers must render as
// an explicit empty state rather than a zero-point chart. The sort is stable:
// samples sharing a date keep their relative order. Pure function of its
// input; the input slice is not modified.
func Normalize(samples []model.ActivitySample) *Series {
	if len(samples) == 0 {
		return nil
	}
	sorted := make([]model.ActivitySample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateLess(sorted[i].Date, sorted[j].Date)
	})

	s := &Series{
		Labels: make([]string, len(sorted)),
		Counts: make([]int, len(sorted)),
	}
	for i, sample := range sorted {
		s.Labels[i] = sample.Date
		s.Counts[i] = sample.Count
	}
	return s
}

// dateLess orders two date labels. ISO dates compare as calendar dates; when
// either side does not parse, lexical order is the fallback.
func dateLess(a, b string) bool {
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA == nil && errB == nil {
		return ta.Before(tb)
	}
	return a < b
}
