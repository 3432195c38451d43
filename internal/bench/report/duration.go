package report

import (
	"fmt"
	"strings"
	"time"
)

// Decomposition constants. The year is a flat 365 days: the rendering is
// intentionally calendar-approximate and its output is part of the export
// contract, so it must stay exactly as is.
const (
	msPerSecond      = 1000
	secondsPerMinute = 60
	minutesPerHour   = 60
	hoursPerDay      = 24
	daysPerYear      = 365
)

// FormatDuration renders d as a compact human-readable string such as
// "20m 34s 567ms". Sub-millisecond precision is truncated; a duration under
// one millisecond renders as "0ms".
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms == 0 {
		return "0ms"
	}

	s := ms / msPerSecond
	ms %= msPerSecond
	m := s / secondsPerMinute
	s %= secondsPerMinute
	h := m / minutesPerHour
	m %= minutesPerHour
	days := h / hoursPerDay
	h %= hoursPerDay
	years := days / daysPerYear
	days %= daysPerYear

	var parts []string
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%dy", years))
	}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	if ms > 0 {
		parts = append(parts, fmt.Sprintf("%dms", ms))
	}
	return strings.Join(parts, " ")
}
