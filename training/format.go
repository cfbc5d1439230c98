/*
format.go - Human-readable duration rendering

PURPOSE:
  Renders hour values as "1d 2h 3m 4.5s" strings and parses them back.
  Formatting is a pure presentation concern: ParseHours(FormatHours(h))
  recovers h within floating-point tolerance, so formatted output can be
  round-tripped by external tooling.
*/
package training

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	secondsPerHour = 3600
	secondsPerDay  = 86400
)

// InfiniteLabel renders the infinite-duration sentinel.
const InfiniteLabel = "inf"

// FormatHours renders an hour value as days/hours/minutes/seconds.
// Seconds keep their fractional part so the rendering stays invertible.
func FormatHours(hours float64) string {
	if IsInfinite(hours) {
		return InfiniteLabel
	}
	if hours < 0 {
		return "-" + FormatHours(-hours)
	}

	totalSeconds := hours * secondsPerHour
	days := int64(totalSeconds / secondsPerDay)
	rem := totalSeconds - float64(days)*secondsPerDay
	h := int64(rem / secondsPerHour)
	rem -= float64(h) * secondsPerHour
	m := int64(rem / 60)
	seconds := rem - float64(m)*60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, strconv.FormatFloat(seconds, 'f', -1, 64)+"s")
	}
	return strings.Join(parts, " ")
}

// ParseHours is the inverse of FormatHours.
func ParseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == InfiniteLabel || s == "∞" {
		return InfiniteHours, nil
	}
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	var totalSeconds float64
	for _, part := range strings.Fields(s) {
		if len(part) < 2 {
			return 0, fmt.Errorf("malformed duration part %q", part)
		}
		unit := part[len(part)-1]
		value, err := strconv.ParseFloat(part[:len(part)-1], 64)
		if err != nil {
			return 0, fmt.Errorf("malformed duration part %q: %w", part, err)
		}
		switch unit {
		case 'd':
			totalSeconds += value * secondsPerDay
		case 'h':
			totalSeconds += value * secondsPerHour
		case 'm':
			totalSeconds += value * 60
		case 's':
			totalSeconds += value
		default:
			return 0, fmt.Errorf("unknown duration unit %q", string(unit))
		}
	}
	hours := totalSeconds / secondsPerHour
	if negative {
		hours = -hours
	}
	return hours, nil
}
