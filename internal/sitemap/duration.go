package sitemap

import (
	"math"
	"strconv"
	"strings"
)

// DefaultDurationSeconds is reported for videos whose duration is missing or
// unparseable. Search engines require a duration on every video entry.
const DefaultDurationSeconds = 26

// ParseDurationSeconds converts "90", "1:30" or "01:02:03" into seconds.
// Anything else, including values too large for an int, yields
// DefaultDurationSeconds.
func ParseDurationSeconds(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultDurationSeconds
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return DefaultDurationSeconds
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return DefaultDurationSeconds
		}
		if total > (math.MaxInt-n)/60 {
			return DefaultDurationSeconds
		}
		total = total*60 + n
	}
	return total
}
