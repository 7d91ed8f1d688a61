package config

import (
	"regexp"
	"strconv"
	"time"
)

// iso8601DurationPattern matches the duration-only subset of ISO-8601
// this library supports: PT[nH][nM][nS] (no calendar date component,
// since a configuration tree has no notion of years/months/days that
// would require a reference date to resolve unambiguously).
var iso8601DurationPattern = regexp.MustCompile(`^P(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// parseDuration accepts Go's short form (5s, 10ms, 1h) or the ISO-8601
// PTnHnMnS subset, per §4.9.
func parseDuration(s string) (time.Duration, error) {
	if isBlank(s) {
		return 0, newError(KindConversion, "empty duration", nil)
	}
	if s[0] == 'P' {
		return parseISO8601Duration(s)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, newError(KindConversion, "invalid duration "+s, err)
	}
	return d, nil
}

func parseISO8601Duration(s string) (time.Duration, error) {
	m := iso8601DurationPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, newError(KindConversion, "invalid ISO-8601 duration "+s, nil)
	}
	var total time.Duration
	if m[1] != "" {
		h, _ := strconv.ParseFloat(m[1], 64)
		total += time.Duration(h * float64(time.Hour))
	}
	if m[2] != "" {
		min, _ := strconv.ParseFloat(m[2], 64)
		total += time.Duration(min * float64(time.Minute))
	}
	if m[3] != "" {
		sec, _ := strconv.ParseFloat(m[3], 64)
		total += time.Duration(sec * float64(time.Second))
	}
	return total, nil
}
