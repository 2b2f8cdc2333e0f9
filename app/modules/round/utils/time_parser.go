// Package roundutil holds round-module helpers: natural-language tee time
// parsing on top of the when library.
package roundutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"

	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// TimeParser turns user-entered tee times ("saturday 7:30am", "tomorrow at
// noon") into concrete instants.
type TimeParser struct {
	TimezoneMap map[string]string
}

// NewTimeParser creates a TimeParser with US timezone abbreviations mapped to
// IANA names.
func NewTimeParser() *TimeParser {
	return &TimeParser{
		TimezoneMap: map[string]string{
			"PST": "America/Los_Angeles",
			"PDT": "America/Los_Angeles",
			"MST": "America/Denver",
			"MDT": "America/Denver",
			"CST": "America/Chicago",
			"CDT": "America/Chicago",
			"EST": "America/New_York",
			"EDT": "America/New_York",
		},
	}
}

// ResolveTimezone maps an abbreviation or full IANA name onto an IANA name.
func (tp *TimeParser) ResolveTimezone(input string) (string, bool) {
	inputUpper := strings.ToUpper(input)

	for _, fullName := range tp.TimezoneMap {
		if inputUpper == strings.ToUpper(fullName) {
			return fullName, true
		}
	}
	if fullName, ok := tp.TimezoneMap[inputUpper]; ok {
		return fullName, true
	}
	return "", false
}

var missingColonPattern = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

// ParseTeeTime parses a user-entered tee time in the given timezone and
// returns it in UTC. The result must be in the future relative to the clock.
func (tp *TimeParser) ParseTeeTime(input, timezone string, clock utils.Clock) (time.Time, error) {
	tzName, ok := tp.ResolveTimezone(timezone)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid timezone: %s", timezone)
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load timezone %s: %w", tzName, err)
	}

	normalized := strings.ToLower(strings.TrimSpace(input))
	// "730am" reads as "7:30 am"
	normalized = missingColonPattern.ReplaceAllString(normalized, "$1:$2 $3")

	w := when.New(nil)
	w.Add(en.All...)

	now := clock.Now().In(loc)
	r, err := w.Parse(normalized, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse tee time %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize tee time format: %s", input)
	}

	parsed := r.Time.In(loc).Truncate(time.Minute)
	if parsed.Before(now.Truncate(time.Minute)) {
		return time.Time{}, fmt.Errorf("tee time must be in the future (parsed %s, now %s)", parsed, now)
	}
	return parsed.UTC(), nil
}
