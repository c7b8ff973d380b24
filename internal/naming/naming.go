// Package naming formats the identifiers issued by the registry: batch names
// and student registration numbers.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"isml_backend/internal/apperr"

	"gorm.io/datatypes"
)

var ErrInvalidTime = apperr.New(apperr.Validation, "INVALID_TIME", "Time must be in 24-hour HH:MM format")

// DefaultBatchSequence is the number given to the first batch ever allocated.
const DefaultBatchSequence int64 = 118

// LegacySequence fills the sequence slot of a batch name that never had one.
const LegacySequence = "000"

const (
	FallbackStateCode  = "XX"
	FallbackCenterCode = "YY"
	RegistrationPrefix = "ISML"
)

var (
	// Seconds are accepted because SQL TIME columns come back as HH:MM:SS.
	clockPattern    = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)(?::([0-5]\d))?$`)
	sequencePattern = regexp.MustCompile(`^B(\d+)`)
)

type clock struct {
	hour, minute, second int
}

func parseClock(value string) (clock, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return clock{}, apperr.Wrap(ErrInvalidTime, fmt.Errorf("malformed time %q", value))
	}
	var c clock
	c.hour, _ = strconv.Atoi(m[1])
	c.minute, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		c.second, _ = strconv.Atoi(m[3])
	}
	return c, nil
}

// FormatClock turns a 24-hour "HH:MM" into a 12-hour clock with the suffix
// glued on: "09:00" -> "9:00AM", "00:00" -> "12:00AM".
func FormatClock(value string) (string, error) {
	c, err := parseClock(value)
	if err != nil {
		return "", err
	}
	suffix := "AM"
	if c.hour >= 12 {
		suffix = "PM"
	}
	hour := c.hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d%s", hour, c.minute, suffix), nil
}

// ParseClock parses the same grammar as FormatClock into a SQL TIME value.
func ParseClock(value string) (datatypes.Time, error) {
	c, err := parseClock(value)
	if err != nil {
		return 0, err
	}
	return datatypes.NewTime(c.hour, c.minute, c.second, 0), nil
}

// BatchName composes B<seq>-<COURSE>-<from>-<to>. The course name is
// uppercased as is; from and to must already be formatted.
func BatchName(seq, courseName, from, to string) string {
	return "B" + seq + "-" + strings.ToUpper(courseName) + "-" + from + "-" + to
}

// BatchSequence extracts the leading sequence number of a batch name.
func BatchSequence(name string) (int64, bool) {
	m := sequencePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SequencePart returns the digits after "B" verbatim, keeping any leading
// zeros, or LegacySequence when the name has none.
func SequencePart(name string) string {
	m := sequencePattern.FindStringSubmatch(name)
	if m == nil {
		return LegacySequence
	}
	return m[1]
}

// RegionCode is the first two characters of name, uppercased. Names that are
// missing or too short yield fallback.
func RegionCode(name, fallback string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return fallback
	}
	runes := []rune(name)
	return strings.ToUpper(string(runes[:2]))
}

// RegistrationNumber composes ISML<STATE2><CENTER2><RAND4>.
func RegistrationNumber(stateCode, centerCode string, rand4 int) string {
	return fmt.Sprintf("%s%s%s%04d", RegistrationPrefix, stateCode, centerCode, rand4)
}
