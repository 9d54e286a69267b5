package profile

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

// CleanNumeric strips thousands separators, currency symbols, percent signs
// and all whitespace from a raw value's string form.
func CleanNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '$', '%', '€', '£', '¥':
			return -1
		}
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ParseNumeric parses a raw value as a finite float after CleanNumeric.
// Callers building statistics exclude values for which ok is false.
func ParseNumeric(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil, bool:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		p, err := strconv.ParseFloat(CleanNumeric(x.String()), 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		p, err := strconv.ParseFloat(CleanNumeric(table.String(v)), 64)
		if err != nil {
			return 0, false
		}
		f = p
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`),
	regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),
	regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`),
	regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`),
}

// dateLayouts are tried in order by ParseDate. Ambiguous numeric forms
// resolve month-first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"01-02-2006",
	"2006-01",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Mon Jan 2 2006",
	"Mon, 02 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
}

// ParseDate is the generic date parser. Values without a zone are read as UTC.
func ParseDate(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t.UTC(), true
	}
	s := strings.TrimSpace(table.String(v))
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// isDateLike reports a date candidate: a pattern match, or a successful
// generic parse on a string longer than four characters.
func isDateLike(s string) bool {
	for _, p := range datePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	if len(s) <= 4 {
		return false
	}
	_, ok := ParseDate(s)
	return ok
}

// roundHalfUp rounds to the nearest integer with halves toward +Inf.
func roundHalfUp(x float64) float64 { return math.Floor(x + 0.5) }

func round2(x float64) float64 { return math.Floor(x*100+0.5) / 100 }
