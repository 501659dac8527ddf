// Package pattern implements the calendar-field side of date
// formatting and parsing: a CLDR-style token formatter for non-zone
// tokens and an ISO-8601 parser. Zone tokens (x, X, O, z) are out of
// this package's vocabulary; pkg/format intercepts them before
// delegating here.
package pattern

import (
	"fmt"
	"strings"
	"time"
)

// InvalidDateStringError reports date/time text this package could not
// parse.
type InvalidDateStringError struct {
	Input  string
	Reason string
}

func (e *InvalidDateStringError) Error() string {
	return fmt.Sprintf("invalid date string %q: %s", e.Input, e.Reason)
}

// Format renders t according to a CLDR-style pattern. Supported tokens:
// y yy yyyy, M MM MMM MMMM, d dd, E EEE EEEE, H HH, h hh, m mm, s ss,
// S SS SSS, a. Text in single quotes is emitted literally ('' is a
// literal quote). Calendar fields are read from t in its own location.
func Format(t time.Time, pat string) (string, error) {
	var b strings.Builder
	runes := []rune(pat)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			lit, next, err := readQuoted(runes, i)
			if err != nil {
				return "", err
			}
			b.WriteString(lit)
			i = next
		case isPatternLetter(r):
			n := runLength(runes, i)
			s, err := field(t, r, n)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
			i += n
		default:
			b.WriteRune(r)
			i++
		}
	}
	return b.String(), nil
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func runLength(runes []rune, i int) int {
	n := 1
	for i+n < len(runes) && runes[i+n] == runes[i] {
		n++
	}
	return n
}

// readQuoted consumes a single-quoted literal starting at runes[i] and
// returns the literal text and the index after the closing quote.
func readQuoted(runes []rune, i int) (string, int, error) {
	if i+1 < len(runes) && runes[i+1] == '\'' {
		return "'", i + 2, nil
	}
	var b strings.Builder
	j := i + 1
	for j < len(runes) {
		if runes[j] == '\'' {
			if j+1 < len(runes) && runes[j+1] == '\'' {
				b.WriteRune('\'')
				j += 2
				continue
			}
			return b.String(), j + 1, nil
		}
		b.WriteRune(runes[j])
		j++
	}
	return "", 0, fmt.Errorf("unterminated quote in pattern at position %d", i)
}

func field(t time.Time, letter rune, n int) (string, error) {
	switch letter {
	case 'y':
		y := t.Year()
		if n == 2 {
			return fmt.Sprintf("%02d", y%100), nil
		}
		return pad(y, n), nil
	case 'M':
		switch {
		case n <= 2:
			return pad(int(t.Month()), n), nil
		case n == 3:
			return t.Month().String()[:3], nil
		default:
			return t.Month().String(), nil
		}
	case 'd':
		return pad(t.Day(), n), nil
	case 'E':
		if n <= 3 {
			return t.Weekday().String()[:3], nil
		}
		return t.Weekday().String(), nil
	case 'H':
		return pad(t.Hour(), n), nil
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, n), nil
	case 'm':
		return pad(t.Minute(), n), nil
	case 's':
		return pad(t.Second(), n), nil
	case 'S':
		// Fractional seconds, truncated to n digits.
		frac := fmt.Sprintf("%09d", t.Nanosecond())
		if n > len(frac) {
			n = len(frac)
		}
		return frac[:n], nil
	case 'a':
		if t.Hour() < 12 {
			return "AM", nil
		}
		return "PM", nil
	default:
		return "", fmt.Errorf("unsupported pattern token %q", strings.Repeat(string(letter), n))
	}
}

func pad(v, width int) string {
	return fmt.Sprintf("%0*d", width, v)
}

// ISOTime is the result of parsing an ISO-8601 string. Wall carries the
// literal calendar fields in the UTC location (a naive holder, not an
// instant); OffsetMinutes is set only when HasOffset is true.
type ISOTime struct {
	Wall          time.Time
	OffsetMinutes int
	HasOffset     bool
}

// ParseISO parses "yyyy-MM-dd", optionally followed by a 'T' or space
// and "HH:mm", "HH:mm:ss" or "HH:mm:ss.SSS", optionally followed by an
// attached offset suffix ("Z", "±HH:mm", "±HHmm"). Malformed input
// returns *InvalidDateStringError.
func ParseISO(s string) (ISOTime, error) {
	orig := s
	fail := func(reason string) (ISOTime, error) {
		return ISOTime{}, &InvalidDateStringError{Input: orig, Reason: reason}
	}

	var res ISOTime
	s, res.OffsetMinutes, res.HasOffset = splitOffsetSuffix(s)

	datePart := s
	timePart := ""
	if i := strings.IndexAny(s, "T "); i >= 0 {
		datePart, timePart = s[:i], s[i+1:]
	}

	year, month, day, ok := parseDate(datePart)
	if !ok {
		return fail("malformed date")
	}
	hour, minute, sec, nsec := 0, 0, 0, 0
	if timePart != "" {
		var ok bool
		hour, minute, sec, nsec, ok = parseTime(timePart)
		if !ok {
			return fail("malformed time")
		}
	} else if res.HasOffset {
		// A bare date with an offset suffix ("2014-01-02+05:00") is
		// not a form we accept.
		return fail("offset suffix requires a time component")
	}

	res.Wall = time.Date(year, time.Month(month), day, hour, minute, sec, nsec, time.UTC)
	// Reject field overflow that time.Date would silently normalize.
	if res.Wall.Day() != day || int(res.Wall.Month()) != month {
		return fail("date out of range")
	}
	return res, nil
}

// splitOffsetSuffix strips a trailing "Z", "±HH:mm" or "±HHmm" that is
// attached directly to the date-time text.
func splitOffsetSuffix(s string) (rest string, minutes int, ok bool) {
	if strings.HasSuffix(s, "Z") {
		return s[:len(s)-1], 0, true
	}
	for _, n := range []int{6, 5} { // ±HH:mm then ±HHmm
		if len(s) <= n {
			continue
		}
		suffix := s[len(s)-n:]
		if suffix[0] != '+' && suffix[0] != '-' {
			continue
		}
		if min, valid := parseOffsetSuffix(suffix); valid {
			return s[:len(s)-n], min, true
		}
	}
	return s, 0, false
}

func parseOffsetSuffix(s string) (int, bool) {
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	body := s[1:]
	var hh, mm string
	switch len(body) {
	case 4:
		hh, mm = body[:2], body[2:]
	case 5:
		if body[2] != ':' {
			return 0, false
		}
		hh, mm = body[:2], body[3:]
	default:
		return 0, false
	}
	h, ok1 := digits(hh)
	m, ok2 := digits(mm)
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, false
	}
	return sign * (h*60 + m), true
}

// digits parses a string of ASCII digits only; unlike strconv.Atoi it
// rejects signs, so misplaced "+"/"-" cannot sneak into a field.
func digits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

func parseDate(s string) (year, month, day int, ok bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0, false
	}
	var okY, okM, okD bool
	year, okY = digits(s[:4])
	month, okM = digits(s[5:7])
	day, okD = digits(s[8:])
	if !okY || !okM || !okD {
		return 0, 0, 0, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func parseTime(s string) (hour, minute, sec, nsec int, ok bool) {
	main := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		main = s[:i]
		frac := s[i+1:]
		if frac == "" || len(frac) > 9 {
			return 0, 0, 0, 0, false
		}
		f, ok := digits(frac)
		if !ok {
			return 0, 0, 0, 0, false
		}
		for range 9 - len(frac) {
			f *= 10
		}
		nsec = f
	}
	switch len(main) {
	case 5: // HH:mm
		main += ":00"
	case 8: // HH:mm:ss
	default:
		return 0, 0, 0, 0, false
	}
	if main[2] != ':' || main[5] != ':' {
		return 0, 0, 0, 0, false
	}
	var okH, okM, okS bool
	hour, okH = digits(main[:2])
	minute, okM = digits(main[3:5])
	sec, okS = digits(main[6:])
	if !okH || !okM || !okS {
		return 0, 0, 0, 0, false
	}
	if hour > 23 || minute > 59 || sec > 59 {
		return 0, 0, 0, 0, false
	}
	return hour, minute, sec, nsec, true
}
