// Package format renders instants with a CLDR-style pattern, extending
// pkg/pattern with zone tokens whose values come from a configured
// target zone rather than the system zone.
//
// Intercepted tokens: X..XXXXX and x..xxxxx (numeric offsets), O..OOOO
// (GMT-prefixed names) and z..zzzz (localized names). Everything else,
// quoted literals included, is delegated to pkg/pattern unchanged.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/tzshift/tzshift/pkg/pattern"
	"github.com/tzshift/tzshift/pkg/tzshift"
	"github.com/tzshift/tzshift/pkg/zonedata"
)

// Format renders t according to pat. When a zone is configured
// (tzshift.WithZone), t is read as a faked-local instant for that zone:
// calendar tokens render its system-zone wall clock, and zone tokens
// render the configured zone's offset and names, both evaluated at the
// recovered true instant. Without a configured zone all tokens fall
// back to t's own system-zone reading, matching pkg/pattern exactly.
func Format(t time.Time, pat string, opts ...tzshift.Option) (string, error) {
	c := tzshift.New(opts...)
	return Using(c, t, pat)
}

// Using is Format with a prebuilt Converter, for callers that format
// many values with one configuration.
func Using(c *tzshift.Converter, t time.Time, pat string) (string, error) {
	wall := t.In(c.SystemLocation())

	offMin, evalAt, name := 0, t, ""
	zoned := c.Zone() != ""
	if zoned {
		trueInstant, err := c.ZonedTimeToUTC(t, c.Zone())
		if err != nil {
			return "", err
		}
		evalAt = trueInstant
		offMin, err = c.ResolveOffsetMinutes(trueInstant, c.Zone())
		if err != nil {
			return "", err
		}
	} else {
		var sec int
		name, sec = wall.Zone()
		offMin = sec / 60
	}

	var out strings.Builder
	var plain strings.Builder
	flush := func() error {
		if plain.Len() == 0 {
			return nil
		}
		s, err := pattern.Format(wall, plain.String())
		if err != nil {
			return err
		}
		out.WriteString(s)
		plain.Reset()
		return nil
	}

	runes := []rune(pat)
	for i := 0; i < len(runes); {
		r := runes[i]
		if r == '\'' {
			end, err := skipQuoted(runes, i)
			if err != nil {
				return "", err
			}
			plain.WriteString(string(runes[i:end]))
			i = end
			continue
		}
		if !isZoneToken(r) {
			plain.WriteRune(r)
			i++
			continue
		}
		n := 1
		for i+n < len(runes) && runes[i+n] == r {
			n++
		}
		if err := flush(); err != nil {
			return "", err
		}
		s, err := zoneField(c, r, n, offMin, evalAt, zoned, name)
		if err != nil {
			return "", err
		}
		out.WriteString(s)
		i += n
	}
	if err := flush(); err != nil {
		return "", err
	}
	return out.String(), nil
}

func isZoneToken(r rune) bool {
	return r == 'x' || r == 'X' || r == 'O' || r == 'z'
}

// skipQuoted returns the index just past a quoted literal opening at i.
func skipQuoted(runes []rune, i int) (int, error) {
	if i+1 < len(runes) && runes[i+1] == '\'' {
		return i + 2, nil
	}
	for j := i + 1; j < len(runes); j++ {
		if runes[j] == '\'' {
			if j+1 < len(runes) && runes[j+1] == '\'' {
				j++
				continue
			}
			return j + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated quote in pattern at position %d", i)
}

func zoneField(c *tzshift.Converter, letter rune, n, offMin int, evalAt time.Time, zoned bool, sysName string) (string, error) {
	switch letter {
	case 'X':
		if n > 5 {
			n = 5
		}
		if offMin == 0 {
			return "Z", nil
		}
		return numericOffset(offMin, n), nil
	case 'x':
		if n > 5 {
			n = 5
		}
		return numericOffset(offMin, n), nil
	case 'O':
		return zonedata.GMTName(offMin, n >= 4), nil
	case 'z':
		if zoned {
			width := zonedata.NameShort
			if n >= 4 {
				width = zonedata.NameLong
			}
			return c.Provider().DisplayName(evalAt, c.Zone(), c.Locale(), width)
		}
		if n >= 4 || sysName == "" {
			return zonedata.GMTName(offMin, true), nil
		}
		return sysName, nil
	default:
		return "", fmt.Errorf("unsupported zone token %q", strings.Repeat(string(letter), n))
	}
}

// numericOffset renders minutes east of UTC per the x/X widths: 1 is
// "+04" (minutes appended only when nonzero), 2 is "+0400", 3 is
// "+04:00", 4 and 5 repeat 2 and 3 (seconds are never nonzero here).
func numericOffset(min, width int) string {
	sign := "+"
	if min < 0 {
		sign = "-"
		min = -min
	}
	h, m := min/60, min%60
	switch width {
	case 1:
		if m == 0 {
			return fmt.Sprintf("%s%02d", sign, h)
		}
		return fmt.Sprintf("%s%02d%02d", sign, h, m)
	case 2, 4:
		return fmt.Sprintf("%s%02d%02d", sign, h, m)
	default:
		return fmt.Sprintf("%s%02d:%02d", sign, h, m)
	}
}
