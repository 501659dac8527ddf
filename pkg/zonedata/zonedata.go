// Package zonedata abstracts the host's time zone database behind a
// small provider interface. The rest of the library learns offsets and
// display names only by asking a Provider to render an instant in a
// named zone as text, so tests can swap in deterministic fixtures and
// hosts without a tz database fail loudly instead of guessing.
package zonedata

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// NameWidth selects the display-name form a Provider should return.
type NameWidth int

const (
	// NameShort requests the abbreviated zone name (e.g. "EDT").
	NameShort NameWidth = iota
	// NameLong requests the long zone name. Hosts without long-name
	// data return the GMT-prefixed offset form instead.
	NameLong
)

// Provider is the zone-data oracle. Implementations must be stateless
// with respect to callers: results depend only on the arguments, and
// concurrent calls need no coordination.
type Provider interface {
	// OffsetText formats instant in the named zone and returns the
	// numeric UTC offset as text in ±HH:MM form ("Z" is accepted for
	// zero). The zone must be an IANA identifier known to the host.
	OffsetText(instant time.Time, zone string) (string, error)

	// DisplayName returns the zone's display name in effect at
	// instant. Name quality depends on host locale data and is not
	// guaranteed identical across hosts.
	DisplayName(instant time.Time, zone string, locale language.Tag, width NameWidth) (string, error)
}

// InvalidTimeZoneError reports a zone descriptor that is neither a
// parseable fixed offset nor an identifier the host recognizes.
type InvalidTimeZoneError struct {
	Zone string
}

func (e *InvalidTimeZoneError) Error() string {
	return fmt.Sprintf("invalid time zone %q", e.Zone)
}

// HostProvider resolves zones through the host's tz database via
// time.LoadLocation. It is the default Provider.
type HostProvider struct{}

// OffsetText formats instant in the named zone and returns its offset
// as ±HH:MM text.
func (HostProvider) OffsetText(instant time.Time, zone string) (string, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", &InvalidTimeZoneError{Zone: zone}
	}
	return instant.In(loc).Format("-07:00"), nil
}

// DisplayName returns the host's abbreviation for the zone at instant,
// or a GMT-offset form when the host has no usable name. The locale tag
// is accepted for interface compatibility; the host tz database carries
// no localized names, so it does not affect the result.
func (HostProvider) DisplayName(instant time.Time, zone string, _ language.Tag, width NameWidth) (string, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", &InvalidTimeZoneError{Zone: zone}
	}
	local := instant.In(loc)
	if width == NameShort {
		if name, _ := local.Zone(); usableAbbreviation(name) {
			return name, nil
		}
	}
	_, sec := local.Zone()
	return GMTName(sec/60, width == NameLong), nil
}

// usableAbbreviation reports whether the host returned a real
// abbreviation rather than a bare numeric offset like "+07".
func usableAbbreviation(name string) bool {
	return name != "" && name[0] != '+' && name[0] != '-'
}

// GMTName renders an offset in minutes east of UTC as a GMT-prefixed
// name: "GMT" for zero, "GMT+7" / "GMT+5:30" short, "GMT+07:00" long.
func GMTName(minutes int, long bool) string {
	if minutes == 0 && !long {
		return "GMT"
	}
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	h, m := minutes/60, minutes%60
	if long {
		return fmt.Sprintf("GMT%s%02d:%02d", sign, h, m)
	}
	if m == 0 {
		return fmt.Sprintf("GMT%s%d", sign, h)
	}
	return fmt.Sprintf("GMT%s%d:%02d", sign, h, m)
}
