// Package offset resolves a zone descriptor to its UTC offset, in
// minutes east of UTC, effective at a given instant.
//
// A descriptor is either a fixed offset ("+04:00", "-0130", "+07", "Z",
// "UTC") or an IANA identifier ("America/New_York"). Fixed offsets are
// parsed locally and never vary with the instant. IANA identifiers are
// resolved through a zonedata.Provider: the instant is formatted in the
// zone and the returned offset text is parsed back to minutes. That
// string round trip is the provider's only zone-data access point and
// is hidden behind Resolver.
package offset

import (
	"fmt"
	"strconv"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/tzshift/tzshift/pkg/zonedata"
)

// Resolver answers offset queries, memoizing IANA lookups per
// (identifier, minute) since offsets are a pure function of instant.
type Resolver struct {
	provider zonedata.Provider
	cache    *otter.Cache[string, int]
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithProvider sets the zone-data provider. Defaults to the host tz
// database.
func WithProvider(p zonedata.Provider) Option {
	return func(r *Resolver) { r.provider = p }
}

// WithoutCache disables memoization of resolved offsets.
func WithoutCache() Option {
	return func(r *Resolver) { r.cache = nil }
}

// New creates a Resolver backed by the host tz database with a bounded
// in-memory memo cache.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		provider: zonedata.HostProvider{},
		cache: otter.Must(&otter.Options[string, int]{
			MaximumSize:     100_000,
			InitialCapacity: 1_000,
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveMinutes returns the zone's UTC offset in minutes east of UTC
// at the given instant. Fixed-offset descriptors resolve without
// touching the provider and never vary with the instant. An
// unrecognized descriptor returns *zonedata.InvalidTimeZoneError.
func (r *Resolver) ResolveMinutes(instant time.Time, zone string) (int, error) {
	if min, ok := ParseFixed(zone); ok {
		return min, nil
	}
	key := zone + "|" + strconv.FormatInt(instant.Unix()/60, 10)
	if r.cache != nil {
		if min, ok := r.cache.GetIfPresent(key); ok {
			return min, nil
		}
	}
	text, err := r.provider.OffsetText(instant, zone)
	if err != nil {
		return 0, err
	}
	min, err := parseOffsetText(text)
	if err != nil {
		return 0, fmt.Errorf("provider returned unparseable offset for %q: %w", zone, err)
	}
	if r.cache != nil {
		r.cache.Set(key, min)
	}
	return min, nil
}

// Provider returns the resolver's zone-data provider.
func (r *Resolver) Provider() zonedata.Provider { return r.provider }

var defaultResolver = New()

// ResolveMinutes resolves through a shared host-backed Resolver.
func ResolveMinutes(instant time.Time, zone string) (int, error) {
	return defaultResolver.ResolveMinutes(instant, zone)
}

// ParseFixed parses a fixed-offset descriptor. Accepted forms are
// "±HH:mm", "±HHmm", "±HH" and the literals "Z" and "UTC", all meaning
// a constant offset in minutes east of UTC. Reports false for anything
// else, including IANA identifiers.
func ParseFixed(zone string) (int, bool) {
	switch zone {
	case "Z", "UTC":
		return 0, true
	}
	if len(zone) < 3 {
		return 0, false
	}
	sign := 1
	switch zone[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false
	}
	rest := zone[1:]
	var hh, mm string
	switch len(rest) {
	case 2: // ±HH
		hh, mm = rest, "00"
	case 4: // ±HHmm
		hh, mm = rest[:2], rest[2:]
	case 5: // ±HH:mm
		if rest[2] != ':' {
			return 0, false
		}
		hh, mm = rest[:2], rest[3:]
	default:
		return 0, false
	}
	h, ok := twoDigits(hh)
	if !ok || h > 23 {
		return 0, false
	}
	m, ok := twoDigits(mm)
	if !ok || m > 59 {
		return 0, false
	}
	return sign * (h*60 + m), true
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// parseOffsetText parses provider output: "±HH:MM", "±HHMM" or "Z".
func parseOffsetText(text string) (int, error) {
	if min, ok := ParseFixed(text); ok {
		return min, nil
	}
	return 0, fmt.Errorf("malformed offset text %q", text)
}
