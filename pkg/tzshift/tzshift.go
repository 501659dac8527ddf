// Package tzshift converts between true UTC instants and their
// wall-clock representation in an arbitrary time zone, without bundling
// a tz database.
//
// The conversion trick: UTCToZonedTime returns an instant whose raw
// value has been shifted so that rendering it naively in the system
// zone shows the wall clock an observer in the target zone would see.
// The zone is not carried on the value; pass it again (for example via
// pkg/format) whenever zone-name or offset tokens must be rendered.
// ZonedTimeToUTC is the exact inverse away from DST transitions.
package tzshift

import (
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/tzshift/tzshift/pkg/offset"
	"github.com/tzshift/tzshift/pkg/pattern"
	"github.com/tzshift/tzshift/pkg/zonedata"
)

// Error kinds surfaced by this package.
type (
	// InvalidTimeZoneError reports an unparseable fixed offset or an
	// identifier the host does not recognize.
	InvalidTimeZoneError = zonedata.InvalidTimeZoneError
	// InvalidDateStringError reports malformed date/time text.
	InvalidDateStringError = pattern.InvalidDateStringError
)

// Converter performs zone-aware conversions. The zero value is not
// usable; construct with New. A Converter is safe for concurrent use.
type Converter struct {
	provider zonedata.Provider
	resolver *offset.Resolver
	sysLoc   *time.Location
	logger   *slog.Logger
	zone     string
	locale   language.Tag
	noCache  bool
}

// New creates a Converter. With no options it resolves through the
// host tz database and treats time.Local as the system zone.
func New(opts ...Option) *Converter {
	c := &Converter{
		provider: zonedata.HostProvider{},
		sysLoc:   time.Local,
		locale:   language.English,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	ropts := []offset.Option{offset.WithProvider(c.provider)}
	if c.noCache {
		ropts = append(ropts, offset.WithoutCache())
	}
	c.resolver = offset.New(ropts...)
	return c
}

// Zone returns the configured target zone descriptor, or "".
func (c *Converter) Zone() string { return c.zone }

// Locale returns the configured locale.
func (c *Converter) Locale() language.Tag { return c.locale }

// Provider returns the zone-data provider.
func (c *Converter) Provider() zonedata.Provider { return c.provider }

// SystemLocation returns the location treated as the system zone.
func (c *Converter) SystemLocation() *time.Location { return c.sysLoc }

// ResolveOffsetMinutes returns the zone's UTC offset in minutes east of
// UTC at the given instant.
func (c *Converter) ResolveOffsetMinutes(instant time.Time, zone string) (int, error) {
	return c.resolver.ResolveMinutes(instant, zone)
}

// systemOffsetMinutes is the system zone's offset at instant.
func (c *Converter) systemOffsetMinutes(instant time.Time) int {
	_, sec := instant.In(c.sysLoc).Zone()
	return sec / 60
}

// UTCToZonedTime shifts a true UTC instant so that rendering the result
// naively in the system zone shows the target zone's wall clock. Both
// offsets are evaluated at t. The result is a faked-local instant: its
// raw value no longer identifies the original point in time, so keep it
// for display only and convert back with ZonedTimeToUTC.
func (c *Converter) UTCToZonedTime(t time.Time, zone string) (time.Time, error) {
	tgt, err := c.resolver.ResolveMinutes(t, zone)
	if err != nil {
		return time.Time{}, err
	}
	sys := c.systemOffsetMinutes(t)
	c.logger.Debug("utc to zoned", "zone", zone, "target_offset_min", tgt, "system_offset_min", sys)
	return t.Add(time.Duration(tgt-sys) * time.Minute).In(c.sysLoc), nil
}

// ZonedTimeToUTC recovers the true UTC instant from a faked-local
// instant produced for the given zone (or from any time value whose
// wall clock in the system zone is to be read as the zone's wall
// clock). The system offset is evaluated at t itself; the target offset
// is first estimated at t and then re-resolved at the estimated true
// instant, so conversions straddling a DST boundary land on the offset
// in effect at the true instant. Wall clocks that are skipped or
// repeated at a transition resolve silently to that post-correction
// offset; no ambiguity is signaled.
func (c *Converter) ZonedTimeToUTC(t time.Time, zone string) (time.Time, error) {
	sys := c.systemOffsetMinutes(t)
	tgt, err := c.resolver.ResolveMinutes(t, zone)
	if err != nil {
		return time.Time{}, err
	}
	est := t.Add(-time.Duration(tgt-sys) * time.Minute)
	tgt, err = c.resolver.ResolveMinutes(est, zone)
	if err != nil {
		return time.Time{}, err
	}
	c.logger.Debug("zoned to utc", "zone", zone, "target_offset_min", tgt, "system_offset_min", sys)
	return t.Add(-time.Duration(tgt-sys) * time.Minute).In(time.UTC), nil
}

// UTCMillisToZonedTime is UTCToZonedTime over epoch milliseconds.
func (c *Converter) UTCMillisToZonedTime(ms int64, zone string) (time.Time, error) {
	return c.UTCToZonedTime(time.UnixMilli(ms).UTC(), zone)
}

// UTCStringToZonedTime parses an ISO-8601 UTC string ("Z" or explicit
// offset; a naive string is read as UTC) and converts it with
// UTCToZonedTime. There is no string entry point for the inverse
// direction: a bare string gives no way to tell which zone it is
// already expressed in.
func (c *Converter) UTCStringToZonedTime(s, zone string) (time.Time, error) {
	iso, err := pattern.ParseISO(s)
	if err != nil {
		return time.Time{}, err
	}
	t := iso.Wall.Add(-time.Duration(iso.OffsetMinutes) * time.Minute)
	return c.UTCToZonedTime(t, zone)
}

// ParseZoned parses date-time text into a true UTC instant. Precedence:
//
//  1. an offset suffix attached to the text ("...T13:46:20+02:00",
//     "...Z") wins, even over a configured zone;
//  2. a trailing space-separated IANA token ("... America/New_York")
//     interprets the text as that zone's wall clock;
//  3. a configured zone (WithZone) interprets the text as its wall
//     clock;
//  4. otherwise the text is read in the system zone.
//
// Malformed text returns *InvalidDateStringError; an unrecognized
// trailing zone token returns *InvalidTimeZoneError.
func (c *Converter) ParseZoned(text string) (time.Time, error) {
	iso, err := pattern.ParseISO(text)
	if err != nil {
		if i := strings.LastIndexByte(text, ' '); i > 0 {
			rest, zoneTok := text[:i], text[i+1:]
			if r, rerr := pattern.ParseISO(rest); rerr == nil && !r.HasOffset {
				return c.ZonedTimeToUTC(c.wallInSystem(r.Wall), zoneTok)
			}
		}
		return time.Time{}, err
	}
	if iso.HasOffset {
		return iso.Wall.Add(-time.Duration(iso.OffsetMinutes) * time.Minute), nil
	}
	if c.zone != "" {
		return c.ZonedTimeToUTC(c.wallInSystem(iso.Wall), c.zone)
	}
	return c.wallInSystem(iso.Wall).In(time.UTC), nil
}

// wallInSystem re-reads naive calendar fields as a system-zone time,
// producing the faked-local encoding ZonedTimeToUTC expects.
func (c *Converter) wallInSystem(wall time.Time) time.Time {
	return time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), c.sysLoc)
}
