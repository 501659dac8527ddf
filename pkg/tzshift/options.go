package tzshift

import (
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/tzshift/tzshift/pkg/zonedata"
)

// Option configures a Converter.
type Option func(*Converter)

// WithZone sets the target zone descriptor: a fixed offset ("+04:00",
// "-0130", "Z") or an IANA identifier ("America/New_York").
func WithZone(zone string) Option {
	return func(c *Converter) { c.zone = zone }
}

// WithLocale sets the locale used for localized zone display names.
func WithLocale(locale language.Tag) Option {
	return func(c *Converter) { c.locale = locale }
}

// WithProvider sets the zone-data provider. Defaults to the host tz
// database.
func WithProvider(p zonedata.Provider) Option {
	return func(c *Converter) { c.provider = p }
}

// WithSystemLocation overrides the location treated as the system zone.
// Defaults to time.Local; tests set a fixed location so results do not
// depend on the machine's zone.
func WithSystemLocation(loc *time.Location) Option {
	return func(c *Converter) { c.sysLoc = loc }
}

// WithLogger sets the logger for debug-level resolution traces.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) { c.logger = logger }
}

// WithoutCache disables offset memoization on the underlying resolver.
func WithoutCache() Option {
	return func(c *Converter) { c.noCache = true }
}
