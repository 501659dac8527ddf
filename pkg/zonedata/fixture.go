package zonedata

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Transition is one entry in a fixture zone's offset history: from
// Start (inclusive) the zone observes OffsetMinutes east of UTC under
// the given abbreviation.
type Transition struct {
	Start         time.Time
	OffsetMinutes int
	Abbr          string
}

// FixtureProvider serves hand-written transition tables instead of the
// host tz database, so tests behave identically on every machine.
type FixtureProvider struct {
	zones map[string][]Transition
}

// NewFixtureProvider builds a provider from zone transition tables.
// Each table must be ordered by Start; the first entry also covers all
// instants before its Start.
func NewFixtureProvider(zones map[string][]Transition) *FixtureProvider {
	return &FixtureProvider{zones: zones}
}

func (p *FixtureProvider) lookup(instant time.Time, zone string) (Transition, error) {
	table, ok := p.zones[zone]
	if !ok || len(table) == 0 {
		return Transition{}, &InvalidTimeZoneError{Zone: zone}
	}
	current := table[0]
	for _, tr := range table[1:] {
		if instant.Before(tr.Start) {
			break
		}
		current = tr
	}
	return current, nil
}

// OffsetText implements Provider over the fixture tables.
func (p *FixtureProvider) OffsetText(instant time.Time, zone string) (string, error) {
	tr, err := p.lookup(instant, zone)
	if err != nil {
		return "", err
	}
	min := tr.OffsetMinutes
	sign := "+"
	if min < 0 {
		sign = "-"
		min = -min
	}
	return fmt.Sprintf("%s%02d:%02d", sign, min/60, min%60), nil
}

// DisplayName implements Provider over the fixture tables.
func (p *FixtureProvider) DisplayName(instant time.Time, zone string, _ language.Tag, width NameWidth) (string, error) {
	tr, err := p.lookup(instant, zone)
	if err != nil {
		return "", err
	}
	if width == NameShort && tr.Abbr != "" {
		return tr.Abbr, nil
	}
	return GMTName(tr.OffsetMinutes, width == NameLong), nil
}
