package zonedata

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestGMTName(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		long    bool
		want    string
	}{
		{"zero short", 0, false, "GMT"},
		{"zero long", 0, true, "GMT+00:00"},
		{"whole hour short", -240, false, "GMT-4"},
		{"whole hour long", -240, true, "GMT-04:00"},
		{"half hour short", 330, false, "GMT+5:30"},
		{"half hour long", 330, true, "GMT+05:30"},
		{"quarter hour short", 345, false, "GMT+5:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GMTName(tt.minutes, tt.long)
			if got != tt.want {
				t.Errorf("GMTName(%d, %v) = %q, want %q", tt.minutes, tt.long, got, tt.want)
			}
		})
	}
}

func TestHostProviderOffsetText(t *testing.T) {
	p := HostProvider{}

	tests := []struct {
		name    string
		instant time.Time
		zone    string
		want    string
	}{
		{"new york summer", time.Date(2014, 6, 25, 10, 0, 0, 0, time.UTC), "America/New_York", "-04:00"},
		{"new york winter", time.Date(2014, 1, 15, 10, 0, 0, 0, time.UTC), "America/New_York", "-05:00"},
		{"kolkata half hour", time.Date(2014, 6, 25, 10, 0, 0, 0, time.UTC), "Asia/Kolkata", "+05:30"},
		{"utc", time.Date(2014, 6, 25, 10, 0, 0, 0, time.UTC), "UTC", "+00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.OffsetText(tt.instant, tt.zone)
			if err != nil {
				t.Fatalf("OffsetText error: %v", err)
			}
			if got != tt.want {
				t.Errorf("OffsetText(%v, %s) = %q, want %q", tt.instant, tt.zone, got, tt.want)
			}
		})
	}
}

func TestHostProviderUnknownZone(t *testing.T) {
	p := HostProvider{}
	_, err := p.OffsetText(time.Now(), "Nowhere/Special")
	if err == nil {
		t.Fatal("expected error for unknown zone")
	}
	var tzErr *InvalidTimeZoneError
	if !errors.As(err, &tzErr) {
		t.Errorf("error type %T, want *InvalidTimeZoneError", err)
	}
}

func TestFixtureProviderTransitions(t *testing.T) {
	p := NewFixtureProvider(map[string][]Transition{
		"Test/Zone": {
			{Start: time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC), OffsetMinutes: -300, Abbr: "AAA"},
			{Start: time.Date(2014, 3, 9, 7, 0, 0, 0, time.UTC), OffsetMinutes: -240, Abbr: "BBB"},
		},
	})

	before := time.Date(2014, 2, 1, 0, 0, 0, 0, time.UTC)
	atBoundary := time.Date(2014, 3, 9, 7, 0, 0, 0, time.UTC)
	after := time.Date(2014, 6, 1, 0, 0, 0, 0, time.UTC)
	prehistoric := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		instant    time.Time
		wantOffset string
		wantAbbr   string
	}{
		{"before transition", before, "-05:00", "AAA"},
		{"at boundary", atBoundary, "-04:00", "BBB"},
		{"after transition", after, "-04:00", "BBB"},
		{"before first entry", prehistoric, "-05:00", "AAA"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			text, err := p.OffsetText(tt.instant, "Test/Zone")
			if err != nil {
				t.Fatalf("OffsetText error: %v", err)
			}
			if text != tt.wantOffset {
				t.Errorf("OffsetText = %q, want %q", text, tt.wantOffset)
			}
			name, err := p.DisplayName(tt.instant, "Test/Zone", language.English, NameShort)
			if err != nil {
				t.Fatalf("DisplayName error: %v", err)
			}
			if name != tt.wantAbbr {
				t.Errorf("DisplayName = %q, want %q", name, tt.wantAbbr)
			}
		})
	}
}

func TestFixtureProviderUnknownZone(t *testing.T) {
	p := NewFixtureProvider(nil)
	if _, err := p.OffsetText(time.Now(), "Test/Zone"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
