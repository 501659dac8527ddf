package offset

import (
	"errors"
	"testing"
	"time"

	"github.com/tzshift/tzshift/pkg/zonedata"
)

func TestParseFixed(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want int
		ok   bool
	}{
		{"colon form positive", "+04:00", 240, true},
		{"colon form negative", "-05:00", -300, true},
		{"compact form", "+0430", 270, true},
		{"compact negative", "-0130", -90, true},
		{"hours only", "+07", 420, true},
		{"hours only negative", "-11", -660, true},
		{"zulu", "Z", 0, true},
		{"utc literal", "UTC", 0, true},
		{"zero offset", "+00:00", 0, true},
		{"iana identifier", "America/New_York", 0, false},
		{"missing sign", "04:00", 0, false},
		{"minutes out of range", "+04:75", 0, false},
		{"hours out of range", "+25:00", 0, false},
		{"sign inside digits", "+-1:00", 0, false},
		{"too short", "+4", 0, false},
		{"empty", "", 0, false},
		{"garbage", "banana", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFixed(tt.zone)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseFixed(%q) = (%d, %v), want (%d, %v)", tt.zone, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResolveMinutesFixedIgnoresInstant(t *testing.T) {
	r := New()
	instants := []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2014, 6, 25, 10, 0, 0, 0, time.UTC),
		time.Date(2038, 1, 19, 3, 14, 7, 0, time.UTC),
	}
	for _, instant := range instants {
		got, err := r.ResolveMinutes(instant, "+04:00")
		if err != nil {
			t.Fatalf("ResolveMinutes(%v, +04:00) error: %v", instant, err)
		}
		if got != 240 {
			t.Errorf("ResolveMinutes(%v, +04:00) = %d, want 240", instant, got)
		}
	}
}

func fixtureProvider() *zonedata.FixtureProvider {
	return zonedata.NewFixtureProvider(map[string][]zonedata.Transition{
		"America/New_York": {
			{Start: time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC), OffsetMinutes: -300, Abbr: "EST"},
			{Start: time.Date(2014, 3, 9, 7, 0, 0, 0, time.UTC), OffsetMinutes: -240, Abbr: "EDT"},
			{Start: time.Date(2014, 11, 2, 6, 0, 0, 0, time.UTC), OffsetMinutes: -300, Abbr: "EST"},
		},
		"Asia/Bangkok": {
			{Start: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), OffsetMinutes: 420, Abbr: "ICT"},
		},
	})
}

func TestResolveMinutesIANA(t *testing.T) {
	r := New(WithProvider(fixtureProvider()))

	tests := []struct {
		name    string
		instant time.Time
		zone    string
		want    int
	}{
		{"new york winter", time.Date(2014, 1, 15, 12, 0, 0, 0, time.UTC), "America/New_York", -300},
		{"new york summer", time.Date(2014, 6, 25, 10, 0, 0, 0, time.UTC), "America/New_York", -240},
		{"new york after fall back", time.Date(2014, 11, 2, 6, 0, 0, 0, time.UTC), "America/New_York", -300},
		{"bangkok no dst", time.Date(2014, 10, 25, 6, 0, 0, 0, time.UTC), "Asia/Bangkok", 420},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveMinutes(tt.instant, tt.zone)
			if err != nil {
				t.Fatalf("ResolveMinutes error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveMinutes(%v, %s) = %d, want %d", tt.instant, tt.zone, got, tt.want)
			}
		})
	}
}

func TestResolveMinutesUnknownZone(t *testing.T) {
	r := New(WithProvider(fixtureProvider()))
	_, err := r.ResolveMinutes(time.Now(), "Nowhere/Special")
	if err == nil {
		t.Fatal("expected error for unknown zone, got nil")
	}
	var tzErr *zonedata.InvalidTimeZoneError
	if !errors.As(err, &tzErr) {
		t.Errorf("expected *InvalidTimeZoneError, got %T: %v", err, err)
	}
	if tzErr.Zone != "Nowhere/Special" {
		t.Errorf("error zone = %q, want Nowhere/Special", tzErr.Zone)
	}
}

func TestResolveMinutesHostDatabase(t *testing.T) {
	r := New()
	got, err := r.ResolveMinutes(time.Date(2014, 6, 25, 10, 0, 0, 0, time.UTC), "America/Los_Angeles")
	if err != nil {
		t.Fatalf("ResolveMinutes error: %v", err)
	}
	if got != -420 {
		t.Errorf("Los Angeles in June = %d minutes, want -420 (PDT)", got)
	}
}

func TestResolveMinutesCachedAndUncachedAgree(t *testing.T) {
	instant := time.Date(2014, 6, 25, 10, 0, 0, 0, time.UTC)
	cached := New(WithProvider(fixtureProvider()))
	uncached := New(WithProvider(fixtureProvider()), WithoutCache())

	for range 3 { // repeated queries hit the memo path
		a, err := cached.ResolveMinutes(instant, "America/New_York")
		if err != nil {
			t.Fatalf("cached resolve error: %v", err)
		}
		b, err := uncached.ResolveMinutes(instant, "America/New_York")
		if err != nil {
			t.Fatalf("uncached resolve error: %v", err)
		}
		if a != b || a != -240 {
			t.Errorf("cached = %d, uncached = %d, want both -240", a, b)
		}
	}
}
