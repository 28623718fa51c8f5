package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNormalizeMusic(t *testing.T) {
	tests := []struct {
		track string
		want  string
	}{
		{MusicYorYor, WireMusicTraditional},
		{MusicLazgi, WireMusicTraditional},
		{MusicModern, WireMusicModern},
		{"", WireMusicTraditional},
		{"unknown-track", WireMusicTraditional},
	}
	for _, tt := range tests {
		if got := NormalizeMusic(tt.track); got != tt.want {
			t.Errorf("NormalizeMusic(%q) = %q, want %q", tt.track, got, tt.want)
		}
	}
}

func TestIsMusicTrack(t *testing.T) {
	for _, track := range MusicTracks {
		if !IsMusicTrack(track) {
			t.Errorf("IsMusicTrack(%q) = false for a catalog track", track)
		}
	}
	for _, id := range []string{"", "TRADITIONAL", "polka"} {
		if IsMusicTrack(id) {
			t.Errorf("IsMusicTrack(%q) = true for an unknown id", id)
		}
	}
}

func TestNormalizeTemplate(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"classic_royale", WireTemplateClassic},
		{"golden_ornament", WireTemplateClassic},
		{"floral_breeze", WireTemplateModern},
		{"midnight_pearl", WireTemplateModern},
		{"", WireTemplateClassic},
		{"no-such-template", WireTemplateClassic},
	}
	for _, tt := range tests {
		if got := NormalizeTemplate(tt.id); got != tt.want {
			t.Errorf("NormalizeTemplate(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

// **Feature: invitation-model, Property: enum mapping totality**
// *For any* input string, the music and template mappings return a
// member of the wire enumeration, never an error and never a
// passthrough of unrecognized input.
func TestEnumMappingsAreTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("music mapping always lands on a wire member", prop.ForAll(
		func(track string) bool {
			wire := NormalizeMusic(track)
			return wire == WireMusicTraditional || wire == WireMusicModern
		},
		gen.AnyString(),
	))

	properties.Property("template mapping always lands on a wire member", prop.ForAll(
		func(id string) bool {
			wire := NormalizeTemplate(id)
			return wire == WireTemplateClassic || wire == WireTemplateModern
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestCombineDateTime(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
		want  string
	}{
		{"date and time", "2026-08-28", "18:00", "2026-08-28T18:00:00Z"},
		{"empty time defaults to midnight", "2026-08-28", "", "2026-08-28T00:00:00Z"},
		{"empty date", "", "18:00", ""},
		{"unparseable date passes through", "28 August", "18:00", "28 August"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CombineDateTime(tt.date, tt.clock); got != tt.want {
				t.Errorf("CombineDateTime(%q, %q) = %q, want %q", tt.date, tt.clock, got, tt.want)
			}
		})
	}
}

func TestSplitDateTime(t *testing.T) {
	tests := []struct {
		name      string
		ts        string
		wantDate  string
		wantClock string
	}{
		{"combined timestamp", "2026-08-28T18:00:00Z", "2026-08-28", "18:00"},
		{"bare date", "2026-08-28", "2026-08-28", ""},
		{"empty", "", "", ""},
		{"non-rfc3339 with time", "2026-08-28T18:00", "2026-08-28", "18:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, clock := SplitDateTime(tt.ts)
			if date != tt.wantDate || clock != tt.wantClock {
				t.Errorf("SplitDateTime(%q) = (%q, %q), want (%q, %q)",
					tt.ts, date, clock, tt.wantDate, tt.wantClock)
			}
		})
	}
}

// **Feature: invitation-model, Property: timestamp round-trip**
// *For any* valid date and minute-resolution time, combining and then
// splitting returns the original pair unchanged.
func TestDateTimeRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("combine then split is lossless", prop.ForAll(
		func(year, month, day, hour, minute int) bool {
			date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
			clock := fmt.Sprintf("%02d:%02d", hour, minute)

			gotDate, gotClock := SplitDateTime(CombineDateTime(date, clock))
			return gotDate == date && gotClock == clock
		},
		gen.IntRange(2000, 2100),
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
		gen.IntRange(0, 23),
		gen.IntRange(0, 59),
	))

	properties.TestingRun(t)
}

func TestEmptyTimeRoundTripsAsMidnight(t *testing.T) {
	date, clock := SplitDateTime(CombineDateTime("2026-08-28", ""))
	if date != "2026-08-28" || clock != "00:00" {
		t.Errorf("round trip of an empty time = (%q, %q), want (2026-08-28, 00:00)", date, clock)
	}
}

func TestMergeSkipsZeroFields(t *testing.T) {
	inv := NewDraft()
	inv.GroomName = "Sanjar"
	inv.Hall = "Zarafshon"

	inv.Merge(Invitation{BrideName: "Malika", Hall: ""})

	if inv.GroomName != "Sanjar" {
		t.Errorf("groom name overwritten: %q", inv.GroomName)
	}
	if inv.BrideName != "Malika" {
		t.Errorf("bride name not merged: %q", inv.BrideName)
	}
	if inv.Hall != "Zarafshon" {
		t.Errorf("empty field clobbered hall: %q", inv.Hall)
	}
}

func TestNewDraftDefaults(t *testing.T) {
	draft := NewDraft()
	if !draft.IsDraft() {
		t.Error("fresh draft reports a persisted identity")
	}
	if draft.BackgroundMusic != MusicYorYor {
		t.Errorf("default music = %q, want %q", draft.BackgroundMusic, MusicYorYor)
	}
	if draft.Template != DefaultTemplate {
		t.Errorf("default template = %q, want %q", draft.Template, DefaultTemplate)
	}
}
