package models

import (
	"strings"
	"time"
)

// Music tracks selectable as invitation background music.
const (
	// MusicYorYor is the default soundtrack.
	MusicYorYor = "yor_yor"
	MusicLazgi  = "lazgi"
	MusicModern = "modern"
)

// MusicTracks lists the selectable soundtracks in display order.
var MusicTracks = []string{MusicYorYor, MusicLazgi, MusicModern}

// IsMusicTrack reports whether id names a known soundtrack.
func IsMusicTrack(id string) bool {
	for _, track := range MusicTracks {
		if track == id {
			return true
		}
	}
	return false
}

// DefaultTemplate is the template every fresh draft starts with.
const DefaultTemplate = "classic_royale"

// Wire enumeration members accepted by the persistence layer.
const (
	// WireMusicTraditional is the first music enumeration member and the
	// fallback for unrecognized tracks.
	WireMusicTraditional = "TRADITIONAL"
	WireMusicModern      = "MODERN"

	// WireTemplateClassic is the first template enumeration member and
	// the fallback for unrecognized template identifiers.
	WireTemplateClassic = "CLASSIC"
	WireTemplateModern  = "MODERN"
)

// musicWireMapping maps every known track onto a wire enumeration member.
var musicWireMapping = map[string]string{
	MusicYorYor: WireMusicTraditional,
	MusicLazgi:  WireMusicTraditional,
	MusicModern: WireMusicModern,
}

// templateWireMapping maps every catalog template identifier onto a
// wire enumeration member.
var templateWireMapping = map[string]string{
	"classic_royale":  WireTemplateClassic,
	"golden_ornament": WireTemplateClassic,
	"floral_breeze":   WireTemplateModern,
	"midnight_pearl":  WireTemplateModern,
}

// NormalizeMusic maps a track identifier onto its wire enumeration
// member. The mapping is total: anything unrecognized, including the
// empty string, maps to the first member.
func NormalizeMusic(track string) string {
	if wire, ok := musicWireMapping[track]; ok {
		return wire
	}
	return WireMusicTraditional
}

// NormalizeTemplate maps a template identifier onto its wire
// enumeration member. The mapping is total: anything unrecognized,
// including the empty string, maps to the first member.
func NormalizeTemplate(id string) string {
	if wire, ok := templateWireMapping[id]; ok {
		return wire
	}
	return WireTemplateClassic
}

// MusicFromWire converts a wire enumeration member back to a track
// identifier, defaulting to the default track.
func MusicFromWire(wire string) string {
	if wire == WireMusicModern {
		return MusicModern
	}
	return MusicYorYor
}

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	combinedLayout = "2006-01-02T15:04:05Z"
)

// CombineDateTime composes separate date ("2006-01-02") and time
// ("15:04") fields into the combined UTC timestamp stored at rest.
// An empty time defaults to midnight; an unparseable date is returned
// unchanged so the caller can surface it.
func CombineDateTime(date, clock string) string {
	if date == "" {
		return ""
	}
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.ParseInLocation(dateLayout+"T"+timeLayout, date+"T"+clock, time.UTC)
	if err != nil {
		return date
	}
	return t.UTC().Format(combinedLayout)
}

// SplitDateTime decomposes a combined timestamp back into separate
// date and time fields. A bare date without a 'T' separator yields an
// empty time. The round-trip with CombineDateTime is lossless at
// minute resolution for non-empty times; an empty time is stored as
// midnight and comes back as "00:00".
func SplitDateTime(ts string) (date, clock string) {
	if ts == "" {
		return "", ""
	}
	idx := strings.IndexByte(ts, 'T')
	if idx < 0 {
		return ts, ""
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.UTC().Format(dateLayout), t.UTC().Format(timeLayout)
	}
	// Not RFC3339 but carries a time component; split textually.
	date = ts[:idx]
	rest := ts[idx+1:]
	if len(rest) >= 5 {
		clock = rest[:5]
	}
	return date, clock
}
