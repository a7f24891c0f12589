// Package trailer extracts canonical video identifiers from the URL shapes
// users paste into the admin form.
package trailer

import "regexp"

// idLen is the length of a canonical video identifier.
const idLen = 11

// Patterns are tried in order; the first 11-character capture wins.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([^&\n?#]+)`),
	regexp.MustCompile(`v=([^&\n?#]+)`),
	regexp.MustCompile(`/([a-zA-Z0-9_-]{11})(?:[?#&]|$)`),
}

// ExtractID resolves a raw user-supplied URL to a canonical video id.
// Unrecognized input is returned unchanged so callers can decide whether
// it is already canonical or invalid. ExtractID is idempotent: applying
// it to its own output yields the same value.
func ExtractID(raw string) string {
	if raw == "" {
		return raw
	}
	for _, p := range patterns {
		if m := p.FindStringSubmatch(raw); m != nil && len(m[1]) == idLen {
			return m[1]
		}
	}
	return raw
}
