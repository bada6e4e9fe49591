package stations

import (
	"strings"
	"unicode/utf8"
)

// UnknownCountry is the sentinel stored for malformed country codes.
const UnknownCountry = "UN"

// CountryCodeStatus reports what NormalizeCountryCode made of its input. The
// upstream directory leaves the field empty often enough that "absent" has to
// stay distinguishable from "present but malformed".
type CountryCodeStatus int

const (
	// CountryAbsent means no code was supplied at all.
	CountryAbsent CountryCodeStatus = iota
	// CountryUnknown means a code was supplied but is not 2 characters.
	CountryUnknown
	// CountryPresent means the code was accepted as-is.
	CountryPresent
)

// NormalizeCountryCode validates a candidate 2-letter country code. A code
// whose trimmed form is exactly 2 characters is accepted unchanged; no
// alphabetic or case validation happens here. Anything else non-empty maps to
// the UnknownCountry sentinel. Empty input reports CountryAbsent with no code;
// callers that require a code must reject absent records themselves.
func NormalizeCountryCode(raw string) (string, CountryCodeStatus) {
	if raw == "" {
		return "", CountryAbsent
	}
	if utf8.RuneCountInString(strings.TrimSpace(raw)) == 2 {
		return raw, CountryPresent
	}
	return UnknownCountry, CountryUnknown
}
