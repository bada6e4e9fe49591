package stations

import (
	"regexp"
	"strings"
)

// FallbackName is returned for records that arrive with no name at all.
const FallbackName = "Unknown Station"

var (
	bracketsRe   = regexp.MustCompile(`(\[[^\]]*\]|\([^)]*\))`)
	separatorsRe = regexp.MustCompile(`\s*(?:-|–|—|\||·|:|;)\s*`)
	spacesRe     = regexp.MustCompile(`\s+`)
)

// genericWords are filler tokens directories pad names with. They carry no
// identity and are stripped from display names.
var genericWords = map[string]struct{}{
	"radio":   {},
	"fm":      {},
	"@fm":     {},
	"am":      {},
	"live":    {},
	"online":  {},
	"station": {},
	"the":     {},
	"hd":      {},
}

// CleanName derives a display name from a raw directory station name.
//
// Bracketed and parenthesized noise is removed, the name is cut at the first
// separator (directories put the canonical name before qualifiers like bitrate
// or slogan), and generic filler words are dropped. The result is never empty:
// a name made up entirely of filler keeps its original tokens, and if nothing
// at all survives the raw input is returned as-is.
func CleanName(raw string) string {
	if raw == "" {
		return FallbackName
	}

	stripped := strings.TrimSpace(bracketsRe.ReplaceAllString(raw, ""))

	var parts []string
	for _, p := range separatorsRe.Split(stripped, -1) {
		if t := strings.TrimSpace(p); t != "" {
			parts = append(parts, t)
		}
	}

	if len(parts) > 0 {
		return dropGenericWords(parts[0])
	}

	if cleaned := dropGenericWords(stripped); cleaned != "" {
		return cleaned
	}

	return raw
}

func dropGenericWords(name string) string {
	tokens := strings.Fields(name)

	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, generic := genericWords[strings.ToLower(t)]; !generic {
			kept = append(kept, t)
		}
	}

	// All tokens were generic; keep the name rather than erase it.
	if len(kept) == 0 {
		kept = []string{name}
	}

	return strings.TrimSpace(spacesRe.ReplaceAllString(strings.Join(kept, " "), " "))
}
