package stations

import "strings"

// UnknownGenre is emitted when no synonym matches the corpus.
const UnknownGenre = "Unknown"

// genreSynonyms maps each canonical genre to the phrases that imply it.
// Declaration order matters: it is the order genres appear in classifier
// output when more than one matches.
var genreSynonyms = []struct {
	canonical string
	variants  []string
}{
	{"pop", []string{"pop", "top40", "top 40", "hits", "chart"}},
	{"rock", []string{"rock", "alt rock", "alternative", "indie rock", "classic rock", "hard rock"}},
	{"metal", []string{"metal", "heavy metal", "death metal", "black metal", "power metal"}},
	{"house", []string{"house", "deep house", "tech house", "progressive house"}},
	{"techno", []string{"techno", "minimal techno", "detroit techno"}},
	{"trance", []string{"trance", "uplifting trance", "progressive trance"}},
	{"edm", []string{"edm", "electronic dance", "dance"}},
	{"hip hop", []string{"hiphop", "hip hop", "rap", "trap"}},
	{"rnb", []string{"rnb", "r&b", "rhythm and blues"}},
	{"jazz", []string{"jazz", "smooth jazz", "bebop", "swing"}},
	{"blues", []string{"blues", "delta blues"}},
	{"classical", []string{"classical", "symphony", "orchestra", "baroque", "romantic era"}},
	{"country", []string{"country", "bluegrass", "americana"}},
	{"reggae", []string{"reggae", "dancehall", "dub"}},
	{"latin", []string{"latin", "salsa", "bachata", "merengue", "reggaeton", "cumbia"}},
	{"k-pop", []string{"k-pop", "kpop"}},
	{"j-pop", []string{"j-pop", "jpop"}},
	{"punk", []string{"punk", "punk rock"}},
	{"alternative", []string{"alternative", "alt", "alt-pop", "alt rock"}},
	{"indie", []string{"indie", "indie pop", "indie rock"}},
	{"ambient", []string{"ambient", "chillout", "downtempo"}},
	{"lofi", []string{"lofi", "lo-fi", "lo fi"}},
	{"disco", []string{"disco"}},
	{"funk", []string{"funk", "boogie"}},
	{"soul", []string{"soul", "motown", "northern soul"}},
	{"gospel", []string{"gospel", "christian", "worship"}},
	{"news", []string{"news", "headline", "bulletin"}},
	{"talk", []string{"talk", "talkshow", "talk show"}},
	{"sports", []string{"sports", "sport", "football", "soccer", "baseball", "basketball"}},
	{"electronic", []string{"electronic", "electronica", "idm"}},
	{"drum and bass", []string{"drum and bass", "dnb", "drum & bass"}},
	{"dubstep", []string{"dubstep"}},
	{"afrobeat", []string{"afrobeat", "afrobeats", "afro beats"}},
	{"arabic", []string{"arabic", "tarab"}},
	{"bollywood", []string{"bollywood", "hindi", "desi"}},
	{"bhangra", []string{"bhangra"}},
	{"folk", []string{"folk", "celtic"}},
	{"acoustic", []string{"acoustic", "singer-songwriter"}},
	{"instrumental", []string{"instrumental"}},
	{"soundtrack", []string{"soundtrack", "ost", "film score"}},
	{"oldies", []string{"oldies", "retro", "gold"}},
	{"80s", []string{"80s", "80's"}},
	{"90s", []string{"90s", "90's"}},
	{"00s", []string{"00s", "2000s"}},
	{"world", []string{"world", "world music", "global"}},
	{"chill", []string{"chill", "chillout", "chill out"}},
}

type synonymEntry struct {
	canonical string
	variant   string
}

// GenreIndex is the flattened synonym table used for classification. Build it
// once at startup and share it freely; it is immutable after construction.
type GenreIndex struct {
	canonical []string
	entries   []synonymEntry
}

// NewGenreIndex flattens the synonym table, preserving declaration order.
func NewGenreIndex() *GenreIndex {
	ix := &GenreIndex{
		canonical: make([]string, 0, len(genreSynonyms)),
		entries:   make([]synonymEntry, 0, len(genreSynonyms)*3),
	}

	for _, g := range genreSynonyms {
		ix.canonical = append(ix.canonical, g.canonical)
		for _, v := range g.variants {
			ix.entries = append(ix.entries, synonymEntry{canonical: g.canonical, variant: strings.ToLower(v)})
		}
	}

	return ix
}

// Classify scans the corpus for synonym occurrences and returns the matching
// canonical genres in table order, comma joined, or UnknownGenre when nothing
// matches. Matching is plain substring search; a variant occurring inside a
// longer word still counts.
func (ix *GenreIndex) Classify(corpus string) string {
	if corpus == "" {
		return UnknownGenre
	}

	haystack := strings.ToLower(corpus)

	matched := make(map[string]struct{})
	for _, e := range ix.entries {
		if strings.Contains(haystack, e.variant) {
			matched[e.canonical] = struct{}{}
		}
	}

	if len(matched) == 0 {
		return UnknownGenre
	}

	ordered := make([]string, 0, len(matched))
	for _, c := range ix.canonical {
		if _, ok := matched[c]; ok {
			ordered = append(ordered, c)
		}
	}

	return strings.Join(ordered, ", ")
}
