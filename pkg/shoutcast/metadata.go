package shoutcast

import (
	"bytes"
	"strings"
)

// Metadata is one parsed ICY metadata block. Blocks are key='value'; pairs,
// NUL-padded to a multiple of 16 bytes, e.g.
//
//	StreamTitle='Artist - Song';StreamUrl='http://example.org';\x00...
type Metadata struct {
	// StreamTitle is the currently playing title, usually "Artist - Song".
	StreamTitle string

	// StreamURL is an optional URL associated with the current title.
	StreamURL string

	fields map[string]string
}

// NewMetadata parses a raw metadata block. Trailing NUL padding is stripped
// and invalid UTF-8 is dropped rather than failing the parse; the block comes
// from an untrusted live stream.
func NewMetadata(block []byte) *Metadata {
	text := strings.ToValidUTF8(string(bytes.TrimRight(block, "\x00")), "")

	m := &Metadata{fields: parseFields(text)}
	m.StreamTitle = m.fields["StreamTitle"]
	m.StreamURL = m.fields["StreamUrl"]

	return m
}

// Field returns the raw value of a metadata field and whether the field was
// present in the block. Present-but-empty is distinct from absent.
func (m *Metadata) Field(name string) (string, bool) {
	v, ok := m.fields[name]
	return v, ok
}

// Equals reports whether two metadata blocks carry the same title.
func (m *Metadata) Equals(other *Metadata) bool {
	if other == nil {
		return false
	}
	return m.StreamTitle == other.StreamTitle
}

// parseFields scans key='value' pairs. A value runs from the opening quote to
// the next "';" delimiter (or the end of the block), so apostrophes inside a
// title survive as long as they are not followed by a semicolon.
func parseFields(text string) map[string]string {
	fields := make(map[string]string)

	for len(text) > 0 {
		open := strings.Index(text, "='")
		if open < 0 {
			break
		}

		key := strings.TrimLeft(text[:open], "; ")
		rest := text[open+len("='"):]

		end := strings.Index(rest, "';")
		if end < 0 {
			// Unterminated value; take the remainder, minus a trailing quote.
			fields[key] = strings.TrimSuffix(rest, "'")
			break
		}

		fields[key] = rest[:end]
		text = rest[end+len("';"):]
	}

	return fields
}
