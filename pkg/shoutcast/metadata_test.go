package shoutcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMetadata(t *testing.T) {
	cases := []struct {
		name          string
		block         string
		expectedTitle string
		expectedURL   string
	}{
		{
			name:          "title and url",
			block:         "StreamTitle='Aphex Twin - Xtal';StreamUrl='http://example.org';",
			expectedTitle: "Aphex Twin - Xtal",
			expectedURL:   "http://example.org",
		},
		{
			name:          "title only with nul padding",
			block:         "StreamTitle='Song X';\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00",
			expectedTitle: "Song X",
		},
		{
			name:          "apostrophe inside title",
			block:         "StreamTitle='Don't Stop Me Now';",
			expectedTitle: "Don't Stop Me Now",
		},
		{
			name:          "unterminated value",
			block:         "StreamTitle='Cut Off",
			expectedTitle: "Cut Off",
		},
		{
			name:  "empty block",
			block: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMetadata([]byte(tc.block))
			assert.Equal(t, tc.expectedTitle, m.StreamTitle)
			assert.Equal(t, tc.expectedURL, m.StreamURL)
		})
	}
}

func TestMetadataFieldPresence(t *testing.T) {
	m := NewMetadata([]byte("StreamTitle='';"))

	v, ok := m.Field("StreamTitle")
	assert.True(t, ok, "empty value is still present")
	assert.Equal(t, "", v)

	_, ok = m.Field("StreamUrl")
	assert.False(t, ok)
}

func TestMetadataInvalidUTF8(t *testing.T) {
	block := append([]byte("StreamTitle='Caf"), 0xFF, 0xFE)
	block = append(block, []byte("';")...)

	m := NewMetadata(block)
	assert.Equal(t, "Caf", m.StreamTitle)
}

func TestMetadataEquals(t *testing.T) {
	a := NewMetadata([]byte("StreamTitle='one';"))
	b := NewMetadata([]byte("StreamTitle='one';StreamUrl='x';"))
	c := NewMetadata([]byte("StreamTitle='two';"))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}
