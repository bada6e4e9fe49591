package shoutcast

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// icyBlock builds one inline metadata block: metaint audio bytes, the length
// byte, and the NUL-padded payload.
func icyBlock(t *testing.T, metaint int, payload string) []byte {
	t.Helper()

	padded := len(payload)
	if rem := padded % 16; rem != 0 {
		padded += 16 - rem
	}
	require.LessOrEqual(t, padded/16, 255)

	buf := bytes.Repeat([]byte{0xAA}, metaint)
	buf = append(buf, byte(padded/16))
	buf = append(buf, payload...)
	buf = append(buf, bytes.Repeat([]byte{0x00}, padded-len(payload))...)
	return buf
}

func TestReadTitle(t *testing.T) {
	stream := icyBlock(t, 3, "StreamTitle='Song X';")

	title, err := ReadTitle(bytes.NewReader(stream), 3)
	require.NoError(t, err)
	assert.Equal(t, "Song X", title)
}

func TestReadTitleNoMetadata(t *testing.T) {
	// metaint 0 reports ErrNoMetadata without touching the reader.
	r := bytes.NewReader([]byte{0xAA, 0xBB})

	_, err := ReadTitle(r, 0)
	assert.ErrorIs(t, err, ErrNoMetadata)
	assert.Equal(t, 2, r.Len(), "reader must not be consumed")
}

func TestReadTitleEmptyBlock(t *testing.T) {
	// Length byte 0 means the metadata did not change since the last block.
	stream := append(bytes.Repeat([]byte{0xAA}, 5), 0x00)

	_, err := ReadTitle(bytes.NewReader(stream), 5)
	assert.ErrorIs(t, err, ErrNoTitle)
}

func TestReadTitleNoStreamTitleField(t *testing.T) {
	stream := icyBlock(t, 4, "StreamUrl='http://example.org';")

	_, err := ReadTitle(bytes.NewReader(stream), 4)
	assert.ErrorIs(t, err, ErrNoTitle)
}

func TestReadTitleEmptyTitle(t *testing.T) {
	stream := icyBlock(t, 4, "StreamTitle='';")

	title, err := ReadTitle(bytes.NewReader(stream), 4)
	require.NoError(t, err)
	assert.Equal(t, UnknownTitle, title)
}

func TestReadTitleShortAudio(t *testing.T) {
	// Stream ends before metaint audio bytes arrive.
	_, err := ReadTitle(bytes.NewReader([]byte{0xAA}), 16)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoTitle)
}

func TestReadTitleShortBlock(t *testing.T) {
	// Length byte promises 16 bytes but the stream ends early.
	stream := append(bytes.Repeat([]byte{0xAA}, 2), 0x01, 'S', 't')

	_, err := ReadTitle(bytes.NewReader(stream), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadata block")
}

func TestOpen(t *testing.T) {
	payload := icyBlock(t, 8, "StreamTitle='Nightdrive';")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.Header.Get("icy-metadata"))
		w.Header().Set("icy-metaint", "8")
		w.Header().Set("icy-name", "Test Server")
		w.Header().Set("icy-genre", "electronic")
		w.Header().Set("icy-br", "128")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	s, err := Open(context.Background(), srv.URL)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 8, s.MetaInterval)
	assert.Equal(t, "Test Server", s.Name)
	assert.Equal(t, "electronic", s.Genre)
	assert.Equal(t, 128, s.Bitrate)

	title, err := s.ReadTitle()
	require.NoError(t, err)
	assert.Equal(t, "Nightdrive", title)
}

func TestOpenWithoutMetadataSupport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte{0xAA}, 32))
	}))
	defer srv.Close()

	s, err := Open(context.Background(), srv.URL)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 0, s.MetaInterval)

	_, err = s.ReadTitle()
	assert.ErrorIs(t, err, ErrNoMetadata)
}
