package shoutcast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"
)

// UnknownTitle is returned when a metadata block carries an empty StreamTitle.
const UnknownTitle = "Unknown song"

var (
	// ErrNoMetadata means the server did not advertise an icy-metaint and the
	// stream carries no inline metadata at all.
	ErrNoMetadata = errors.New("no icy metadata in this stream")

	// ErrNoTitle means a metadata block was read but contained no StreamTitle
	// field, or the server sent an empty block (no change since last block).
	ErrNoTitle = errors.New("no title found")
)

// Stream is an open ICY stream session with inline metadata negotiated.
type Stream struct {
	// The name of the server
	Name string

	// What category the server falls under
	Genre string

	// The description of the stream
	Description string

	// Homepage of the server
	URL string

	// Bitrate of the server
	Bitrate int

	// MetaInterval is the number of audio bytes between metadata blocks.
	// Zero means the server does not support inline metadata.
	MetaInterval int

	// The underlying data stream
	rc io.ReadCloser
}

// Open establishes a connection to a remote server and negotiates inline
// metadata. Playlist URLs (.pls, .m3u) are resolved to the stream URL first.
// The context bounds the whole session including body reads, so callers
// should pass a deadline when they only want a single metadata block.
func Open(ctx context.Context, url string) (*Stream, error) {
	resolvedURL, err := resolvePlaylistURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve playlist URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolvedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("accept", "*/*")
	req.Header.Add("user-agent", "iTunes/12.9.2 (Macintosh; OS X 10.14.3) AppleWebKit/606.4.5")
	req.Header.Add("icy-metadata", "1")

	// Timeout for establishing the connection. Reads from the body are
	// bounded by the request context, not the client.
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	transport := &http.Transport{
		Dial:                  dialer.Dial,
		ResponseHeaderTimeout: 10 * time.Second,
	}
	client := &http.Client{Transport: transport}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	var bitrate int
	if rawBitrate := resp.Header.Get("icy-br"); rawBitrate != "" {
		if bitrate, err = strconv.Atoi(rawBitrate); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("cannot parse bitrate: %v", err)
		}
	}

	// An absent icy-metaint is not an error at this point; ReadTitle reports
	// ErrNoMetadata for such streams.
	var metaint int
	if rawMetaint := resp.Header.Get("icy-metaint"); rawMetaint != "" {
		if metaint, err = strconv.Atoi(rawMetaint); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("cannot parse metaint: %v", err)
		}
	}

	s := &Stream{
		Name:         resp.Header.Get("icy-name"),
		Genre:        resp.Header.Get("icy-genre"),
		Description:  resp.Header.Get("icy-description"),
		URL:          resp.Header.Get("icy-url"),
		Bitrate:      bitrate,
		MetaInterval: metaint,
		rc:           resp.Body,
	}

	return s, nil
}

// ReadTitle reads up to the next inline metadata block and extracts the
// currently playing title.
//
// It discards exactly MetaInterval audio bytes, reads the one-byte length
// indicator (value x 16 is the block size), reads the block, and parses the
// StreamTitle field. An empty block or a block without StreamTitle yields
// ErrNoTitle; an empty title yields UnknownTitle. Short reads and transport
// failures are returned as wrapped errors.
func (s *Stream) ReadTitle() (string, error) {
	title, err := ReadTitle(s.rc, s.MetaInterval)
	if err != nil {
		return "", err
	}
	return title, nil
}

// ReadTitle extracts the next StreamTitle from r, where metaint audio bytes
// precede each metadata block. It operates on exactly one block; the reader
// is left positioned at the first audio byte after it.
func ReadTitle(r io.Reader, metaint int) (string, error) {
	if metaint <= 0 {
		return "", ErrNoMetadata
	}

	if _, err := io.CopyN(io.Discard, r, int64(metaint)); err != nil {
		return "", fmt.Errorf("discarding audio block: %w", err)
	}

	var lengthByte [1]byte
	if _, err := io.ReadFull(r, lengthByte[:]); err != nil {
		return "", fmt.Errorf("reading metadata length: %w", err)
	}

	blockLen := int(lengthByte[0]) * 16
	if blockLen == 0 {
		// Metadata unchanged since the last block.
		return "", ErrNoTitle
	}

	block := make([]byte, blockLen)
	if _, err := io.ReadFull(r, block); err != nil {
		return "", fmt.Errorf("reading metadata block: %w", err)
	}

	m := NewMetadata(block)
	title, ok := m.Field("StreamTitle")
	if !ok {
		return "", ErrNoTitle
	}
	if title == "" {
		return UnknownTitle, nil
	}

	return title, nil
}

// Close closes the stream.
func (s *Stream) Close() error {
	return s.rc.Close()
}
