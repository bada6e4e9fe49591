// Package shoutcast reads ICY/Shoutcast inline metadata from live audio streams.
//
// It negotiates inline metadata with the icy-metadata header, resolves .pls
// and .m3u playlist URLs to the underlying stream URL, and extracts the
// currently playing title from the periodic metadata blocks. Extraction is
// best-effort: a stalled or malformed stream yields a descriptive error,
// never a panic, and every read is bounded by the caller's context.
package shoutcast
