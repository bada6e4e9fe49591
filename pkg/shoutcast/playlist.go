package shoutcast

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// parsePLS parses a PLS playlist file and returns the first stream URL
func parsePLS(body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read playlist: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "File") && strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				if url := strings.TrimSpace(parts[1]); url != "" {
					return url, nil
				}
			}
		}
	}

	return "", fmt.Errorf("no stream URL found in PLS playlist")
}

// parseM3U parses an M3U playlist file and returns the first stream URL
func parseM3U(body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read playlist: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			return line, nil
		}
	}

	return "", fmt.Errorf("no stream URL found in M3U playlist")
}

func looksLikePLS(url string) bool {
	return strings.HasSuffix(url, ".pls")
}

func looksLikeM3U(url string) bool {
	return strings.HasSuffix(url, ".m3u") || strings.HasSuffix(url, ".m3u8")
}

// resolvePlaylistURL resolves a playlist URL to the stream URL it points at.
// URLs that do not look like playlists are returned unchanged without a
// network round trip; directory records usually carry the resolved stream URL
// already.
func resolvePlaylistURL(ctx context.Context, url string) (string, error) {
	if !looksLikePLS(url) && !looksLikeM3U(url) {
		return url, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("accept", "*/*")
	req.Header.Add("user-agent", "iTunes/12.9.2 (Macintosh; OS X 10.14.3) AppleWebKit/606.4.5")

	dialer := &net.Dialer{Timeout: 5 * time.Second}
	transport := &http.Transport{Dial: dialer.Dial}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch playlist: %w", err)
	}
	defer resp.Body.Close()

	// Some servers serve the stream itself from a playlist-looking URL.
	if resp.Header.Get("icy-metaint") != "" {
		return url, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read playlist body: %w", err)
	}
	content := string(body)

	contentType := resp.Header.Get("Content-Type")
	isPLS := looksLikePLS(url) ||
		strings.Contains(contentType, "audio/x-scpls") ||
		strings.Contains(contentType, "application/pls+xml") ||
		strings.Contains(content, "[playlist]")

	if isPLS {
		streamURL, err := parsePLS(strings.NewReader(content))
		if err != nil {
			return "", fmt.Errorf("failed to parse PLS playlist: %w", err)
		}
		return streamURL, nil
	}

	streamURL, err := parseM3U(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse M3U playlist: %w", err)
	}
	return streamURL, nil
}
