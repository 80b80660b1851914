package warcscan

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// WarcHeader is the typed bag of fields recognized out of a WARC 1.1
// header block (spec's HeaderParser, WARC grammar).
type WarcHeader struct {
	ContentLength int64
	PayloadDigest string
	Date          string
	TargetURI     string
	Type          string // "response", "revisit", "resource", "metadata", or "" if absent/unrecognized
	IsHTTP        bool
}

// HTTPHeader is the typed bag of fields recognized out of an embedded
// HTTP/1.x header block (spec's HeaderParser, HTTP grammar).
type HTTPHeader struct {
	MimeType string
}

// ReadHeaderBlock reads lines (terminator "\r\n") from r until the first
// empty line — a line whose only bytes are "\r\n" — and returns the block
// including that terminator line. It is used both for the WARC header
// block and, when present, the embedded HTTP header block.
func ReadHeaderBlock(r *bufio.Reader) ([]byte, error) {
	var block []byte
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			return nil, err
		}
		block = append(block, line...)
		if isBlankLine(line) {
			break
		}
	}
	return block, nil
}

// isBlankLine reports whether line is exactly the CRLF terminator.
func isBlankLine(line []byte) bool {
	return bytes.Equal(line, []byte("\r\n"))
}

// ParseWarc parses a WARC header block (marker line "WARC/1.1") into a
// WarcHeader. The marker line is skipped; each remaining non-empty line is
// split at the first colon, with the key lowercased and the value trimmed.
func ParseWarc(block []byte) (WarcHeader, error) {
	var h WarcHeader

	lines := splitHeaderLines(block)
	for _, line := range lines {
		key, value, ok := splitHeaderLine(line)
		if !ok {
			return WarcHeader{}, ErrMalformedHeaderLine
		}

		switch strings.ToLower(key) {
		case "content-length":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil || n < 0 {
				return WarcHeader{}, ErrMalformedHeaderLine
			}
			h.ContentLength = n
		case "warc-payload-digest":
			h.PayloadDigest = value
		case "warc-date":
			h.Date = value
		case "warc-target-uri":
			h.TargetURI = value
		case "warc-type":
			switch value {
			case "response", "revisit", "resource", "metadata":
				h.Type = value
			default:
				h.Type = ""
			}
		case "content-type":
			h.IsHTTP = len(value) >= 16 && value[:16] == "application/http"
		}
	}

	return h, nil
}

// ParseHTTP parses an embedded HTTP/1.x header block into an HTTPHeader.
// The status line itself is handled by the scanner (§4.2); this only
// extracts the recognized HTTP header fields.
func ParseHTTP(block []byte) (HTTPHeader, error) {
	var h HTTPHeader

	lines := splitHeaderLines(block)
	for _, line := range lines {
		key, value, ok := splitHeaderLine(line)
		if !ok {
			return HTTPHeader{}, ErrMalformedHeaderLine
		}
		if strings.ToLower(key) == "content-type" {
			h.MimeType = value
		}
	}

	return h, nil
}

// splitHeaderLines returns the non-marker, non-blank lines of a header
// block as raw "key: value" text, with the CRLF stripped.
func splitHeaderLines(block []byte) []string {
	raw := strings.Split(string(block), "\r\n")
	if len(raw) == 0 {
		return nil
	}
	// raw[0] is the marker line ("WARC/1.1" or "HTTP/1.x ..."); the final
	// elements are the blank terminator line and a trailing empty string
	// from the split.
	var lines []string
	for _, l := range raw[1:] {
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// splitHeaderLine splits a header line at the first colon, lowercasing
// nothing (callers lowercase the key themselves where it matters) and
// trimming surrounding whitespace from the value.
func splitHeaderLine(line string) (key, value string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return line[:i], strings.TrimSpace(line[i+1:]), true
}
