// Package cdx implements the CdxjWriter: it projects a sequence of
// retained records into the line-oriented CDXJ index format.
package cdx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/archivebox/waczindex/internal/surt"
)

// Record is the subset of an indexed WARC record the CDXJ line needs.
// Timestamp is expected in RFC-3339, UTC-normalized form.
type Record struct {
	URL        string
	Timestamp  string
	Digest     string
	MimeType   string
	Offset     int64
	Length     int64
	StatusCode int
	FileName   string
}

// line is the JSON body of a CDXJ record. Field order here is field
// declaration order, which encoding/json preserves on Marshal — this is
// what makes the output byte-exact without hand-rolled field emission.
// The field set and order (url, digest, mime, offset, length, status,
// filename) is this format's own lineage of the legacy space-delimited
// CDX fields (a, g/u, m, e/o, -, s, a again) it descends from; CDXJ
// replaces that positional list with a JSON object but keeps the same
// field set.
type line struct {
	URL      string `json:"url"`
	Digest   string `json:"digest"`
	Mime     string `json:"mime"`
	Offset   int64  `json:"offset"`
	Length   int64  `json:"length"`
	Status   int    `json:"status"`
	Filename string `json:"filename"`
}

// marshalLine renders l as compact JSON with HTML-escaping disabled.
// encoding/json's default Marshal rewrites &, <, > to their \uXXXX
// escapes, which would corrupt any archived URL's query string against
// the reference fixture; a bare Encoder with SetEscapeHTML(false) writes
// the same bytes the original Rust implementation does.
func marshalLine(l line) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(l); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write renders records as a CDXJ document: one line per record,
// `{surt} {timestamp14} {json}`, LF-terminated except for the last line.
// Records whose URL has no SURT key (urn: and anything not http/https)
// are silently omitted. The indexer already drops urn: targets, so for
// records from indexer.IndexFile this skips only URLs that have a host
// but a scheme other than http or https.
func Write(records []Record) (string, error) {
	var b strings.Builder
	first := true
	for _, r := range records {
		key, ok := surt.Encode(r.URL)
		if !ok {
			continue
		}

		ts14, err := timestamp14(r.Timestamp)
		if err != nil {
			return "", err
		}

		body, err := marshalLine(line{
			URL:      r.URL,
			Digest:   r.Digest,
			Mime:     r.MimeType,
			Offset:   r.Offset,
			Length:   r.Length,
			Status:   r.StatusCode,
			Filename: r.FileName,
		})
		if err != nil {
			return "", err
		}

		if !first {
			b.WriteByte('\n')
		}
		first = false

		b.WriteString(key)
		b.WriteByte(' ')
		b.WriteString(ts14)
		b.WriteByte(' ')
		b.Write(body)
	}
	return b.String(), nil
}

// timestamp14 renders an RFC-3339 instant as the 14-digit YYYYMMDDhhmmss
// CDXJ timestamp, in UTC.
func timestamp14(rfc3339 string) (string, error) {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return "", err
	}
	t = t.UTC()
	return fmt.Sprintf("%04d%02d%02d%02d%02d%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second()), nil
}
