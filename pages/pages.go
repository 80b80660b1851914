// Package pages implements the PagesWriter: it projects the retained
// record sequence into the pages JSONL stream WACZ readers use to build
// a table of contents.
package pages

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Record is the subset of an indexed WARC record a pages line needs.
type Record struct {
	URL       string
	Timestamp string
	IsPage    bool
}

type header struct {
	Format string `json:"format"`
	ID     string `json:"id"`
	Title  string `json:"title"`
}

type entry struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Timestamp string `json:"ts"`
}

// marshalCompact renders v as compact JSON with HTML-escaping disabled,
// matching cdx.marshalLine: encoding/json's default Marshal rewrites &,
// <, > to their \uXXXX escapes, which would corrupt an archived URL's
// query string against the reference fixture.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write renders records as a pages JSONL document: a fixed header line
// followed by one line per page record, in file order. id is the
// zero-based index of the record within the full retained sequence, not
// within the page subset. Trailing newline is trimmed.
func Write(records []Record) (string, error) {
	headerLine, err := marshalCompact(header{
		Format: "json-pages-1.0",
		ID:     "pages",
		Title:  "All Pages",
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Write(headerLine)

	for i, r := range records {
		if !r.IsPage {
			continue
		}
		line, err := marshalCompact(entry{
			ID:        strconv.Itoa(i),
			URL:       r.URL,
			Timestamp: r.Timestamp,
		})
		if err != nil {
			return "", err
		}
		b.WriteByte('\n')
		b.Write(line)
	}

	return b.String(), nil
}
