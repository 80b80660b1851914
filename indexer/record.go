// Package indexer is the public API of the WARC indexing core: it
// assembles GzipFramer, RecordScanner, HeaderParser, and SurtEncoder into
// the driver described by the system's dependency graph, and exposes the
// three operations the packaging layer depends on — IndexFile, CDXJ, and
// Pages.
package indexer

// IndexRecord is one emitted row per WARC record retained by the filter.
// It is immutable once built.
type IndexRecord struct {
	Offset          int64
	Length          int64
	FileName        string
	RecordType      string // "response", "revisit", "resource", "metadata", or "" if absent
	URL             string
	Timestamp       string // RFC-3339
	Digest          string
	ContentLength   int64
	IsHTTP          bool
	HTTPStatusCode  int
	MimeType        string
	IsPage          bool
}

var pageMimeTypes = map[string]bool{
	"text/html":             true,
	"application/xhtml+xml": true,
	"text/plain":            true,
}

// derivedIsPage implements the §3 derivation: mime_type is one of the page
// media types and the HTTP status is a 2xx success.
func derivedIsPage(mimeType string, status int) bool {
	return pageMimeTypes[mimeType] && status >= 200 && status <= 299
}
