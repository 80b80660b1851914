package indexer

import (
	"github.com/archivebox/waczindex/cdx"
	"github.com/archivebox/waczindex/pages"
)

// CDXJ projects records into the CDXJ index format (§4.7).
func CDXJ(records []IndexRecord) (string, error) {
	rows := make([]cdx.Record, len(records))
	for i, r := range records {
		rows[i] = cdx.Record{
			URL:        r.URL,
			Timestamp:  r.Timestamp,
			Digest:     r.Digest,
			MimeType:   r.MimeType,
			Offset:     r.Offset,
			Length:     r.Length,
			StatusCode: r.HTTPStatusCode,
			FileName:   r.FileName,
		}
	}
	return cdx.Write(rows)
}

// Pages projects records into the pages JSONL format (§4.8).
func Pages(records []IndexRecord) (string, error) {
	rows := make([]pages.Record, len(records))
	for i, r := range records {
		rows[i] = pages.Record{
			URL:       r.URL,
			Timestamp: r.Timestamp,
			IsPage:    r.IsPage,
		}
	}
	return pages.Write(rows)
}
