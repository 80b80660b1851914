package indexer

import (
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/archivebox/waczindex/internal/frame"
	"github.com/archivebox/waczindex/internal/warcscan"
)

// IndexFile opens path, frames it (gzip or plain, decided by the
// case-sensitive ".gz" extension), scans every record inside each frame,
// and returns the retained subsequence in file order.
func IndexFile(path string) ([]IndexRecord, error) {
	isGzip := strings.HasSuffix(path, ".gz")

	fr, err := frame.Open(path, isGzip)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "open %s: %v", path, err)
	}
	defer fr.Close()

	fileName := filepath.Base(path)

	var records []IndexRecord
	for {
		fm, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, frame.ErrFrameDecode) {
				return nil, err
			}
			return nil, errors.Wrapf(ErrIO, "read %s: %v", path, err)
		}

		if isGzip {
			rec, recordLen, err := warcscan.Next(fm.Decoded, 0)
			if err != nil {
				return nil, err
			}
			if recordLen != len(fm.Decoded) {
				return nil, errors.Wrapf(warcscan.ErrMalformedRecord, "gzip member at offset %d holds more than one WARC record", fm.Start)
			}
			ir, keep, err := buildRecord(rec, fm.Start, fm.RawLen, fileName)
			if err != nil {
				return nil, err
			}
			if keep {
				records = append(records, ir)
			}
			continue
		}

		cursor := 0
		for cursor < len(fm.Decoded) {
			rec, recordLen, err := warcscan.Next(fm.Decoded, cursor)
			if err != nil {
				return nil, err
			}
			if cursor+recordLen > len(fm.Decoded) {
				return nil, errors.Wrap(warcscan.ErrMalformedRecord, "record runs past end of file without terminator")
			}

			ir, keep, err := buildRecord(rec, int64(cursor), int64(recordLen), fileName)
			if err != nil {
				return nil, err
			}
			if keep {
				records = append(records, ir)
			}

			cursor += recordLen
		}
	}

	return records, nil
}

// buildRecord turns one scanned warcscan.Record into an IndexRecord and
// applies the §4.5 retained-record filter. Records failing the filter are
// returned with keep=false and are never validated further — they are
// dropped regardless of whether their url/timestamp would parse.
func buildRecord(rec warcscan.Record, offset, length int64, fileName string) (IndexRecord, bool, error) {
	ir := IndexRecord{
		Offset:         offset,
		Length:         length,
		FileName:       fileName,
		RecordType:     rec.Warc.Type,
		URL:            rec.Warc.TargetURI,
		Timestamp:      rec.Warc.Date,
		Digest:         rec.Warc.PayloadDigest,
		ContentLength:  rec.Warc.ContentLength,
		IsHTTP:         rec.Warc.IsHTTP,
		HTTPStatusCode: rec.StatusCode,
		MimeType:       rec.HTTP.MimeType,
	}
	ir.IsPage = derivedIsPage(ir.MimeType, ir.HTTPStatusCode)

	if ir.RecordType == "" || ir.MimeType == "" || ir.HTTPStatusCode == 0 {
		return IndexRecord{}, false, nil
	}

	t, err := time.Parse(time.RFC3339, ir.Timestamp)
	if err != nil {
		return IndexRecord{}, false, errors.Wrapf(ErrBadTimestamp, "record at offset %d: %v", offset, err)
	}
	ir.Timestamp = t.UTC().Format(time.RFC3339)

	u, err := url.Parse(ir.URL)
	if err != nil {
		return IndexRecord{}, false, errors.Wrapf(ErrBadURL, "record at offset %d: %v", offset, err)
	}
	// A urn: target is a deliberate carve-out (spec's Open Questions): it
	// is excluded from the retained sequence silently, not as a BadUrl
	// error, so it never reaches CDXJ or pages.
	if u.Scheme == "urn" {
		return IndexRecord{}, false, nil
	}
	if u.Host == "" {
		return IndexRecord{}, false, errors.Wrapf(ErrBadURL, "record at offset %d: %q has no host", offset, ir.URL)
	}

	return ir, true, nil
}
