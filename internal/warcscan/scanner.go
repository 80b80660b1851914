// Package warcscan implements the RecordScanner, HeaderParser, and the
// header-level half of the IndexRecordBuilder: given the decompressed
// bytes of a frame (or the whole plain-WARC file) and a cursor into it, it
// locates one WARC record, its payload, and — for HTTP-bearing response
// and revisit records — the embedded HTTP header block.
package warcscan

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// terminatorLen is the two mandatory CRLF sequences that close a WARC
// record in a plain (non-gzip) WARC file.
const terminatorLen = 4

const warcMagic = "WARC/1.1"

// Record is everything the scanner + header parser recover from one WARC
// record: its headers, its embedded HTTP headers (if any), and enough
// bookkeeping for the caller to advance a plain-WARC cursor.
type Record struct {
	Warc       WarcHeader
	HTTP       HTTPHeader
	HasHTTP    bool
	StatusCode int

	// HeaderLen is the byte length of the WARC header block, including
	// its terminator line.
	HeaderLen int
}

// Next scans one WARC record out of data starting at cursor. It returns
// the parsed record and recordLen, the number of bytes the record (header
// + declared payload + trailing terminator) occupies starting at cursor —
// the value a plain-WARC caller adds to cursor to reach the next record.
// Gzip-framed callers, where one frame is exactly one record, take the
// record's offset and length from the frame's own physical bounds and use
// recordLen only to check that the frame holds nothing past that record.
//
// Next returns io.EOF when cursor is at the end of data.
func Next(data []byte, cursor int) (rec Record, recordLen int, err error) {
	if cursor >= len(data) {
		return Record{}, 0, io.EOF
	}

	remaining := data[cursor:]
	if !bytes.HasPrefix(remaining, []byte(warcMagic)) {
		return Record{}, 0, errors.Wrapf(ErrMalformedRecord, "record at offset %d does not start with %s", cursor, warcMagic)
	}

	br := bufio.NewReader(bytes.NewReader(remaining))
	headerBlock, err := ReadHeaderBlock(br)
	if err != nil {
		return Record{}, 0, errors.Wrap(ErrMalformedRecord, "truncated WARC header block")
	}

	warcHeader, err := ParseWarc(headerBlock)
	if err != nil {
		return Record{}, 0, err
	}

	headerLen := len(headerBlock)
	payloadStart := headerLen
	payloadEnd := payloadStart + int(warcHeader.ContentLength)
	if warcHeader.ContentLength < 0 || payloadEnd > len(remaining) {
		return Record{}, 0, errors.Wrap(ErrMalformedRecord, "declared Content-Length exceeds available data")
	}
	payload := remaining[payloadStart:payloadEnd]

	rec = Record{Warc: warcHeader, HeaderLen: headerLen}

	if warcHeader.IsHTTP && (warcHeader.Type == "response" || warcHeader.Type == "revisit") {
		rec.HasHTTP = true

		pbr := bufio.NewReader(bytes.NewReader(payload))
		httpBlock, err := ReadHeaderBlock(pbr)
		if err != nil {
			return Record{}, 0, errors.Wrap(ErrMalformedRecord, "truncated HTTP header block")
		}

		statusCode, err := parseStatusCode(httpBlock)
		if err != nil {
			return Record{}, 0, err
		}
		rec.StatusCode = statusCode

		httpHeader, err := ParseHTTP(httpBlock)
		if err != nil {
			return Record{}, 0, err
		}
		rec.HTTP = httpHeader
	}

	recordLen = headerLen + int(warcHeader.ContentLength) + terminatorLen
	return rec, recordLen, nil
}

// parseStatusCode extracts the three ASCII decimal digits at bytes [9,12)
// of an HTTP header block — the status code following "HTTP/1.x " — and
// validates it falls in [100, 599].
func parseStatusCode(httpBlock []byte) (int, error) {
	if len(httpBlock) < 12 {
		return 0, errors.Wrap(ErrBadStatusLine, "status line too short")
	}
	code, err := strconv.Atoi(string(httpBlock[9:12]))
	if err != nil {
		return 0, errors.Wrap(ErrBadStatusLine, "status code is not numeric")
	}
	if code < 100 || code > 599 {
		return 0, errors.Wrapf(ErrBadStatusLine, "status code %d out of range", code)
	}
	return code, nil
}
