package warcscan_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivebox/waczindex/internal/warcscan"
)

// record builds a plain-WARC record with an embedded HTTP response,
// computing Content-Length from the payload itself.
func record(warcType, targetURI, date string, httpStatusLine string, httpHeaders, body string) string {
	payload := httpStatusLine + "\r\n" + httpHeaders + "\r\n" + body
	header := fmt.Sprintf(
		"WARC/1.1\r\n"+
			"WARC-Type: %s\r\n"+
			"WARC-Date: %s\r\n"+
			"WARC-Target-URI: %s\r\n"+
			"WARC-Payload-Digest: sha1:0000000000000000000000000000000000000000\r\n"+
			"Content-Type: application/http; msgtype=response\r\n"+
			"Content-Length: %d\r\n"+
			"\r\n",
		warcType, date, targetURI, len(payload),
	)
	return header + payload + "\r\n\r\n"
}

func TestNext_responseRecord(t *testing.T) {
	data := []byte(record(
		"response",
		"https://thehtml.review/04/ascii-bedroom-archive/",
		"2025-08-06T14:37:28+01:00",
		"HTTP/1.1 200 OK",
		"Content-Type: text/html\r\n",
		"<html></html>",
	))

	rec, recordLen, err := warcscan.Next(data, 0)
	require.NoError(t, err)
	assert.Equal(t, "response", rec.Warc.Type)
	assert.Equal(t, "https://thehtml.review/04/ascii-bedroom-archive/", rec.Warc.TargetURI)
	assert.Equal(t, "2025-08-06T14:37:28+01:00", rec.Warc.Date)
	assert.True(t, rec.Warc.IsHTTP)
	assert.True(t, rec.HasHTTP)
	assert.Equal(t, 200, rec.StatusCode)
	assert.Equal(t, "text/html", rec.HTTP.MimeType)
	assert.Equal(t, len(data), recordLen)
}

func TestNext_secondRecordAdvancesCursor(t *testing.T) {
	first := record("response", "https://a.example/", "2025-01-01T00:00:00Z", "HTTP/1.1 200 OK", "Content-Type: text/html\r\n", "one")
	second := record("response", "https://b.example/", "2025-01-02T00:00:00Z", "HTTP/1.1 404 Not Found", "Content-Type: text/plain\r\n", "two")
	data := []byte(first + second)

	_, firstLen, err := warcscan.Next(data, 0)
	require.NoError(t, err)

	rec2, _, err := warcscan.Next(data, firstLen)
	require.NoError(t, err)
	assert.Equal(t, "https://b.example/", rec2.Warc.TargetURI)
	assert.Equal(t, 404, rec2.StatusCode)
}

func TestNext_eof(t *testing.T) {
	_, _, err := warcscan.Next([]byte{}, 0)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNext_badMagic(t *testing.T) {
	_, _, err := warcscan.Next([]byte("not a warc record\r\n\r\n"), 0)
	assert.ErrorIs(t, err, warcscan.ErrMalformedRecord)
}

func TestNext_contentLengthExceedsData(t *testing.T) {
	data := []byte("WARC/1.1\r\nWARC-Type: resource\r\nContent-Length: 9999\r\n\r\nshort")
	_, _, err := warcscan.Next(data, 0)
	assert.ErrorIs(t, err, warcscan.ErrMalformedRecord)
}

func TestNext_badStatusLine(t *testing.T) {
	data := []byte(record("response", "https://a.example/", "2025-01-01T00:00:00Z", "HTTP/1.1 XXX Broken", "Content-Type: text/html\r\n", "body"))
	_, _, err := warcscan.Next(data, 0)
	assert.ErrorIs(t, err, warcscan.ErrBadStatusLine)
}

func TestNext_unknownWarcTypeIsAbsent(t *testing.T) {
	header := "WARC/1.1\r\nWARC-Type: future-type\r\nContent-Length: 0\r\n\r\n"
	data := []byte(header + "\r\n\r\n") // zero-length payload, then the two-CRLF terminator
	rec, _, err := warcscan.Next(data, 0)
	require.NoError(t, err)
	assert.Equal(t, "", rec.Warc.Type)
}
