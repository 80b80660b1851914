package warcscan

import "github.com/pkg/errors"

// Sentinel error kinds a caller can match with errors.Is.
var (
	// ErrMalformedRecord is returned when a frame does not start with the
	// WARC/1.1 magic, or when a plain-WARC cursor runs past end of file
	// without finding a terminator.
	ErrMalformedRecord = errors.New("warcscan: malformed record")

	// ErrMalformedHeaderLine is returned when a header line has no colon,
	// or WARC Content-Length is not a valid non-negative integer.
	ErrMalformedHeaderLine = errors.New("warcscan: malformed header line")

	// ErrBadStatusLine is returned when the embedded HTTP status code is
	// not a three-digit decimal integer in [100, 599].
	ErrBadStatusLine = errors.New("warcscan: bad HTTP status line")
)
