package indexer

import "github.com/pkg/errors"

var (
	// ErrIO wraps any failed file read.
	ErrIO = errors.New("indexer: io error")

	// ErrBadURL is returned when a retainable record's WARC-Target-URI
	// fails to parse or exposes no host.
	ErrBadURL = errors.New("indexer: bad url")

	// ErrBadTimestamp is returned when a retainable record's WARC-Date
	// fails RFC-3339 parsing.
	ErrBadTimestamp = errors.New("indexer: bad timestamp")
)
