// Package frame implements the GzipFramer component: it presents a WARC
// file as an ordered sequence of physical frames, each paired with its
// decompressed bytes, so that downstream parsing never has to know
// whether the source file was gzip-compressed.
package frame

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Frame is one physical slice of the source file together with its
// decoded content. Start and RawLen are always physical (compressed-file)
// byte positions, even when the source is gzip; Decoded never leaks a
// decompressed cursor into the rest of the pipeline.
type Frame struct {
	Start   int64
	RawLen  int64
	Decoded []byte
}

// ErrFrameDecode is returned when a frame that should be a gzip member
// cannot be decoded as one.
var ErrFrameDecode = errors.New("frame: could not decode gzip member")

// Framer yields the frames of a single source file, in order, from the
// beginning of the file to its end.
type Framer struct {
	file   *os.File
	size   int64
	isGzip bool
	pos    int64
}

// Open returns a Framer over path. isGzip should reflect the case-sensitive
// ".gz" extension check described by the spec; the caller decides it so
// that the decision is made exactly once, at the edge of the system.
func Open(path string, isGzip bool) (*Framer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "frame: unable to open source file")
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "frame: unable to stat source file")
	}

	return &Framer{
		file:   f,
		size:   info.Size(),
		isGzip: isGzip,
	}, nil
}

// Close releases the underlying file handle.
func (fr *Framer) Close() error {
	return fr.file.Close()
}

// Next returns the next frame, or io.EOF once the whole file has been
// consumed.
func (fr *Framer) Next() (Frame, error) {
	if fr.pos >= fr.size {
		return Frame{}, io.EOF
	}

	if !fr.isGzip {
		decoded, err := io.ReadAll(io.NewSectionReader(fr.file, 0, fr.size))
		if err != nil {
			return Frame{}, errors.Wrap(err, "frame: unable to read plain WARC")
		}
		fr.pos = fr.size
		return Frame{Start: 0, RawLen: fr.size, Decoded: decoded}, nil
	}

	start := fr.pos
	if _, err := fr.file.Seek(start, io.SeekStart); err != nil {
		return Frame{}, errors.Wrap(err, "frame: unable to seek to next member")
	}

	// gzip/flate need an io.ByteReader to avoid being wrapped in their own
	// opaque bufio.Reader; by supplying our own we can later recover how
	// many bytes were prefetched but never consumed by this member, via
	// Buffered(), and rewind the file to the true member boundary.
	br := bufio.NewReader(fr.file)

	gz, err := gzip.NewReader(br)
	if err != nil {
		return Frame{}, errors.Wrapf(ErrFrameDecode, "at offset %d: %v", start, err)
	}
	gz.Multistream(false)

	decoded, err := io.ReadAll(gz)
	if err != nil {
		return Frame{}, errors.Wrapf(ErrFrameDecode, "at offset %d: %v", start, err)
	}

	filePos, err := fr.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return Frame{}, errors.Wrap(err, "frame: unable to read current file position")
	}
	end := filePos - int64(br.Buffered())

	fr.pos = end
	return Frame{Start: start, RawLen: end - start, Decoded: decoded}, nil
}
