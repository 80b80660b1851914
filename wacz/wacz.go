// Package wacz assembles the final .wacz archive: a ZIP container
// holding the original WARC, the CDXJ index, the pages JSONL file, and
// the datapackage.json manifest, at the fixed paths WACZ readers expect.
package wacz

import (
	"archive/zip"
	"io"

	"github.com/pkg/errors"
)

// Write streams a complete .wacz archive to w. warcName is the final
// path component of the source WARC file, used under archive/. Entries
// are written manifest first so a reader scanning the central directory
// can locate it without decompressing the (usually much larger) WARC
// resource; the WARC itself is stored rather than deflated, since it is
// typically already gzip-compressed.
func Write(w io.Writer, warcName string, warcBytes, cdxjBytes, pagesBytes, manifestBytes []byte) error {
	zw := zip.NewWriter(w)

	entries := []struct {
		path    string
		content []byte
		store   bool
	}{
		{"datapackage.json", manifestBytes, false},
		{"indexes/index.cdxj", cdxjBytes, false},
		{"pages/pages.jsonl", pagesBytes, false},
		{"archive/" + warcName, warcBytes, true},
	}

	for _, e := range entries {
		method := zip.Deflate
		if e.store {
			method = zip.Store
		}
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:   e.path,
			Method: method,
		})
		if err != nil {
			return errors.Wrapf(err, "wacz: create entry %s", e.path)
		}
		if _, err := f.Write(e.content); err != nil {
			return errors.Wrapf(err, "wacz: write entry %s", e.path)
		}
	}

	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "wacz: finalize archive")
	}
	return nil
}
