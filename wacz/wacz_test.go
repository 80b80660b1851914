package wacz_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivebox/waczindex/wacz"
)

func TestWrite_entriesAndContent(t *testing.T) {
	var buf bytes.Buffer
	err := wacz.Write(&buf, "fixture.warc.gz",
		[]byte("warc bytes"),
		[]byte("cdxj bytes"),
		[]byte("pages bytes"),
		[]byte("manifest bytes"),
	)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	want := map[string]string{
		"datapackage.json":        "manifest bytes",
		"indexes/index.cdxj":      "cdxj bytes",
		"pages/pages.jsonl":       "pages bytes",
		"archive/fixture.warc.gz": "warc bytes",
	}
	require.Len(t, zr.File, len(want))

	for _, f := range zr.File {
		expected, ok := want[f.Name]
		require.True(t, ok, "unexpected entry %s", f.Name)

		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()

		assert.Equal(t, expected, string(content))
	}
}

func TestWrite_warcResourceStored(t *testing.T) {
	var buf bytes.Buffer
	err := wacz.Write(&buf, "fixture.warc", []byte("warc"), []byte("c"), []byte("p"), []byte("m"))
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name == "archive/fixture.warc" {
			assert.Equal(t, zip.Store, f.Method)
		} else {
			assert.Equal(t, zip.Deflate, f.Method)
		}
	}
}
