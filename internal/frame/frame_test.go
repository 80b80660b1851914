package frame_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivebox/waczindex/internal/frame"
)

func writeGzipMembers(t *testing.T, members ...string) string {
	t.Helper()
	var buf bytes.Buffer
	for _, m := range members {
		gw := gzip.NewWriter(&buf)
		_, err := gw.Write([]byte(m))
		require.NoError(t, err)
		require.NoError(t, gw.Close())
	}

	path := filepath.Join(t.TempDir(), "fixture.warc.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestFramer_plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.warc")
	content := []byte("WARC/1.1\r\n\r\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	fr, err := frame.Open(path, false)
	require.NoError(t, err)
	defer fr.Close()

	fm, err := fr.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(0), fm.Start)
	assert.Equal(t, int64(len(content)), fm.RawLen)
	assert.Equal(t, content, fm.Decoded)
}

func TestFramer_gzipMultiMember(t *testing.T) {
	want := []string{"first record\n", "second record\n", "third record\n"}
	path := writeGzipMembers(t, want...)

	info, err := os.Stat(path)
	require.NoError(t, err)

	fr, err := frame.Open(path, true)
	require.NoError(t, err)
	defer fr.Close()

	var frames []frame.Frame
	for {
		fm, err := fr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		frames = append(frames, fm)
	}

	require.Len(t, frames, len(want))
	for i, fm := range frames {
		assert.Equal(t, want[i], string(fm.Decoded))
		assert.Greater(t, fm.RawLen, int64(0))
		if i > 0 {
			assert.Equal(t, frames[i-1].Start+frames[i-1].RawLen, fm.Start)
		}
	}
	last := frames[len(frames)-1]
	assert.Equal(t, info.Size(), last.Start+last.RawLen)
}

func TestFramer_gzipBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.warc.gz")
	require.NoError(t, os.WriteFile(path, []byte("not a gzip member"), 0o644))

	fr, err := frame.Open(path, true)
	require.NoError(t, err)
	defer fr.Close()

	_, err = fr.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrFrameDecode)
}
