package archive

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []byte(`{"s":["a","b","e"],"d":[["CUS-001","gold","john@example.com"]],"v":{"@0":"New York"}}`)

func codecs() []Codec {
	return []Codec{None, Gzip, Zstd, S2, LZ4}
}

func TestRoundTrip(t *testing.T) {
	for _, codec := range codecs() {
		comp, err := New(codec)
		require.NoError(t, err, codec)

		compressed, err := comp.Compress(sample)
		require.NoError(t, err, codec)

		restored, err := comp.Decompress(compressed)
		require.NoError(t, err, codec)
		assert.Equal(t, sample, restored, codec)
	}
}

func TestStreamRoundTrip(t *testing.T) {
	for _, codec := range codecs() {
		comp, err := New(codec)
		require.NoError(t, err, codec)

		var compressed bytes.Buffer
		require.NoError(t, comp.CompressStream(&compressed, bytes.NewReader(sample)), codec)

		var restored bytes.Buffer
		require.NoError(t, comp.DecompressStream(&restored, &compressed), codec)
		assert.Equal(t, sample, restored.Bytes(), codec)
	}
}

func TestCompressorReuse(t *testing.T) {
	comp, err := New(Zstd)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		compressed, err := comp.Compress(sample)
		require.NoError(t, err)
		restored, err := comp.Decompress(compressed)
		require.NoError(t, err)
		assert.Equal(t, sample, restored)
	}
}

func TestParseCodec(t *testing.T) {
	tests := []struct {
		in      string
		want    Codec
		wantErr bool
	}{
		{"", None, false},
		{"none", None, false},
		{"gzip", Gzip, false},
		{" ZSTD ", Zstd, false},
		{"s2", S2, false},
		{"lz4", LZ4, false},
		{"brotli", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCodec(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCodecForPath(t *testing.T) {
	assert.Equal(t, Gzip, CodecForPath("batch.json.gz"))
	assert.Equal(t, Zstd, CodecForPath("batch.json.zst"))
	assert.Equal(t, S2, CodecForPath("batch.json.s2"))
	assert.Equal(t, LZ4, CodecForPath("batch.json.lz4"))
	assert.Equal(t, None, CodecForPath("batch.json"))
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, codec := range codecs() {
		path := filepath.Join(dir, "batch.json"+codec.Extension())
		require.NoError(t, WriteFile(path, sample, codec))

		restored, err := ReadFile(path, "")
		require.NoError(t, err, codec)
		assert.Equal(t, sample, restored, codec)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"), None)
	assert.Error(t, err)
}
