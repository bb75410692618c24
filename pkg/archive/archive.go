// Package archive frames serialized envelopes for storage and transport.
// The codec layer keeps envelopes as plain JSON; byte-level compression of
// that JSON lives here, outside the envelope format, so a stored batch can
// switch algorithms without re-encoding.
package archive

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/dhruvd-1/semtok/pkg/errors"
)

// Codec identifies a byte-level compression algorithm.
type Codec string

const (
	// None stores envelope JSON as-is.
	None Codec = "none"
	// Gzip is the widely compatible default for files shared outside the system.
	Gzip Codec = "gzip"
	// Zstd gives the best ratio on envelope JSON.
	Zstd Codec = "zstd"
	// S2 favors throughput over ratio.
	S2 Codec = "s2"
	// LZ4 is the fastest option.
	LZ4 Codec = "lz4"
)

// ParseCodec maps a user-supplied name to a Codec.
func ParseCodec(name string) (Codec, error) {
	switch Codec(strings.ToLower(strings.TrimSpace(name))) {
	case None, "":
		return None, nil
	case Gzip:
		return Gzip, nil
	case Zstd:
		return Zstd, nil
	case S2:
		return S2, nil
	case LZ4:
		return LZ4, nil
	default:
		return "", errors.New(errors.ErrorTypeValidation, "unsupported archive codec").
			WithDetail("codec", name)
	}
}

// Extension returns the file suffix for the codec, "" for None.
func (c Codec) Extension() string {
	switch c {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case S2:
		return ".s2"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// Compressor compresses and decompresses envelope bytes. Implementations
// are safe for concurrent use.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	CompressStream(dst io.Writer, src io.Reader) error
	DecompressStream(dst io.Writer, src io.Reader) error
	Codec() Codec
}

// New creates a compressor for the codec.
func New(codec Codec) (Compressor, error) {
	switch codec {
	case None:
		return passthrough{}, nil
	case Gzip:
		return newGzipCompressor(), nil
	case Zstd:
		return newZstdCompressor(), nil
	case S2:
		return s2Compressor{}, nil
	case LZ4:
		return lz4Compressor{}, nil
	default:
		return nil, errors.New(errors.ErrorTypeValidation, "unsupported archive codec").
			WithDetail("codec", string(codec))
	}
}

// WriteFile compresses data and writes it to path.
func WriteFile(path string, data []byte, codec Codec) error {
	comp, err := New(codec)
	if err != nil {
		return err
	}
	framed, err := comp.Compress(data)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "compress envelope").
			WithDetail("path", path)
	}
	if err := os.WriteFile(path, framed, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "write envelope file").
			WithDetail("path", path)
	}
	return nil
}

// ReadFile reads path and decompresses it. The codec is taken from the file
// extension unless explicitly given.
func ReadFile(path string, codec Codec) ([]byte, error) {
	if codec == "" {
		codec = CodecForPath(path)
	}
	comp, err := New(codec)
	if err != nil {
		return nil, err
	}
	framed, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeNotFound, "read envelope file").
			WithDetail("path", path)
	}
	data, err := comp.Decompress(framed)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "decompress envelope").
			WithDetail("path", path)
	}
	return data, nil
}

// CodecForPath infers the codec from a file suffix, defaulting to None.
func CodecForPath(path string) Codec {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return Gzip
	case strings.HasSuffix(path, ".zst"):
		return Zstd
	case strings.HasSuffix(path, ".s2"):
		return S2
	case strings.HasSuffix(path, ".lz4"):
		return LZ4
	default:
		return None
	}
}

type passthrough struct{}

func (passthrough) Compress(data []byte) ([]byte, error)   { return data, nil }
func (passthrough) Decompress(data []byte) ([]byte, error) { return data, nil }
func (passthrough) Codec() Codec                           { return None }

func (passthrough) CompressStream(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}

func (passthrough) DecompressStream(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}

type gzipCompressor struct {
	writers sync.Pool
	readers sync.Pool
}

func newGzipCompressor() *gzipCompressor {
	gc := &gzipCompressor{}
	gc.writers.New = func() interface{} {
		return gzip.NewWriter(nil)
	}
	gc.readers.New = func() interface{} {
		return new(gzip.Reader)
	}
	return gc
}

func (gc *gzipCompressor) Codec() Codec { return Gzip }

func (gc *gzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := gc.CompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gc *gzipCompressor) Decompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := gc.DecompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gc *gzipCompressor) CompressStream(dst io.Writer, src io.Reader) error {
	w := gc.writers.Get().(*gzip.Writer)
	defer gc.writers.Put(w)

	w.Reset(dst)
	if _, err := io.Copy(w, src); err != nil {
		return err
	}
	return w.Close()
}

func (gc *gzipCompressor) DecompressStream(dst io.Writer, src io.Reader) error {
	r := gc.readers.Get().(*gzip.Reader)
	defer gc.readers.Put(r)

	if err := r.Reset(src); err != nil {
		return err
	}
	_, err := io.Copy(dst, r)
	return err
}

type zstdCompressor struct {
	encoders sync.Pool
	decoders sync.Pool
}

func newZstdCompressor() *zstdCompressor {
	zc := &zstdCompressor{}
	zc.encoders.New = func() interface{} {
		enc, _ := zstd.NewWriter(nil)
		return enc
	}
	zc.decoders.New = func() interface{} {
		dec, _ := zstd.NewReader(nil)
		return dec
	}
	return zc
}

func (zc *zstdCompressor) Codec() Codec { return Zstd }

func (zc *zstdCompressor) Compress(data []byte) ([]byte, error) {
	enc := zc.encoders.Get().(*zstd.Encoder)
	defer zc.encoders.Put(enc)
	return enc.EncodeAll(data, nil), nil
}

func (zc *zstdCompressor) Decompress(data []byte) ([]byte, error) {
	dec := zc.decoders.Get().(*zstd.Decoder)
	defer zc.decoders.Put(dec)
	return dec.DecodeAll(data, nil)
}

func (zc *zstdCompressor) CompressStream(dst io.Writer, src io.Reader) error {
	enc := zc.encoders.Get().(*zstd.Encoder)
	defer zc.encoders.Put(enc)

	enc.Reset(dst)
	if _, err := io.Copy(enc, src); err != nil {
		return err
	}
	return enc.Close()
}

func (zc *zstdCompressor) DecompressStream(dst io.Writer, src io.Reader) error {
	dec := zc.decoders.Get().(*zstd.Decoder)
	defer zc.decoders.Put(dec)

	if err := dec.Reset(src); err != nil {
		return err
	}
	_, err := io.Copy(dst, dec)
	return err
}

type s2Compressor struct{}

func (s2Compressor) Codec() Codec { return S2 }

func (s2Compressor) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (s2Compressor) Decompress(data []byte) ([]byte, error) {
	return s2.Decode(nil, data)
}

func (s2Compressor) CompressStream(dst io.Writer, src io.Reader) error {
	w := s2.NewWriter(dst)
	if _, err := io.Copy(w, src); err != nil {
		return err
	}
	return w.Close()
}

func (s2Compressor) DecompressStream(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, s2.NewReader(src))
	return err
}

type lz4Compressor struct{}

func (lz4Compressor) Codec() Codec { return LZ4 }

func (c lz4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.CompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c lz4Compressor) Decompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.DecompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (lz4Compressor) CompressStream(dst io.Writer, src io.Reader) error {
	w := lz4.NewWriter(dst)
	if _, err := io.Copy(w, src); err != nil {
		return err
	}
	return w.Close()
}

func (lz4Compressor) DecompressStream(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, lz4.NewReader(src))
	return err
}
