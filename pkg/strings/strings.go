// Package strings provides zero-copy string utilities with pooled builders
// for semtok's hot paths (envelope assembly, error formatting, token counting).
package strings

import (
	"fmt"
	"strconv"
	"sync"
	"unsafe"
)

// BytesToString converts a byte slice to a string without allocation.
// WARNING: the returned string shares memory with the byte slice.
// Do not modify the byte slice after calling this function.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// StringToBytes converts a string to a byte slice without allocation.
// WARNING: the returned byte slice shares memory with the string.
// Do not modify the returned slice.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Clone creates a copy of a string that owns its memory. Use when a string
// produced by a pooled builder must outlive the builder.
func Clone(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := make([]byte, len(s))
	copy(b, s)
	return BytesToString(b)
}

// Builder provides efficient string building over an append-grown buffer.
type Builder struct {
	buf []byte
}

// NewBuilder creates a new string builder with the given capacity.
func NewBuilder(capacity int) *Builder {
	return &Builder{buf: make([]byte, 0, capacity)}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// WriteBytes appends bytes to the builder.
func (b *Builder) WriteBytes(data []byte) {
	b.buf = append(b.buf, data...)
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (n int, err error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// String returns the built string using zero-copy conversion.
func (b *Builder) String() string {
	return BytesToString(b.buf)
}

// Len returns the length of the built string.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset resets the builder for reuse.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Builder pools, tiered by expected output size.
const (
	smallCapacity = 256
	largeCapacity = 16 * 1024
)

var smallBuilderPool = sync.Pool{
	New: func() interface{} { return NewBuilder(smallCapacity) },
}

var largeBuilderPool = sync.Pool{
	New: func() interface{} { return NewBuilder(largeCapacity) },
}

func getBuilder(estimated int) (*Builder, *sync.Pool) {
	if estimated > smallCapacity*4 {
		return largeBuilderPool.Get().(*Builder), &largeBuilderPool
	}
	return smallBuilderPool.Get().(*Builder), &smallBuilderPool
}

func putBuilder(b *Builder, pool *sync.Pool) {
	b.Reset()
	pool.Put(b)
}

// Sprintf provides a pooled alternative to fmt.Sprintf.
func Sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}

	builder, pool := getBuilder(len(format) + len(args)*16)
	defer putBuilder(builder, pool)

	fmt.Fprintf(builder, format, args...)
	return Clone(builder.String())
}

// Concat efficiently concatenates strings using a pooled builder.
func Concat(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}

	total := 0
	for _, s := range parts {
		total += len(s)
	}

	builder, pool := getBuilder(total)
	defer putBuilder(builder, pool)

	for _, s := range parts {
		builder.WriteString(s)
	}
	return Clone(builder.String())
}

// BuildString builds a string with a function over a pooled builder.
func BuildString(fn func(*Builder)) string {
	builder, pool := getBuilder(smallCapacity)
	defer putBuilder(builder, pool)

	fn(builder)
	return Clone(builder.String())
}

// ValueToString converts scalar values to strings without fmt overhead.
// This replaces fmt.Sprintf("%v", value) in record processing paths.
func ValueToString(value interface{}) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case []byte:
		return BytesToString(v)
	default:
		return Sprintf("%v", value)
	}
}
