package strings

import (
	"testing"
)

func TestBytesToString(t *testing.T) {
	if got := BytesToString(nil); got != "" {
		t.Errorf("expected empty string for nil, got %q", got)
	}
	if got := BytesToString([]byte("hello")); got != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
}

func TestStringToBytes(t *testing.T) {
	if got := StringToBytes(""); got != nil {
		t.Errorf("expected nil for empty string, got %v", got)
	}
	b := StringToBytes("world")
	if string(b) != "world" {
		t.Errorf("expected world, got %q", string(b))
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(8)
	b.WriteString("CUS")
	_ = b.WriteByte('-')
	b.WriteBytes([]byte("001"))

	if b.String() != "CUS-001" {
		t.Errorf("expected CUS-001, got %q", b.String())
	}
	if b.Len() != 7 {
		t.Errorf("expected length 7, got %d", b.Len())
	}

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("expected empty builder after reset, got length %d", b.Len())
	}
}

func TestSprintf(t *testing.T) {
	if got := Sprintf("no args"); got != "no args" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if got := Sprintf("%s-%03d", "ORD", 7); got != "ORD-007" {
		t.Errorf("expected ORD-007, got %q", got)
	}
}

func TestConcat(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"empty", nil, ""},
		{"single", []string{"a"}, "a"},
		{"many", []string{"@", "example", ".com"}, "@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Concat(tt.parts...); got != tt.want {
				t.Errorf("Concat(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestBuildString(t *testing.T) {
	got := BuildString(func(b *Builder) {
		b.WriteString("key")
		_ = b.WriteByte(':')
		b.WriteString("value")
	})
	if got != "key:value" {
		t.Errorf("expected key:value, got %q", got)
	}
}

func TestValueToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"string", "New York", "New York"},
		{"int", 42, "42"},
		{"float", 19.99, "19.99"},
		{"bool", true, "true"},
		{"bytes", []byte("raw"), "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueToString(tt.value); got != tt.want {
				t.Errorf("ValueToString(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
