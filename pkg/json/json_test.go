package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshal(t *testing.T) {
	in := map[string]interface{}{
		"customerId": "CUS-001",
		"active":     true,
	}

	data, err := Marshal(in)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, "CUS-001", out["customerId"])
	assert.Equal(t, true, out["active"])
}

func TestEncoderNoHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.Encode(map[string]string{"q": "a<b&c>d"}))
	assert.Contains(t, buf.String(), "a<b&c>d")
}

func TestBufferPoolReuse(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("scratch")
	PutBuffer(buf)

	again := GetBuffer()
	assert.Zero(t, again.Len(), "pooled buffer must come back reset")
	PutBuffer(again)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid([]byte(`{"s":[],"d":[]}`)))
	assert.False(t, Valid([]byte(`{"s":`)))
}
