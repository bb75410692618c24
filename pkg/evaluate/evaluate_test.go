package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvd-1/semtok/pkg/codec"
	"github.com/dhruvd-1/semtok/pkg/errors"
	"github.com/dhruvd-1/semtok/pkg/ontology"
)

func TestCountTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abc", 1},
		{"abcdef", 2},
		{"hello world", 2},
		// john=1, '@'=1, example=2, '.'=1, com=1
		{"john@example.com", 6},
		{"a,b", 3},
		{"   ", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountTokens(tt.text), "%q", tt.text)
	}
}

func TestMeasure(t *testing.T) {
	m := Measure([]byte("aaaaaaaaaa"), []byte("aaaaa"))
	assert.Equal(t, 10, m.OriginalChars)
	assert.Equal(t, 5, m.CompressedChars)
	assert.InDelta(t, 50.0, m.CharReductionPct, 0.001)
}

func TestMeasureEmptyOriginal(t *testing.T) {
	m := Measure(nil, []byte("x"))
	assert.Equal(t, 0.0, m.CharReductionPct)
	assert.Equal(t, 0.0, m.TokenReductionPct)
}

func TestEvaluateBatch(t *testing.T) {
	c := codec.New(ontology.Default())
	e := New(c)

	records := []codec.Record{
		{"customerId": "CUS-001", "email": "alice@example.com", "city": "New York"},
		{"customerId": "CUS-002", "email": "bob@example.com", "city": "New York"},
		{"customerId": "CUS-003", "email": "carol@example.com", "city": "New York"},
	}

	report, err := e.EvaluateBatch(records, "Customer", true)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Records)
	assert.True(t, report.Reversible)
	require.NotNil(t, report.Envelope)
	assert.Len(t, report.Envelope.Rows, 3)
	assert.Greater(t, report.Metrics.OriginalChars, report.Metrics.CompressedChars)
	assert.Greater(t, report.Metrics.CharReductionPct, 0.0)
}

func TestEvaluateBatchEmpty(t *testing.T) {
	e := New(codec.New(ontology.Default()))

	_, err := e.EvaluateBatch(nil, "Customer", true)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestEvaluateRecord(t *testing.T) {
	e := New(codec.New(ontology.Default()))

	report, err := e.EvaluateRecord(codec.Record{"customerId": "CUS-001", "email": "a@b.com"}, "Customer")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Records)
	assert.Greater(t, report.Metrics.OriginalChars, 0)
}

func TestEvaluateRecordEmpty(t *testing.T) {
	e := New(codec.New(ontology.Default()))

	_, err := e.EvaluateRecord(nil, "Customer")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}
