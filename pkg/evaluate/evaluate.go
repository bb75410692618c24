// Package evaluate measures the token reduction achieved by the semtok
// codec. Token counts use a BPE-like approximation: text is split into word
// and punctuation chunks, each contributing roughly one token per three
// characters. Good enough for reduction percentages without shipping a
// model-specific tokenizer.
package evaluate

import (
	"unicode"

	"go.uber.org/zap"

	"github.com/dhruvd-1/semtok/pkg/codec"
	"github.com/dhruvd-1/semtok/pkg/errors"
	jsonx "github.com/dhruvd-1/semtok/pkg/json"
	"github.com/dhruvd-1/semtok/pkg/logger"
	"github.com/dhruvd-1/semtok/pkg/metrics"
	stringpool "github.com/dhruvd-1/semtok/pkg/strings"
)

// CountTokens approximates the token count of a text: words and individual
// punctuation marks are counted as max(1, len/3) tokens each.
func CountTokens(text string) int {
	total := 0
	wordLen := 0

	flush := func() {
		if wordLen == 0 {
			return
		}
		n := wordLen / 3
		if n < 1 {
			n = 1
		}
		total += n
		wordLen = 0
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			wordLen++
		case unicode.IsSpace(r):
			flush()
		default:
			// Punctuation: one token each.
			flush()
			total++
		}
	}
	flush()
	return total
}

// Metrics summarizes one before/after measurement.
type Metrics struct {
	OriginalChars     int     `json:"original_chars"`
	CompressedChars   int     `json:"compressed_chars"`
	OriginalTokens    int     `json:"original_tokens"`
	CompressedTokens  int     `json:"compressed_tokens"`
	CharReductionPct  float64 `json:"char_reduction_pct"`
	TokenReductionPct float64 `json:"token_reduction_pct"`
}

// Measure compares serialized original and compressed payloads.
func Measure(original, compressed []byte) Metrics {
	m := Metrics{
		OriginalChars:    len(original),
		CompressedChars:  len(compressed),
		OriginalTokens:   CountTokens(stringpool.BytesToString(original)),
		CompressedTokens: CountTokens(stringpool.BytesToString(compressed)),
	}
	if m.OriginalChars > 0 {
		m.CharReductionPct = (1 - float64(m.CompressedChars)/float64(m.OriginalChars)) * 100
	}
	if m.OriginalTokens > 0 {
		m.TokenReductionPct = (1 - float64(m.CompressedTokens)/float64(m.OriginalTokens)) * 100
	}
	return m
}

// BatchReport is the result of evaluating one batch.
type BatchReport struct {
	Metrics    Metrics         `json:"metrics"`
	Records    int             `json:"records"`
	Reversible bool            `json:"reversible"`
	Envelope   *codec.Envelope `json:"envelope,omitempty"`
}

// Evaluator runs compression evaluations against one codec instance.
type Evaluator struct {
	codec *codec.Codec
	log   *zap.Logger
}

// New creates an evaluator.
func New(c *codec.Codec) *Evaluator {
	return &Evaluator{
		codec: c,
		log:   logger.With(zap.String("component", "evaluator")),
	}
}

// EvaluateBatch compresses a batch, measures the reduction, and verifies the
// record-count round trip. The reduction percentage is meaningless for an
// empty batch, so empty input is rejected here; the codec itself treats
// empty batches as a valid degenerate case.
func (e *Evaluator) EvaluateBatch(records []codec.Record, className string, useDictionary bool) (*BatchReport, error) {
	if len(records) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "batch must not be empty").
			WithDetail("class", className)
	}

	originalJSON, err := jsonx.Marshal(records)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "cannot serialize original batch")
	}

	timer := metrics.NewTimer("compress")
	env := e.codec.CompressBatch(records, className, useDictionary)
	elapsed := timer.Stop()

	compressedJSON, err := jsonx.Marshal(env)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "cannot serialize envelope")
	}

	m := Measure(originalJSON, compressedJSON)
	restored := e.codec.DecompressBatch(env)

	report := &BatchReport{
		Metrics:    m,
		Records:    len(records),
		Reversible: len(restored) == len(records),
		Envelope:   env,
	}

	metrics.RecordCompression(className, len(records), m.TokenReductionPct, len(compressedJSON))
	e.log.Debug("batch evaluated",
		zap.String("class", className),
		zap.Int("records", len(records)),
		zap.Float64("token_reduction_pct", m.TokenReductionPct),
		zap.Duration("elapsed", elapsed))

	return report, nil
}

// EvaluateRecord measures the identifier-layer compression of one record.
func (e *Evaluator) EvaluateRecord(record codec.Record, className string) (*BatchReport, error) {
	if len(record) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "record must not be empty")
	}

	originalJSON, err := jsonx.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "cannot serialize record")
	}

	compressed := e.codec.CompressRecord(record, className)
	compressedJSON, err := jsonx.Marshal(compressed)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "cannot serialize compressed record")
	}

	return &BatchReport{
		Metrics:    Measure(originalJSON, compressedJSON),
		Records:    1,
		Reversible: true,
	}, nil
}
