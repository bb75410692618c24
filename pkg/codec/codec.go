// Package codec implements semtok's ontology-guided batch compression: it
// turns batches of field-to-value records into compact columnar envelopes
// and back.
//
// Compression is layered. Field names are mapped to single-character codes
// through ontology property inference and a base62 identifier table; records
// are flattened against a shared sorted schema into positional rows; date
// and timestamp values are compacted; recurring literal prefixes and email
// domains become pattern references; and recurring post-pattern strings
// become dictionary references. Decoding reverses the schema, dictionary,
// and pattern layers exactly.
//
// One deliberate asymmetry: value normalization (date/timestamp compaction)
// is not reversed on decode, so "2024-01-15" round-trips as "20240115".
// Field identity is always reconstructed exactly; values are approximate in
// that one respect. Callers needing the original literals must keep dates in
// non-date-shaped strings or skip the codec for those fields.
//
// Fallback codes share the table's alphabet. A field the inferencer cannot
// resolve is encoded under the lowercase first character of its name, and a
// table over a few dozen properties already owns most single letters. The
// decoder cannot distinguish the two origins: any schema code with a table
// entry is mapped back to that property's name, so an unresolved "city" can
// come back as whatever property holds code "c". Field identity is only
// guaranteed for fields that resolve through the ontology.
//
// A Codec is cheap to share: the identifier table is built once at
// construction and read-only afterward. All per-call state (value pools,
// pattern and dictionary maps) is local to one CompressBatch or
// DecompressBatch invocation, so concurrent calls on one Codec are safe.
package codec

import (
	"sort"
	"strings"

	"github.com/dhruvd-1/semtok/pkg/ontology"
	"github.com/dhruvd-1/semtok/pkg/pool"
)

// Record is one unordered mapping from raw field name to scalar value.
type Record = map[string]interface{}

// Codec compresses and decompresses batches of records against one ontology
// snapshot. Construct with New; the zero value is not usable.
type Codec struct {
	ont        *ontology.Ontology
	table      *PropertyTable
	inferencer *Inferencer
}

// Option customizes a Codec.
type Option func(*Codec)

// WithInferencer swaps the field-to-property inferencer, e.g. for a learned
// model honoring the same Infer contract.
func WithInferencer(inf *Inferencer) Option {
	return func(c *Codec) { c.inferencer = inf }
}

// New creates a codec over the given ontology snapshot. The identifier
// table is built here, once, from the snapshot's full sorted property set.
func New(ont *ontology.Ontology, opts ...Option) *Codec {
	c := &Codec{
		ont:        ont,
		table:      NewPropertyTable(ont.PropertyNames()),
		inferencer: NewInferencer(ont),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table exposes the property identifier table, e.g. for diagnostics.
func (c *Codec) Table() *PropertyTable {
	return c.table
}

// resolveCode maps a raw field name to a schema code: ontology inference
// then table lookup, falling back to the lowercase first character of the
// field name when either step misses.
func (c *Codec) resolveCode(fieldName, className string) string {
	if prop, ok := c.inferencer.Infer(fieldName, className); ok {
		if code, ok := c.table.Encode(prop); ok {
			return code
		}
	}
	if fieldName == "" {
		return ""
	}
	return strings.ToLower(fieldName[:1])
}

// CompressBatch encodes a batch of records sharing one ontology-class
// context into a columnar envelope. With useDictionary set, batch-wide
// pattern and dictionary extraction run over the pooled string values;
// otherwise rows carry normalized, unsubstituted values. An empty batch
// yields an empty envelope, not an error.
func (c *Codec) CompressBatch(records []Record, className string, useDictionary bool) *Envelope {
	if len(records) == 0 {
		return &Envelope{
			Schema:     []string{},
			Rows:       [][]interface{}{},
			Dictionary: map[string]string{},
			Patterns:   map[string]string{},
		}
	}

	// Pass 1: map fields to codes, normalize values, pool strings.
	valuePool := pool.GetStringSlice()
	defer pool.PutStringSlice(valuePool)

	mapped := make([]map[string]interface{}, 0, len(records))
	codes := make(map[string]struct{})

	for _, record := range records {
		// Records are unordered maps; walk fields in sorted order so
		// value pooling (and with it pattern/dictionary numbering) is
		// identical across calls.
		fields := make([]string, 0, len(record))
		for fieldName := range record {
			fields = append(fields, fieldName)
		}
		sort.Strings(fields)

		m := make(map[string]interface{}, len(record))
		for _, fieldName := range fields {
			code := c.resolveCode(fieldName, className)
			normalized := NormalizeValue(record[fieldName])
			m[code] = normalized
			codes[code] = struct{}{}

			if s, ok := normalized.(string); ok {
				*valuePool = append(*valuePool, s)
			}
		}
		mapped = append(mapped, m)
	}

	// Schema: sorted, deduplicated codes for cross-call determinism.
	schema := make([]string, 0, len(codes))
	for code := range codes {
		schema = append(schema, code)
	}
	sort.Strings(schema)

	// Pass 2: batch-wide pattern and dictionary extraction.
	var patterns *PatternSet
	var dict *Dictionary
	if useDictionary {
		patterns = ExtractPatterns(*valuePool)

		processed := pool.GetStringSlice()
		for _, v := range *valuePool {
			*processed = append(*processed, patterns.Apply(v))
		}
		dict = BuildDictionary(*processed)
		pool.PutStringSlice(processed)
	}

	// Pass 3: fixed-length positional rows aligned with the schema.
	rows := make([][]interface{}, 0, len(mapped))
	for _, m := range mapped {
		row := make([]interface{}, len(schema))
		for i, code := range schema {
			value, ok := m[code]
			if !ok {
				row[i] = nil
				continue
			}
			if s, isStr := value.(string); isStr && useDictionary {
				s = patterns.Apply(s)
				if ref, found := dict.RefFor(s); found {
					s = ref
				}
				value = s
			}
			row[i] = value
		}
		rows = append(rows, row)
	}

	env := &Envelope{Schema: schema, Rows: rows}
	if useDictionary {
		if dict.Len() > 0 {
			env.Dictionary = dict.Forward()
		}
		if patterns.Len() > 0 {
			env.Patterns = patterns.Map()
		}
	}
	return env
}

// DecompressBatch reconstructs records from an envelope. Dictionary
// references are expanded before pattern references because a dictionary
// literal can itself still contain a pattern token. Schema codes without a
// reverse mapping pass through unchanged as field names.
func (c *Codec) DecompressBatch(env *Envelope) []Record {
	records := make([]Record, 0, len(env.Rows))

	for _, row := range env.Rows {
		record := make(Record, len(env.Schema))
		for i, code := range env.Schema {
			if i >= len(row) {
				break
			}
			value := row[i]

			if s, ok := value.(string); ok {
				if IsDictRef(s) {
					if literal, found := env.Dictionary[s]; found {
						s = literal
					}
				}
				value = ExpandPatterns(s, env.Patterns)
			}

			fieldName := code
			if name, ok := c.table.Decode(code); ok {
				fieldName = name
			}
			record[fieldName] = value
		}
		records = append(records, record)
	}

	return records
}

// CompressRecord applies only the identifier layer to a single record:
// field names become codes, values stay as-is. The fallback key for
// unresolved fields is the lowercase first two characters of the field
// name, matching the single-record wire convention.
func (c *Codec) CompressRecord(record Record, className string) Record {
	out := make(Record, len(record))
	for fieldName, value := range record {
		var key string
		if prop, ok := c.inferencer.Infer(fieldName, className); ok {
			if code, found := c.table.Encode(prop); found {
				key = code
			}
		}
		if key == "" {
			n := len(fieldName)
			if n > 2 {
				n = 2
			}
			key = strings.ToLower(fieldName[:n])
		}
		out[key] = value
	}
	return out
}

// DecompressRecord reverses the identifier layer of CompressRecord. Unknown
// keys pass through unchanged.
func (c *Codec) DecompressRecord(record Record) Record {
	out := make(Record, len(record))
	for key, value := range record {
		if name, ok := c.table.Decode(key); ok {
			out[name] = value
		} else {
			out[key] = value
		}
	}
	return out
}

// Info describes the compression layers and table size, mirroring what the
// HTTP API reports.
func (c *Codec) Info() map[string]interface{} {
	return map[string]interface{}{
		"layers": []string{
			"property identifier encoding",
			"structural flattening",
			"type elision",
			"pattern and dictionary substitution",
		},
		"properties_mapped": c.table.Len(),
		"reversible_fields": true,
	}
}
