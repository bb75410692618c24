package codec

import (
	jsonx "github.com/dhruvd-1/semtok/pkg/json"
)

// Envelope is the self-contained compressed representation of one batch.
// Schema and Rows are always present on the wire (possibly empty); the
// dictionary and pattern maps are omitted when empty.
type Envelope struct {
	// Schema is the sorted, deduplicated list of schema codes. Rows are
	// aligned to it index-for-index.
	Schema []string
	// Rows holds one fixed-length positional array per record.
	Rows [][]interface{}
	// Dictionary maps dictionary-reference tokens to literals.
	Dictionary map[string]string
	// Patterns maps pattern literals to pattern-reference tokens.
	Patterns map[string]string
}

// envelopeWire is the compact wire shape.
type envelopeWire struct {
	S []string          `json:"s"`
	D [][]interface{}   `json:"d"`
	V map[string]string `json:"v,omitempty"`
	P map[string]string `json:"p,omitempty"`
}

// envelopeCompat accepts both the compact keys and the legacy long keys.
type envelopeCompat struct {
	S []string          `json:"s"`
	D [][]interface{}   `json:"d"`
	V map[string]string `json:"v"`
	P map[string]string `json:"p"`

	Schema   []string          `json:"schema"`
	Data     [][]interface{}   `json:"data"`
	Dict     map[string]string `json:"dict"`
	Patterns map[string]string `json:"patterns"`
}

// MarshalJSON emits the compact wire shape: "s" and "d" always, "v" and "p"
// only when non-empty.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	wire := envelopeWire{
		S: e.Schema,
		D: e.Rows,
		V: e.Dictionary,
		P: e.Patterns,
	}
	if wire.S == nil {
		wire.S = []string{}
	}
	if wire.D == nil {
		wire.D = [][]interface{}{}
	}
	if len(wire.V) == 0 {
		wire.V = nil
	}
	if len(wire.P) == 0 {
		wire.P = nil
	}
	return jsonx.Marshal(wire)
}

// UnmarshalJSON accepts both compact and legacy key conventions, preferring
// the compact keys when both are present.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var compat envelopeCompat
	if err := jsonx.Unmarshal(data, &compat); err != nil {
		return err
	}

	e.Schema = compat.S
	if e.Schema == nil {
		e.Schema = compat.Schema
	}
	e.Rows = compat.D
	if e.Rows == nil {
		e.Rows = compat.Data
	}
	e.Dictionary = compat.V
	if e.Dictionary == nil {
		e.Dictionary = compat.Dict
	}
	e.Patterns = compat.P
	if e.Patterns == nil {
		e.Patterns = compat.Patterns
	}

	if e.Schema == nil {
		e.Schema = []string{}
	}
	if e.Rows == nil {
		e.Rows = [][]interface{}{}
	}
	return nil
}

// IsEmpty reports whether the envelope carries no rows.
func (e *Envelope) IsEmpty() bool {
	return len(e.Rows) == 0
}
