package codec

import (
	"strconv"
	"strings"
)

// Dictionary thresholds: a post-pattern string earns a reference when it
// recurs at least twice and is long enough for the reference to pay off.
// dictMinLen is the smallest qualifying length, so 4 means "longer than
// three characters": len(v) >= dictMinLen, not a strict > comparison.
const (
	dictMinCount = 2
	dictMinLen   = 4
)

// dictRefPrefix starts every dictionary reference token.
const dictRefPrefix = "@"

// Dictionary maps repeated post-pattern string values to short reference
// tokens for one batch. Built per encode call.
type Dictionary struct {
	forward map[string]string // reference -> literal
	inverse map[string]string // literal -> reference
}

// BuildDictionary counts the pooled string values (after pattern
// substitution) and assigns "@0", "@1", ... to each distinct value occurring
// at least twice with length greater than three. Numbering follows the order
// each qualifying value was first seen, tracked with an explicit order list
// rather than map iteration.
func BuildDictionary(values []string) *Dictionary {
	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	d := &Dictionary{
		forward: make(map[string]string),
		inverse: make(map[string]string),
	}
	for _, v := range order {
		if counts[v] >= dictMinCount && len(v) >= dictMinLen {
			ref := dictRefPrefix + strconv.Itoa(len(d.forward))
			d.forward[ref] = v
			d.inverse[v] = ref
		}
	}
	return d
}

// RefFor returns the reference token for a literal, if one was assigned.
func (d *Dictionary) RefFor(literal string) (string, bool) {
	ref, ok := d.inverse[literal]
	return ref, ok
}

// Lookup returns the literal for a reference token.
func (d *Dictionary) Lookup(ref string) (string, bool) {
	literal, ok := d.forward[ref]
	return literal, ok
}

// Len returns the number of dictionary entries.
func (d *Dictionary) Len() int {
	return len(d.forward)
}

// Forward returns the envelope representation: reference to literal.
func (d *Dictionary) Forward() map[string]string {
	return d.forward
}

// IsDictRef reports whether a cell value has the dictionary-reference shape.
func IsDictRef(s string) bool {
	return strings.HasPrefix(s, dictRefPrefix)
}
