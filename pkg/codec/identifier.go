package codec

import (
	"sort"
	"strconv"

	stringpool "github.com/dhruvd-1/semtok/pkg/strings"
)

// base62Alphabet supplies single-character codes for the first 62 properties.
const base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// multiCharPrefix starts the fallback codes assigned past the alphabet.
const multiCharPrefix = "p"

// PropertyTable is a bijective mapping between ontology property names and
// compact schema codes. It is built once from the full sorted property set
// and never mutated, so concurrent reads need no synchronization.
type PropertyTable struct {
	toCode map[string]string
	toName map[string]string
}

// NewPropertyTable builds the table from the given property names. Names are
// sorted before assignment so the same property set always yields the same
// codes. Properties beyond the 62-character alphabet receive "p<index>"
// codes, where index is the property's position in sorted order.
func NewPropertyTable(names []string) *PropertyTable {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	t := &PropertyTable{
		toCode: make(map[string]string, len(sorted)),
		toName: make(map[string]string, len(sorted)),
	}

	for idx, name := range sorted {
		if _, dup := t.toCode[name]; dup {
			continue
		}
		var code string
		if idx < len(base62Alphabet) {
			code = string(base62Alphabet[idx])
		} else {
			code = stringpool.Concat(multiCharPrefix, strconv.Itoa(idx))
		}
		t.toCode[name] = code
		t.toName[code] = name
	}

	return t
}

// Encode returns the code for a property name. The second return is false
// for properties the table was not built with; that is a miss for the caller
// to handle, not an error.
func (t *PropertyTable) Encode(name string) (string, bool) {
	code, ok := t.toCode[name]
	return code, ok
}

// Decode returns the property name for a code, or false for unknown codes.
func (t *PropertyTable) Decode(code string) (string, bool) {
	name, ok := t.toName[code]
	return name, ok
}

// Len returns the number of mapped properties.
func (t *PropertyTable) Len() int {
	return len(t.toCode)
}
