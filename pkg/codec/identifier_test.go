package codec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvd-1/semtok/pkg/ontology"
)

func TestPropertyTableRoundTrip(t *testing.T) {
	ont := ontology.Default()
	table := NewPropertyTable(ont.PropertyNames())

	for _, name := range ont.PropertyNames() {
		code, ok := table.Encode(name)
		require.True(t, ok, "property %s must have a code", name)

		decoded, ok := table.Decode(code)
		require.True(t, ok, "code %s must decode", code)
		assert.Equal(t, name, decoded)
	}
}

func TestPropertyTableIsBijective(t *testing.T) {
	table := NewPropertyTable([]string{"beta", "alpha", "gamma"})

	seen := make(map[string]string)
	for _, name := range []string{"alpha", "beta", "gamma"} {
		code, ok := table.Encode(name)
		require.True(t, ok)
		prev, dup := seen[code]
		require.False(t, dup, "code %s assigned to both %s and %s", code, prev, name)
		seen[code] = name
	}
	assert.Equal(t, 3, table.Len())
}

func TestPropertyTableSortedAssignment(t *testing.T) {
	// Codes follow sorted name order regardless of input order.
	table := NewPropertyTable([]string{"zulu", "alpha", "mike"})

	code, _ := table.Encode("alpha")
	assert.Equal(t, "0", code)
	code, _ = table.Encode("mike")
	assert.Equal(t, "1", code)
	code, _ = table.Encode("zulu")
	assert.Equal(t, "2", code)
}

func TestPropertyTableBeyondAlphabet(t *testing.T) {
	names := make([]string, 70)
	for i := range names {
		names[i] = fmt.Sprintf("prop%02d", i)
	}
	table := NewPropertyTable(names)

	// prop62 is the 63rd property in sorted order.
	code, ok := table.Encode("prop62")
	require.True(t, ok)
	assert.Equal(t, "p62", code)

	for _, name := range names {
		code, ok := table.Encode(name)
		require.True(t, ok)
		decoded, ok := table.Decode(code)
		require.True(t, ok)
		assert.Equal(t, name, decoded)
	}
}

func TestPropertyTableMiss(t *testing.T) {
	table := NewPropertyTable([]string{"email"})

	_, ok := table.Encode("neverBuilt")
	assert.False(t, ok, "absent property is a miss, not an error")

	_, ok = table.Decode("Z")
	assert.False(t, ok)
}

func TestPropertyTableDuplicateNames(t *testing.T) {
	table := NewPropertyTable([]string{"email", "email", "name"})
	assert.Equal(t, 2, table.Len())
}
