package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDictionaryThresholds(t *testing.T) {
	values := []string{
		// repeated and long enough: entry
		"New York", "New York",
		// single occurrence: no entry
		"once only",
		// too short: no entry
		"abc", "abc", "abc",
		// second entry
		"Chicago", "Chicago",
	}

	d := BuildDictionary(values)
	require.Equal(t, 2, d.Len())

	ref, ok := d.RefFor("New York")
	require.True(t, ok)
	assert.Equal(t, "@0", ref)

	ref, ok = d.RefFor("Chicago")
	require.True(t, ok)
	assert.Equal(t, "@1", ref)

	_, ok = d.RefFor("once only")
	assert.False(t, ok)
	_, ok = d.RefFor("abc")
	assert.False(t, ok)
}

func TestBuildDictionaryBoundaries(t *testing.T) {
	// Exactly 4 characters and exactly 2 occurrences qualify.
	d := BuildDictionary([]string{"abcd", "abcd"})
	assert.Equal(t, 1, d.Len())

	// Exactly 3 characters never qualifies.
	d = BuildDictionary([]string{"abc", "abc", "abc", "abc"})
	assert.Zero(t, d.Len())
}

func TestBuildDictionaryFirstDiscoveryOrder(t *testing.T) {
	d := BuildDictionary([]string{"zebra", "apple", "zebra", "apple"})

	ref, _ := d.RefFor("zebra")
	assert.Equal(t, "@0", ref)
	ref, _ = d.RefFor("apple")
	assert.Equal(t, "@1", ref)
}

func TestDictionaryLookup(t *testing.T) {
	d := BuildDictionary([]string{"Boston", "Boston"})

	literal, ok := d.Lookup("@0")
	require.True(t, ok)
	assert.Equal(t, "Boston", literal)

	_, ok = d.Lookup("@9")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"@0": "Boston"}, d.Forward())
}

func TestIsDictRef(t *testing.T) {
	assert.True(t, IsDictRef("@0"))
	assert.True(t, IsDictRef("@12"))
	assert.False(t, IsDictRef("jane@example.com"))
	assert.False(t, IsDictRef("plain"))
}
