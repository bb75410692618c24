package codec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatValues(format string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf(format, i)
	}
	return out
}

func TestExtractPatternsPrefixThreshold(t *testing.T) {
	// 4 occurrences: below threshold, no pattern.
	ps := ExtractPatterns(repeatValues("INV-%03d", 4))
	assert.Zero(t, ps.Len())

	// 5 occurrences: always a pattern.
	ps = ExtractPatterns(repeatValues("INV-%03d", 5))
	require.Equal(t, 1, ps.Len())
	assert.Equal(t, map[string]string{"INV-": "$p0"}, ps.Map())
}

func TestExtractPatternsPrefixLength(t *testing.T) {
	// "ORDER-" is longer than 4 characters including the hyphen and is
	// never a candidate, however often it recurs.
	ps := ExtractPatterns(repeatValues("ORDER-%03d", 10))
	assert.Zero(t, ps.Len())
}

func TestExtractPatternsDomains(t *testing.T) {
	values := repeatValues("user%d@example.com", 5)
	ps := ExtractPatterns(values)

	require.Equal(t, 1, ps.Len())
	assert.Equal(t, map[string]string{"@example.com": "$d0"}, ps.Map())
}

func TestExtractPatternsFirstDiscoveryOrder(t *testing.T) {
	var values []string
	// "ZZZ-" is discovered before "AAA-"; numbering follows discovery,
	// not sort order.
	values = append(values, repeatValues("ZZZ-%d", 5)...)
	values = append(values, repeatValues("AAA-%d", 5)...)

	ps := ExtractPatterns(values)
	assert.Equal(t, map[string]string{"ZZZ-": "$p0", "AAA-": "$p1"}, ps.Map())
}

func TestExtractPatternsIndependentNumbering(t *testing.T) {
	var values []string
	values = append(values, repeatValues("CUS-%03d", 5)...)
	values = append(values, repeatValues("u%d@mail.net", 5)...)

	ps := ExtractPatterns(values)
	assert.Equal(t, map[string]string{
		"CUS-":      "$p0",
		"@mail.net": "$d0",
	}, ps.Map())
}

func TestApplyPrefix(t *testing.T) {
	ps := ExtractPatterns(repeatValues("CUS-%03d", 5))

	assert.Equal(t, "$p0001", ps.Apply("CUS-001"))
	assert.Equal(t, "ORD-001", ps.Apply("ORD-001"))
	assert.Equal(t, "plain", ps.Apply("plain"))
}

func TestApplyDomain(t *testing.T) {
	ps := ExtractPatterns(repeatValues("user%d@example.com", 5))

	assert.Equal(t, "jane$d0", ps.Apply("jane@example.com"))
	assert.Equal(t, "jane@other.org", ps.Apply("jane@other.org"))
}

func TestApplyPrefixExcludesDomain(t *testing.T) {
	var values []string
	values = append(values, repeatValues("user%d@example.com", 5)...)
	ps := ExtractPatterns(values)

	// A hyphen routes the value to the prefix scan only; the known
	// domain is not applied.
	assert.Equal(t, "mary-jane@example.com", ps.Apply("mary-jane@example.com"))
}

func TestExpandPatterns(t *testing.T) {
	patterns := map[string]string{"CUS-": "$p0", "@example.com": "$d0"}

	assert.Equal(t, "CUS-001", ExpandPatterns("$p0001", patterns))
	assert.Equal(t, "jane@example.com", ExpandPatterns("jane$d0", patterns))
	assert.Equal(t, "plain", ExpandPatterns("plain", patterns))
	assert.Equal(t, "no refs", ExpandPatterns("no refs", nil))
}

func TestExpandPatternsLongestTokenFirst(t *testing.T) {
	// "$p1" must not clip a "$p12" occurrence.
	patterns := map[string]string{
		"AAA-": "$p1",
		"BBB-": "$p12",
	}
	assert.Equal(t, "BBB-x", ExpandPatterns("$p12x", patterns))
}
