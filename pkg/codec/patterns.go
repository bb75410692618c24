package codec

import (
	"sort"
	"strconv"
	"strings"
)

// patternThreshold is the minimum number of occurrences across a batch for a
// prefix or domain to earn a reference token.
const patternThreshold = 5

// maxPrefixLen bounds hyphen prefixes (including the hyphen) considered as
// pattern candidates.
const maxPrefixLen = 4

// Pattern reference token prefixes.
const (
	prefixRefToken = "$p"
	domainRefToken = "$d"
)

// patternEntry pairs a pattern literal with its reference token.
type patternEntry struct {
	literal string
	ref     string
}

// PatternSet holds the repeated literal prefixes and email domains detected
// in one batch's value pool. It is built per encode call and discarded with
// the envelope.
type PatternSet struct {
	prefixes []patternEntry
	domains  []patternEntry
}

// ExtractPatterns scans the pooled, normalized string values of one batch
// for two independent pattern families: short hyphen prefixes ("CUS-") and
// email domains ("@example.com"). Reference tokens are numbered in the order
// each distinct literal is first seen, via an explicit ordered scan so the
// numbering is identical across runs.
func ExtractPatterns(values []string) *PatternSet {
	prefixCounts := make(map[string]int)
	var prefixOrder []string
	domainCounts := make(map[string]int)
	var domainOrder []string

	for _, v := range values {
		if idx := strings.IndexByte(v, '-'); idx >= 0 {
			prefix := v[:idx+1]
			if len(prefix) <= maxPrefixLen {
				if prefixCounts[prefix] == 0 {
					prefixOrder = append(prefixOrder, prefix)
				}
				prefixCounts[prefix]++
			}
		}

		if idx := strings.IndexByte(v, '@'); idx >= 0 {
			domain := v[idx:]
			if domainCounts[domain] == 0 {
				domainOrder = append(domainOrder, domain)
			}
			domainCounts[domain]++
		}
	}

	ps := &PatternSet{}
	for _, prefix := range prefixOrder {
		if prefixCounts[prefix] >= patternThreshold {
			ps.prefixes = append(ps.prefixes, patternEntry{
				literal: prefix,
				ref:     prefixRefToken + strconv.Itoa(len(ps.prefixes)),
			})
		}
	}
	for _, domain := range domainOrder {
		if domainCounts[domain] >= patternThreshold {
			ps.domains = append(ps.domains, patternEntry{
				literal: domain,
				ref:     domainRefToken + strconv.Itoa(len(ps.domains)),
			})
		}
	}
	return ps
}

// Apply substitutes the first matching pattern in value. Values containing a
// hyphen get only the prefix scan; domain substitution is reserved for
// hyphen-free values containing '@'. At most one substitution happens per
// value.
func (ps *PatternSet) Apply(value string) string {
	if strings.IndexByte(value, '-') >= 0 {
		for _, entry := range ps.prefixes {
			if strings.HasPrefix(value, entry.literal) {
				return entry.ref + value[len(entry.literal):]
			}
		}
		return value
	}

	if strings.IndexByte(value, '@') >= 0 {
		for _, entry := range ps.domains {
			if strings.HasSuffix(value, entry.literal) {
				return value[:len(value)-len(entry.literal)] + entry.ref
			}
		}
	}
	return value
}

// Len returns the total number of pattern entries.
func (ps *PatternSet) Len() int {
	return len(ps.prefixes) + len(ps.domains)
}

// Map returns the envelope representation: pattern literal to reference
// token, covering both families.
func (ps *PatternSet) Map() map[string]string {
	m := make(map[string]string, ps.Len())
	for _, entry := range ps.prefixes {
		m[entry.literal] = entry.ref
	}
	for _, entry := range ps.domains {
		m[entry.literal] = entry.ref
	}
	return m
}

// ExpandPatterns reverses pattern substitution in a decoded cell. patterns
// is the envelope map (literal to reference). Each known reference token
// found in the value is replaced at its first occurrence. Tokens are scanned
// longest-first so "$p1" never clips a "$p12" occurrence.
func ExpandPatterns(value string, patterns map[string]string) string {
	if len(patterns) == 0 || !strings.ContainsRune(value, '$') {
		return value
	}

	refs := make([]string, 0, len(patterns))
	byRef := make(map[string]string, len(patterns))
	for literal, ref := range patterns {
		refs = append(refs, ref)
		byRef[ref] = literal
	}
	sort.Slice(refs, func(i, j int) bool {
		if len(refs[i]) != len(refs[j]) {
			return len(refs[i]) > len(refs[j])
		}
		return refs[i] < refs[j]
	})

	for _, ref := range refs {
		if strings.Contains(value, ref) {
			value = strings.Replace(value, ref, byRef[ref], 1)
		}
	}
	return value
}
