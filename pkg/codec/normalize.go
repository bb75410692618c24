package codec

import (
	"strings"

	stringpool "github.com/dhruvd-1/semtok/pkg/strings"
)

// maxTimestampLen caps compacted date-time strings at YYYYMMDDHHMMSS.
const maxTimestampLen = 14

// NormalizeValue compacts date and timestamp shaped strings at encode time.
// Non-string values pass through unchanged.
//
//	2024-01-15           -> 20240115
//	2024-01-15T10:30:45  -> 20240115103045
//
// The transform is NOT reversed at decode time; a round trip of such a field
// yields the compacted literal, not the original. See the package doc for
// the rationale.
func NormalizeValue(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}

	// Calendar-date shape: exactly 10 chars with hyphens at 4 and 7.
	if len(s) == 10 && s[4] == '-' && s[7] == '-' {
		return strings.ReplaceAll(s, "-", "")
	}

	// Date-time shape: contains both 'T' and ':'.
	if strings.ContainsRune(s, 'T') && strings.ContainsRune(s, ':') {
		compact := stringpool.BuildString(func(b *stringpool.Builder) {
			for i := 0; i < len(s) && b.Len() < maxTimestampLen; i++ {
				switch s[i] {
				case '-', 'T', ':', '.':
				default:
					_ = b.WriteByte(s[i])
				}
			}
		})
		return compact
	}

	return s
}
