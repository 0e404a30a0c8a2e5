// internal/slug/slug.go

// Package slug derives stable URL slugs from raw queries.
package slug

import (
	"fmt"
	"hash/fnv"
	"strings"
)

const maxBaseLength = 48

// Make returns the slug for query: lowercased, non-alphanumeric runs
// collapsed to single hyphens, bounded length, plus a hash suffix so
// distinct queries that normalize identically still get distinct slugs.
// The same query always yields the same slug.
func Make(query string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(query) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	base := strings.Trim(sb.String(), "-")
	if len(base) > maxBaseLength {
		base = strings.Trim(base[:maxBaseLength], "-")
	}
	if base == "" {
		base = "page"
	}

	h := fnv.New32a()
	h.Write([]byte(query))
	return fmt.Sprintf("%s-%08x", base, h.Sum32())
}
