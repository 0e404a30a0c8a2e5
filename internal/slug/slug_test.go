// internal/slug/slug_test.go
package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake_Deterministic(t *testing.T) {
	assert.Equal(t, Make("Best blender for smoothies"), Make("Best blender for smoothies"))
}

func TestMake_NormalizesPunctuationAndCase(t *testing.T) {
	got := Make("Which blender?! (For SMOOTHIES)")

	assert.True(t, strings.HasPrefix(got, "which-blender-for-smoothies-"), got)
	assert.NotContains(t, got, "?")
	assert.NotContains(t, got, "(")
	assert.Equal(t, strings.ToLower(got), got)
}

func TestMake_DistinctQueriesDistinctSlugs(t *testing.T) {
	// Same normalized base, different raw text.
	assert.NotEqual(t, Make("blender!"), Make("blender?"))
}

func TestMake_BoundedLength(t *testing.T) {
	got := Make(strings.Repeat("very long query ", 20))

	// base cap plus hyphen plus 8 hash chars
	assert.LessOrEqual(t, len(got), 57)
}

func TestMake_EmptyAndSymbolOnlyQueries(t *testing.T) {
	assert.True(t, strings.HasPrefix(Make(""), "page-"))
	assert.True(t, strings.HasPrefix(Make("???"), "page-"))
}
