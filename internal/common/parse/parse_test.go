// internal/common/parse/parse_test.go
package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONInto_PlainObject(t *testing.T) {
	var out payload

	res := JSONInto(`{"name": "a", "count": 2}`, &out)

	assert.True(t, res.Ok)
	assert.Equal(t, "a", out.Name)
	assert.Equal(t, 2, out.Count)
}

func TestJSONInto_ObjectSurroundedByProse(t *testing.T) {
	var out payload

	res := JSONInto(`Sure, here is the result: {"name": "a", "count": 2} hope that helps!`, &out)

	assert.True(t, res.Ok)
	assert.Equal(t, "a", out.Name)
}

func TestJSONInto_CodeFencedObject(t *testing.T) {
	var out payload

	res := JSONInto("```json\n{\"name\": \"a\", \"count\": 2}\n```", &out)

	assert.True(t, res.Ok)
	assert.Equal(t, 2, out.Count)
}

func TestJSONInto_RepairsTrailingComma(t *testing.T) {
	var out payload

	res := JSONInto(`{"name": "a", "count": 2,}`, &out)

	assert.True(t, res.Ok)
	assert.Equal(t, "a", out.Name)
}

func TestJSONInto_RepairsTruncatedObject(t *testing.T) {
	var out payload

	res := JSONInto(`{"name": "a", "count": 2`, &out)

	assert.True(t, res.Ok)
	assert.Equal(t, "a", out.Name)
}

func TestJSONInto_NoObjectIsMalformed(t *testing.T) {
	var out payload

	res := JSONInto("I could not produce JSON for that.", &out)

	assert.False(t, res.Ok)
	assert.True(t, res.Malformed)
	assert.Error(t, res.Err)
}

func TestJSONInto_BracesInsideStringsIgnored(t *testing.T) {
	var out payload

	res := JSONInto(`{"name": "brace } in string", "count": 1}`, &out)

	assert.True(t, res.Ok)
	assert.Equal(t, "brace } in string", out.Name)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"html tag", "```html\n<div></div>\n```", "<div></div>"},
		{"json tag", "```json\n{}\n```", "{}"},
		{"surrounding whitespace", "  ```\n{}\n```  ", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.input))
		})
	}
}
