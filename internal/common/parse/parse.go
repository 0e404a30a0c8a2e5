// internal/common/parse/parse.go

// Package parse extracts structured JSON from free-text model responses.
// Every call site gets one place that decides fallback-vs-abort instead of
// re-implementing extraction.
package parse

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Result is the outcome of a tolerant parse. Exactly one of Ok/Malformed
// applies; Err carries the decode failure when Malformed.
type Result struct {
	Ok        bool
	Malformed bool
	Err       error
}

// JSONInto locates the first JSON object in text and unmarshals it into v.
// Code fences are stripped first; if plain unmarshal fails on a syntax
// error the payload is repaired and retried before giving up.
func JSONInto(text string, v interface{}) Result {
	payload := extractObject(StripCodeFences(text))
	if payload == "" {
		return Result{Malformed: true, Err: errNoObject}
	}

	err := json.Unmarshal([]byte(payload), v)
	if err == nil {
		return Result{Ok: true}
	}

	if _, ok := err.(*json.SyntaxError); ok {
		fixed, repairErr := jsonrepair.JSONRepair(payload)
		if repairErr != nil {
			return Result{Malformed: true, Err: repairErr}
		}
		if err := json.Unmarshal([]byte(fixed), v); err != nil {
			return Result{Malformed: true, Err: err}
		}
		return Result{Ok: true}
	}

	return Result{Malformed: true, Err: err}
}

type noObjectError struct{}

func (noObjectError) Error() string { return "no JSON object found in response text" }

var errNoObject = noObjectError{}

// StripCodeFences removes a surrounding markdown code fence, if any.
func StripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop an optional language tag on the opening fence line.
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(trimmed[:idx])
		if firstLine == "" || isLanguageTag(firstLine) {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func isLanguageTag(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return len(s) <= 12
}

// extractObject returns the first balanced {...} block in text, respecting
// string literals and escapes.
func extractObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	// Unbalanced: hand the remainder to the repair pass.
	return text[start:]
}
