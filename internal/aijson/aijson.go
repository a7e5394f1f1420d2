// Package aijson recovers structured data from generative-model text output.
// Model responses are not guaranteed to be valid JSON: they arrive wrapped in
// fenced code blocks, padded with prose, or carrying an explicit error
// sentinel. Normalization is deterministic so the same raw text always yields
// the same object or the same typed failure.
package aijson

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError means the text could not be coerced into JSON at all. Raw keeps
// the original model output for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ai response is not valid json: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SemanticError means the model returned valid JSON but explicitly reported
// it could not analyze the input ("not a receipt", "too blurry").
type SemanticError struct {
	Reason string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("ai reported failure: %s", e.Reason)
}

// ValidationError means the JSON parsed but a required field is missing or of
// the wrong shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ai response invalid: field %q %s", e.Field, e.Reason)
}

// ExtractObject normalizes raw model text down to a JSON object:
// trim, strip a fenced code block if present, slice to the outermost
// {...} span, parse, then reject payloads carrying an "error" field.
func ExtractObject(raw string) (map[string]any, error) {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		// drop an optional language tag on the opening fence
		if idx := strings.IndexByte(cleaned, '\n'); idx >= 0 {
			first := strings.TrimSpace(cleaned[:idx])
			if first != "" && !strings.ContainsAny(first, "{}") {
				cleaned = cleaned[idx+1:]
			}
		}
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	// Discard leading/trailing prose the model added despite instructions.
	start := strings.IndexByte(cleaned, '{')
	end := strings.LastIndexByte(cleaned, '}')
	if start != -1 && end != -1 && end > start {
		cleaned = cleaned[start : end+1]
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	if v, ok := obj["error"]; ok {
		reason := Str(v)
		if reason == "" {
			reason = "unspecified"
		}
		return nil, &SemanticError{Reason: reason}
	}

	return obj, nil
}

// Str coerces a decoded JSON value to a string, or "" when it is nil.
func Str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int coerces a decoded JSON value to an int. JSON numbers decode as float64;
// numeric strings are tolerated since models frequently quote numbers.
func Int(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case float32:
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	case json.Number:
		if i64, err := t.Int64(); err == nil {
			return int(i64), true
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if f, err := json.Number(s).Float64(); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

// Float coerces a decoded JSON value to a float64.
func Float(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if f, err := json.Number(s).Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Array returns the value as a decoded JSON array.
func Array(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MaxFreeTextLen caps quantity-like free-text fields from the model.
const MaxFreeTextLen = 100

// Truncate shortens s to max characters, keeping a "..." marker when text was
// dropped.
func Truncate(s string, max int) string {
	if max <= 3 {
		max = 3
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
