package aijson

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestExtractObjectIdempotent(t *testing.T) {
	clean := `{"storeName":"Campus Market","items":[{"itemName":"Milk","quantity":1}]}`
	wrapped := "Sure! Here is the JSON you asked for:\n```json\n" + clean + "\n```\nLet me know if you need anything else."

	a, err := ExtractObject(clean)
	if err != nil {
		t.Fatalf("clean input failed: %v", err)
	}
	b, err := ExtractObject(wrapped)
	if err != nil {
		t.Fatalf("wrapped input failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("normalizing wrapped text produced different object:\nclean=%v\nwrapped=%v", a, b)
	}
}

func TestExtractObjectFenceWithoutLanguageTag(t *testing.T) {
	raw := "```\n{\"tips\":[\"walk more\"]}\n```"
	obj, err := ExtractObject(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := obj["tips"]; !ok {
		t.Fatalf("missing tips key in %v", obj)
	}
}

func TestExtractObjectErrorSentinel(t *testing.T) {
	raw := `{"error": "Unable to process receipt", "items": []}`
	_, err := ExtractObject(raw)
	var sem *SemanticError
	if !errors.As(err, &sem) {
		t.Fatalf("want SemanticError, got %T (%v)", err, err)
	}
	if sem.Reason != "Unable to process receipt" {
		t.Fatalf("reason=%q", sem.Reason)
	}
}

func TestExtractObjectParseFailureKeepsRaw(t *testing.T) {
	raw := "I'm sorry, I can't read this image."
	_, err := ExtractObject(raw)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %T (%v)", err, err)
	}
	if pe.Raw != raw {
		t.Fatalf("ParseError.Raw=%q, want original text", pe.Raw)
	}
}

func TestExtractObjectSlicesSurroundingProse(t *testing.T) {
	raw := `The result is {"confidence": 88} - hope that helps!`
	obj, err := ExtractObject(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := Int(obj["confidence"]); !ok || got != 88 {
		t.Fatalf("confidence=%v", obj["confidence"])
	}
}

func TestIntCoercion(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{name: "float64", in: float64(42), want: 42, ok: true},
		{name: "numeric_string", in: "17", want: 17, ok: true},
		{name: "decimal_string", in: "2.9", want: 2, ok: true},
		{name: "empty_string", in: "", want: 0, ok: false},
		{name: "nil", in: nil, want: 0, ok: false},
		{name: "garbage", in: "lots", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Int(tc.in)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("Int(%v)=(%d,%v), want (%d,%v)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(150, 0, 100); got != 100 {
		t.Fatalf("ClampInt(150,0,100)=%d", got)
	}
	if got := ClampInt(-5, 0, 100); got != 0 {
		t.Fatalf("ClampInt(-5,0,100)=%d", got)
	}
	if got := ClampInt(70, 0, 100); got != 70 {
		t.Fatalf("ClampInt(70,0,100)=%d", got)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 120)
	got := Truncate(long, MaxFreeTextLen)
	if len([]rune(got)) != MaxFreeTextLen {
		t.Fatalf("len=%d, want %d", len([]rune(got)), MaxFreeTextLen)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("missing truncation marker: %q", got)
	}
	short := "2.5 kg"
	if Truncate(short, MaxFreeTextLen) != short {
		t.Fatalf("short strings must pass through unchanged")
	}
}
