package probe

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestResult_TypedSetters(t *testing.T) {
	var r Result
	r.Set("name", "value")
	r.SetInt("count", 42)
	r.SetFloat("ratio", 1.5)
	r.SetBool("ok", true)

	want := []Field{
		{Name: "name", Value: "value"},
		{Name: "count", Value: "42"},
		{Name: "ratio", Value: "1.5"},
		{Name: "ok", Value: "true"},
	}
	if !r.OK {
		t.Fatalf("setters should mark the result OK")
	}
	if len(r.Fields) != len(want) {
		t.Fatalf("want %d fields, got %d", len(want), len(r.Fields))
	}
	for i, f := range want {
		if r.Fields[i] != f {
			t.Fatalf("field %d: want %+v, got %+v", i, f, r.Fields[i])
		}
	}
}

func TestResult_SetSensitiveMasksAtConstruction(t *testing.T) {
	var r Result
	r.SetSensitive("local_addrs", "192.168.1.23/24")

	f := r.Fields[0]
	if !f.Sensitive {
		t.Fatalf("field should be marked sensitive")
	}
	if strings.Contains(f.Value, "192.168.1.23") {
		t.Fatalf("raw value leaked into the result: %q", f.Value)
	}
	if f.Value != "1****4" {
		t.Fatalf("unexpected mask: %q", f.Value)
	}
}

func TestMask_ShortValues(t *testing.T) {
	cases := map[string]string{
		"":     "",
		"a":    "*",
		"abc":  "***",
		"abcd": "a****d",
	}
	for in, want := range cases {
		if got := Mask(in); got != want {
			t.Fatalf("Mask(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMask_MultiByteStaysValidUTF8(t *testing.T) {
	cases := map[string]string{
		"münchen.local": "m****l",
		"héç":           "***",
		"日本語ホスト":        "日****ト",
	}
	for in, want := range cases {
		got := Mask(in)
		if got != want {
			t.Fatalf("Mask(%q) = %q, want %q", in, got, want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("Mask(%q) produced invalid UTF-8: %q", in, got)
		}
	}
}

func TestFail(t *testing.T) {
	r := Fail("boom")
	if r.OK || r.Err != "boom" || len(r.Fields) != 0 {
		t.Fatalf("unexpected failure result: %+v", r)
	}
}
