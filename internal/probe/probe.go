package probe

import (
	"context"
	"strconv"
	"strings"
)

// Field is one named fact produced by a probe. Value is already in its
// canonical string form. Sensitive fields hold the masked value; the raw
// value never leaves the probe that produced it.
type Field struct {
	Name      string
	Value     string
	Sensitive bool
}

// Result is the outcome of a single probe run. On success Fields holds the
// collected facts in insertion order; on failure Err carries the reason.
type Result struct {
	OK     bool
	Fields []Field
	Err    string
}

// Probe is implemented by every diagnostic check (DNS, TLS, edge fetch, etc.).
// Run must honor ctx and release any connections it opens before returning.
type Probe interface {
	// ID is the stable key used in the artifact text. It never changes for
	// a given check across releases.
	ID() string
	// Describe is a one-line summary for debug logging.
	Describe() string
	Run(ctx context.Context) Result
}

// Fail builds a failure Result.
func Fail(msg string) Result {
	return Result{OK: false, Err: msg}
}

// Failf builds a failure Result from an error.
func Failf(err error) Result {
	return Result{OK: false, Err: err.Error()}
}

// Set appends a string field.
func (r *Result) Set(name, value string) {
	r.OK = true
	r.Fields = append(r.Fields, Field{Name: name, Value: value})
}

// SetInt appends an integer field in canonical decimal form.
func (r *Result) SetInt(name string, v int64) {
	r.Set(name, strconv.FormatInt(v, 10))
}

// SetFloat appends a float field. The 'f' format with shortest precision
// keeps rendering independent of locale and exponent heuristics.
func (r *Result) SetFloat(name string, v float64) {
	r.Set(name, strconv.FormatFloat(v, 'f', -1, 64))
}

// SetBool appends a boolean field.
func (r *Result) SetBool(name string, v bool) {
	r.Set(name, strconv.FormatBool(v))
}

// SetSensitive appends a field whose value must not appear in the artifact.
// The value is masked here, at construction, so nothing downstream can
// recover it.
func (r *Result) SetSensitive(name, value string) {
	r.OK = true
	r.Fields = append(r.Fields, Field{Name: name, Value: Mask(value), Sensitive: true})
}

// Mask hides the middle of a value, keeping one rune at each end so support
// staff can still tell two masked values apart. Values of three runes or
// fewer mask entirely. Slicing on runes keeps multi-byte values valid UTF-8.
func Mask(v string) string {
	runes := []rune(v)
	if len(runes) <= 3 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[0]) + "****" + string(runes[len(runes)-1])
}
