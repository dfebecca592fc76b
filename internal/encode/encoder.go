// Package encode renders a diagnostic record into the canonical artifact
// text shared with support staff.
//
// Canonical grammar:
//
//	artifact := header body trailer
//	header   := "edgedebug v" version " sha256:" hexdigest "\n"
//	body     := line* | "no diagnostics collected\n"
//	line     := probeID "." field "=" value "\n"
//	trailer  := (probeID ": FAILED - " message "\n")*
//
// Probes appear in record (registry) order; fields within a probe are sorted
// lexicographically by name. The digest is SHA-256 over the body and trailer
// bytes, so support staff can verify a pasted artifact with sha256sum and
// compare two reports for equality without diffing the full text. Identical
// record content always yields identical bytes.
package encode

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/hamed0406/edgedebug/internal/domain"
	"github.com/hamed0406/edgedebug/internal/probe"
	"github.com/hamed0406/edgedebug/internal/version"
)

// Canonicalization invariant violations. These are programming defects in a
// probe, not runtime conditions: they break the determinism guarantee and
// the caller must treat them as fatal.
var (
	ErrDuplicateField   = fmt.Errorf("duplicate field name within one probe result")
	ErrUnencodableValue = fmt.Errorf("field value is not line-stable")
)

// Artifact is the encoded form of a record.
type Artifact struct {
	Digest string // hex SHA-256 over body+trailer
	Body   string
	Text   string // header + body + trailer
}

// Transport returns the paste-safe urlsafe-base64 form of the artifact,
// the form written when support asks for a file.
func (a Artifact) Transport() string {
	return base64.URLEncoding.EncodeToString([]byte(a.Text))
}

// Encode canonicalizes and digests a record. It only fails on invariant
// violations; an empty record encodes to a placeholder body, since a
// zero-probe registry is an operator configuration issue, not a fault.
func Encode(rec domain.Record) (Artifact, error) {
	var b strings.Builder

	for _, e := range rec.Entries {
		if !e.Result.OK {
			continue
		}
		fields, err := sortedFields(e.Probe, e.Result)
		if err != nil {
			return Artifact{}, err
		}
		for _, f := range fields {
			fmt.Fprintf(&b, "%s.%s=%s\n", e.Probe, f.Name, f.Value)
		}
	}

	for _, e := range rec.Failed() {
		if err := checkValue(e.Probe, e.Result.Err); err != nil {
			return Artifact{}, err
		}
		fmt.Fprintf(&b, "%s: FAILED - %s\n", e.Probe, e.Result.Err)
	}

	body := b.String()
	if body == "" {
		body = "no diagnostics collected\n"
	}

	sum := sha256.Sum256([]byte(body))
	digest := hex.EncodeToString(sum[:])

	header := fmt.Sprintf("edgedebug v%s sha256:%s\n", version.String, digest)
	return Artifact{
		Digest: digest,
		Body:   body,
		Text:   header + body,
	}, nil
}

func sortedFields(probeID string, r probe.Result) ([]probe.Field, error) {
	fields := make([]probe.Field, len(r.Fields))
	copy(fields, r.Fields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	for i, f := range fields {
		if i > 0 && fields[i-1].Name == f.Name {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateField, probeID, f.Name)
		}
		if err := checkValue(probeID, f.Name); err != nil {
			return nil, err
		}
		if err := checkValue(probeID, f.Value); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

func checkValue(probeID, s string) error {
	if strings.ContainsAny(s, "\n\r") {
		return fmt.Errorf("%w: probe %s", ErrUnencodableValue, probeID)
	}
	return nil
}
