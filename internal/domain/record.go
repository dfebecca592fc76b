package domain

import "github.com/hamed0406/edgedebug/internal/probe"

// Entry pairs a probe identifier with its outcome.
type Entry struct {
	Probe  string
	Result probe.Result
}

// Record is the full set of probe outcomes for one run, in registry order.
// There is exactly one entry per registered probe.
type Record struct {
	Entries []Entry
}

// Failed returns the entries whose probes did not complete.
func (r Record) Failed() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if !e.Result.OK {
			out = append(out, e)
		}
	}
	return out
}
