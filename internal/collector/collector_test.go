package collector

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/edgedebug/internal/probe"
)

// fakeProbe returns a canned result after an optional delay. A nil run func
// with block set simulates a probe that ignores its ctx entirely.
type fakeProbe struct {
	id    string
	delay time.Duration
	block bool
	panic bool
}

func (f *fakeProbe) ID() string       { return f.id }
func (f *fakeProbe) Describe() string { return "fake probe " + f.id }

func (f *fakeProbe) Run(ctx context.Context) probe.Result {
	if f.panic {
		panic("fake probe exploded")
	}
	if f.block {
		select {} // never returns, never looks at ctx
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	var r probe.Result
	r.Set("id", f.id)
	return r
}

func TestCollect_RegistryOrderUnderConcurrency(t *testing.T) {
	// Later probes finish first; the record must still be in registry order.
	probes := []probe.Probe{
		&fakeProbe{id: "slow", delay: 80 * time.Millisecond},
		&fakeProbe{id: "medium", delay: 40 * time.Millisecond},
		&fakeProbe{id: "fast"},
	}
	c := New(zap.NewNop(), probes, time.Second, 3)
	rec, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"slow", "medium", "fast"}
	for i, name := range want {
		if rec.Entries[i].Probe != name {
			t.Fatalf("entry %d: want %q, got %q", i, name, rec.Entries[i].Probe)
		}
		if !rec.Entries[i].Result.OK {
			t.Fatalf("entry %d failed: %+v", i, rec.Entries[i].Result)
		}
	}
}

func TestCollect_HangingProbeForcedToTimeout(t *testing.T) {
	probes := []probe.Probe{
		&fakeProbe{id: "hang", block: true},
		&fakeProbe{id: "after"},
	}
	c := New(zap.NewNop(), probes, 50*time.Millisecond, 1)

	start := time.Now()
	rec, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("collection should be bounded by probes x timeout, took %s", elapsed)
	}
	if rec.Entries[0].Result.OK {
		t.Fatalf("hanging probe should be a failure")
	}
	if !strings.Contains(rec.Entries[0].Result.Err, "timed out") {
		t.Fatalf("want timeout message, got %q", rec.Entries[0].Result.Err)
	}
	if !rec.Entries[1].Result.OK {
		t.Fatalf("following probe should still run: %+v", rec.Entries[1].Result)
	}
}

func TestCollect_PanicIsolatedToOneProbe(t *testing.T) {
	probes := []probe.Probe{
		&fakeProbe{id: "boom", panic: true},
		&fakeProbe{id: "fine"},
	}
	c := New(zap.NewNop(), probes, time.Second, 2)
	rec, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Entries[0].Result.OK {
		t.Fatalf("panicking probe should be a failure")
	}
	if !strings.Contains(rec.Entries[0].Result.Err, "panicked") {
		t.Fatalf("want panic message, got %q", rec.Entries[0].Result.Err)
	}
	if !rec.Entries[1].Result.OK {
		t.Fatalf("other probe should succeed")
	}
}

func TestCollect_CancellationReturnsError(t *testing.T) {
	probes := []probe.Probe{
		&fakeProbe{id: "slow", delay: 5 * time.Second},
	}
	c := New(zap.NewNop(), probes, 10*time.Second, 1)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := c.Collect(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestCollect_EmptyRegistry(t *testing.T) {
	c := New(zap.NewNop(), nil, time.Second, 1)
	rec, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Entries) != 0 {
		t.Fatalf("want empty record, got %+v", rec)
	}
}
