package probe

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"
)

// LatencyProbe estimates transfer latency to the edge. A no-content request
// to the analytics host measures connection overhead first; the timed fetch
// of the edge test object is then reported both raw and with that baseline
// subtracted, so support staff can separate setup cost from transfer cost.
type LatencyProbe struct {
	EdgeHost string
	Domain   string
	ClientID string

	BaselineURL string // when set, overrides the analytics URL (tests)
	ObjectURL   string // when set, overrides the test object URL (tests)
}

func NewLatencyProbe(edgeHost, domain, clientID string) *LatencyProbe {
	return &LatencyProbe{EdgeHost: edgeHost, Domain: domain, ClientID: clientID}
}

func (p *LatencyProbe) ID() string       { return "latency" }
func (p *LatencyProbe) Describe() string { return "timed object fetch from " + p.EdgeHost }

func (p *LatencyProbe) Run(ctx context.Context) Result {
	baselineURL := p.BaselineURL
	if baselineURL == "" {
		baselineURL = "https://" + p.ClientID + "." + p.Domain + "/generate_204"
	}
	objectURL := p.ObjectURL
	if objectURL == "" {
		objectURL = "https://" + p.EdgeHost + "/testobject.svg?unique=" + p.ClientID
	}

	client, closeIdle := newClient()
	defer closeIdle()

	baseline, _, err := timedGet(ctx, client, baselineURL)
	if err != nil {
		return Failf(err)
	}
	object, size, err := timedGet(ctx, client, objectURL)
	if err != nil {
		return Failf(err)
	}

	// The baseline only helps when it is actually smaller than the full
	// fetch; clock jitter can make it come out larger on fast links.
	adjusted := object - baseline
	if object <= baseline {
		adjusted = object
	}

	var r Result
	r.SetInt("baseline_ms", baseline.Milliseconds())
	r.SetInt("object_ms", object.Milliseconds())
	r.SetInt("adjusted_ms", adjusted.Milliseconds())
	r.SetInt("object_bytes", size)
	if secs := adjusted.Seconds(); secs > 0 && size > 0 {
		mbps := float64(size*8) / secs / 1e6
		r.SetFloat("bandwidth_mbps", math.Round(mbps*100)/100)
	}
	return r
}

func timedGet(ctx context.Context, client *http.Client, url string) (time.Duration, int64, error) {
	req, err := newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return 0, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	size, err := io.Copy(io.Discard, io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return 0, 0, err
	}
	return time.Since(start), size, nil
}
