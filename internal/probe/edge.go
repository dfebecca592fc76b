package probe

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"time"
)

// xffCell extracts the X-Forwarded-For chain from the edge debug page body.
var xffCell = regexp.MustCompile(`xff">([^<]*)`)

// EdgeProbe fetches the edge debug page and records which datacenter served
// it. The datacenter code is the last three characters of X-Served-By.
type EdgeProbe struct {
	Host    string
	BaseURL string // when set, overrides the scheme and host (tests)
}

func NewEdgeProbe(host string) *EdgeProbe {
	return &EdgeProbe{Host: host}
}

func (p *EdgeProbe) ID() string       { return "edge" }
func (p *EdgeProbe) Describe() string { return "fetch edge debug page from " + p.Host }

func (p *EdgeProbe) Run(ctx context.Context) Result {
	base := p.BaseURL
	if base == "" {
		base = "https://" + p.Host
	}

	client, closeIdle := newClient()
	defer closeIdle()

	req, err := newRequest(ctx, http.MethodGet, base+"/")
	if err != nil {
		return Failf(err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return Failf(err)
	}
	defer resp.Body.Close()
	// Do returns once the headers are in; this is first-byte latency, not
	// transfer time.
	latency := time.Since(start).Milliseconds()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Failf(err)
	}

	var r Result
	r.SetInt("status", int64(resp.StatusCode))
	r.SetInt("latency_ms", latency)
	if xsb := resp.Header.Get("X-Served-By"); len(xsb) >= 3 {
		r.Set("datacenter", xsb[len(xsb)-3:])
	}
	if m := xffCell.FindSubmatch(body); m != nil {
		r.Set("xff", string(m[1]))
	}
	return r
}
