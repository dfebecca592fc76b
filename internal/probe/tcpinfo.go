package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// TCPInfoProbe fetches the edge's kernel TCP telemetry for the connection it
// sees from this client. Congestion window and retransmit counters from the
// server side are often the fastest way to spot a lossy path.
type TCPInfoProbe struct {
	Host    string
	BaseURL string // when set, overrides the scheme and host (tests)
}

func NewTCPInfoProbe(host string) *TCPInfoProbe {
	return &TCPInfoProbe{Host: host}
}

func (p *TCPInfoProbe) ID() string       { return "tcpinfo" }
func (p *TCPInfoProbe) Describe() string { return "edge-side TCP telemetry from " + p.Host }

type tcpInfoReply struct {
	CWND         int64   `json:"cwnd"`
	NextHop      string  `json:"nexthop"`
	RTT          float64 `json:"rtt"` // microseconds
	DeltaRetrans int64   `json:"delta_retrans"`
	TotalRetrans int64   `json:"total_retrans"`
}

func (p *TCPInfoProbe) Run(ctx context.Context) Result {
	base := p.BaseURL
	if base == "" {
		base = "https://" + p.Host
	}

	client, closeIdle := newClient()
	defer closeIdle()

	req, err := newRequest(ctx, http.MethodGet, base+"/tcpinfo")
	if err != nil {
		return Failf(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Failf(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Fail(fmt.Sprintf("tcpinfo returned %s", resp.Status))
	}

	var reply tcpInfoReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&reply); err != nil {
		return Failf(fmt.Errorf("decode tcpinfo reply: %w", err))
	}

	var r Result
	r.SetInt("cwnd", reply.CWND)
	r.Set("nexthop", reply.NextHop)
	r.SetFloat("rtt_ms", reply.RTT/1000)
	r.SetInt("delta_retrans", reply.DeltaRetrans)
	r.SetInt("total_retrans", reply.TotalRetrans)
	return r
}
