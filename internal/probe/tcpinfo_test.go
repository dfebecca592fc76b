package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTCPInfoProbe_ParsesTelemetry(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tcpinfo" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"cwnd": 40, "nexthop": "203.0.113.1", "rtt": 12500, "delta_retrans": 0, "total_retrans": 3}`))
	}))
	defer s.Close()

	p := NewTCPInfoProbe("www.example.net")
	p.BaseURL = s.URL
	out := p.Run(context.Background())
	if !out.OK {
		t.Fatalf("want success, got %+v", out)
	}
	if got := fieldValue(t, out, "cwnd"); got != "40" {
		t.Fatalf("cwnd = %q", got)
	}
	if got := fieldValue(t, out, "rtt_ms"); got != "12.5" {
		t.Fatalf("rtt_ms = %q", got)
	}
	if got := fieldValue(t, out, "nexthop"); got != "203.0.113.1" {
		t.Fatalf("nexthop = %q", got)
	}
	if got := fieldValue(t, out, "total_retrans"); got != "3" {
		t.Fatalf("total_retrans = %q", got)
	}
}

func TestTCPInfoProbe_NonOKStatusFails(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer s.Close()

	p := NewTCPInfoProbe("www.example.net")
	p.BaseURL = s.URL
	out := p.Run(context.Background())
	if out.OK {
		t.Fatalf("want failure, got %+v", out)
	}
}
