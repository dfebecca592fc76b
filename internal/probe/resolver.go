package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ResolverProbe asks the analytics endpoint which DNS resolver reached it.
// The request goes to a per-run unique hostname so no resolver or edge cache
// can answer from a previous run.
type ResolverProbe struct {
	Domain   string // analytics domain suffix
	ClientID string // per-run unique label
	BaseURL  string // when set, overrides the scheme and host (tests)
}

func NewResolverProbe(domain, clientID string) *ResolverProbe {
	return &ResolverProbe{Domain: domain, ClientID: clientID}
}

func (p *ResolverProbe) ID() string       { return "resolver" }
func (p *ResolverProbe) Describe() string { return "DNS resolver and client info from " + p.Domain }

type resolverReply struct {
	Resolver struct {
		IP       string `json:"ip"`
		ASName   string `json:"as_name"`
		ASNumber int64  `json:"as_number"`
		Country  string `json:"cc"`
	} `json:"dns_resolver_info"`
	Client struct {
		IP       string `json:"ip"`
		ASName   string `json:"as_name"`
		ASNumber int64  `json:"as_number"`
	} `json:"client_ip_info"`
}

func (p *ResolverProbe) Run(ctx context.Context) Result {
	base := p.BaseURL
	if base == "" {
		base = "https://" + p.ClientID + "." + p.Domain
	}

	client, closeIdle := newClient()
	defer closeIdle()

	req, err := newRequest(ctx, http.MethodGet, base+"/debug_resolver")
	if err != nil {
		return Failf(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Failf(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Fail(fmt.Sprintf("debug_resolver returned %s", resp.Status))
	}

	var reply resolverReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&reply); err != nil {
		return Failf(fmt.Errorf("decode debug_resolver reply: %w", err))
	}

	var r Result
	r.Set("resolver_ip", reply.Resolver.IP)
	r.Set("resolver_as_name", reply.Resolver.ASName)
	r.SetInt("resolver_as_number", reply.Resolver.ASNumber)
	r.Set("resolver_country", reply.Resolver.Country)
	// The client address identifies the reporting machine's network; the
	// edge side can recover it from its own logs, so it ships masked.
	r.SetSensitive("client_ip", reply.Client.IP)
	r.Set("client_as_name", reply.Client.ASName)
	r.SetInt("client_as_number", reply.Client.ASNumber)
	return r
}
