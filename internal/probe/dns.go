package probe

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"
)

// DNSProbe resolves the edge host with the OS resolver and classifies the
// outcome. A host that does not resolve is diagnostic data, not an error:
// the classification is what support staff triage on.
type DNSProbe struct {
	Host     string
	Resolver *net.Resolver // nil means the OS resolver
}

func NewDNSProbe(host string) *DNSProbe {
	return &DNSProbe{Host: host}
}

func (p *DNSProbe) ID() string       { return "dns" }
func (p *DNSProbe) Describe() string { return "resolve " + p.Host + " with the OS resolver" }

func (p *DNSProbe) Run(ctx context.Context) Result {
	host := strings.TrimSpace(p.Host)

	var out Result
	out.Set("host", host)
	if host == "" || strings.Contains(host, "://") {
		out.Set("class", "INVALID_NAME")
		return out
	}

	r := p.Resolver
	if r == nil {
		r = &net.Resolver{}
	}

	ips, lookupErr := r.LookupIP(ctx, "ip", host)
	if len(ips) > 0 {
		sort.Slice(ips, func(i, j int) bool { return ips[i].String() < ips[j].String() })
		out.Set("resolved_ip", ips[0].String())
		out.SetInt("addr_count", int64(len(ips)))
	} else if lookupErr != nil {
		out.Set("resolver_error", lookupErr.Error())
	}

	if cname, err := r.LookupCNAME(ctx, host); err == nil && !strings.EqualFold(cname, host+".") {
		out.Set("cname", strings.TrimSuffix(cname, "."))
	}

	// A name without address records can still have a delegation; that
	// separates a stale record from a name that does not exist at all.
	hasNS := false
	if ns, err := r.LookupNS(ctx, host); err == nil && len(ns) > 0 {
		hasNS = true
		names := make([]string, 0, len(ns))
		for _, n := range ns {
			names = append(names, strings.TrimSuffix(n.Host, "."))
		}
		sort.Strings(names)
		out.Set("nameservers", strings.Join(names, ","))
	}

	out.Set("class", classify(len(ips) > 0, hasNS, lookupErr))
	return out
}

// classify maps a lookup outcome to the triage vocabulary:
// RESOLVES, NXDOMAIN, NO_A_RECORD, SERVFAIL_or_TIMEOUT.
func classify(hasAddrs, hasNS bool, err error) string {
	if hasAddrs {
		return "RESOLVES"
	}
	if err != nil {
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				if hasNS {
					return "NO_A_RECORD"
				}
				return "NXDOMAIN"
			}
			if de.IsTemporary || de.Timeout() {
				return "SERVFAIL_or_TIMEOUT"
			}
		}
		if hasNS {
			return "NO_A_RECORD"
		}
		return "SERVFAIL_or_TIMEOUT"
	}
	if hasNS {
		return "NO_A_RECORD"
	}
	return "NXDOMAIN"
}
