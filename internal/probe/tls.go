package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"time"
)

// TLSProbe performs a TLS handshake with the edge host and records what was
// negotiated. The handshake itself skips verification and the chain is
// verified separately: a broken chain is exactly the kind of fact this tool
// exists to capture, so it must not turn the probe into a failure.
type TLSProbe struct {
	Host string
	Addr string // when set, overrides the dial address (tests); default Host:443
}

func NewTLSProbe(host string) *TLSProbe {
	return &TLSProbe{Host: host}
}

func (p *TLSProbe) ID() string       { return "tls" }
func (p *TLSProbe) Describe() string { return "TLS handshake with " + p.Host }

func (p *TLSProbe) Run(ctx context.Context) Result {
	addr := p.Addr
	if addr == "" {
		addr = net.JoinHostPort(p.Host, "443")
	}

	dialer := &tls.Dialer{
		Config: &tls.Config{
			ServerName:         p.Host,
			InsecureSkipVerify: true,
			NextProtos:         []string{"h2", "http/1.1"},
		},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Failf(err)
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()

	var r Result
	r.Set("version", tls.VersionName(state.Version))
	r.Set("cipher", tls.CipherSuiteName(state.CipherSuite))
	r.Set("alpn", state.NegotiatedProtocol)

	if len(state.PeerCertificates) > 0 {
		leaf := state.PeerCertificates[0]
		r.Set("subject_cn", leaf.Subject.CommonName)
		r.Set("issuer", leaf.Issuer.CommonName)
		r.Set("not_after", leaf.NotAfter.UTC().Format(time.RFC3339))
		r.SetBool("chain_verified", verifyChain(p.Host, state.PeerCertificates))
	}
	return r
}

func verifyChain(host string, certs []*x509.Certificate) bool {
	intermediates := x509.NewCertPool()
	for _, c := range certs[1:] {
		intermediates.AddCert(c)
	}
	_, err := certs[0].Verify(x509.VerifyOptions{
		DNSName:       host,
		Intermediates: intermediates,
	})
	return err == nil
}
