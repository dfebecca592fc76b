package probe

import (
	"github.com/google/uuid"

	"github.com/hamed0406/edgedebug/internal/config"
)

// Registry returns the full ordered probe list for one run. The order is
// fixed and versioned with the tool; adding, removing, or reordering probes
// is a reviewed change because support triage depends on reproducing the
// exact sequence. The per-run client ID keeps resolver and edge caches from
// answering for a previous run.
func Registry(cfg config.Config) []Probe {
	clientID := uuid.NewString()
	return []Probe{
		NewSystemProbe(),
		NewInterfacesProbe(),
		NewDNSProbe(cfg.EdgeHost),
		NewResolverProbe(cfg.AnalyticsDomain, clientID),
		NewTLSProbe(cfg.EdgeHost),
		NewEdgeProbe(cfg.EdgeHost),
		NewTCPInfoProbe(cfg.EdgeHost),
		NewLatencyProbe(cfg.EdgeHost, cfg.AnalyticsDomain, clientID),
	}
}
