package probe

import (
	"context"
	"sort"
	"strings"

	gnet "github.com/shirou/gopsutil/v3/net"
)

// virtualPrefixes lists interface name prefixes for virtual, VPN, bridge,
// and container interfaces. These come and go with software state and say
// nothing about the physical network path to the edge, so they are excluded.
var virtualPrefixes = []string{
	"utun", "tun", "tap", "ipsec", "ppp",
	"docker", "br-", "veth",
	"virbr", "vnet", "vmnet",
	"bridge",
	"lo",
	"wg",
	"vnic", "vboxnet",
}

// InterfacesProbe reports the physical network interfaces that are up.
// Local unicast addresses are recorded as a sensitive field: addresses
// behind NAT identify the internal network layout and are masked before
// they reach the artifact.
type InterfacesProbe struct{}

func NewInterfacesProbe() *InterfacesProbe { return &InterfacesProbe{} }

func (p *InterfacesProbe) ID() string       { return "interfaces" }
func (p *InterfacesProbe) Describe() string { return "physical network interface configuration" }

func (p *InterfacesProbe) Run(ctx context.Context) Result {
	ifaces, err := gnet.InterfacesWithContext(ctx)
	if err != nil {
		return Failf(err)
	}

	var names, addrs []string
	for _, iface := range ifaces {
		if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
			continue
		}
		if isVirtual(iface.Name) {
			continue
		}
		names = append(names, iface.Name)
		for _, a := range iface.Addrs {
			addrs = append(addrs, a.Addr)
		}
	}
	sort.Strings(names)
	sort.Strings(addrs)

	var r Result
	r.SetInt("up_count", int64(len(names)))
	r.Set("names", strings.Join(names, ","))
	r.SetSensitive("local_addrs", strings.Join(addrs, ","))
	return r
}

func isVirtual(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range virtualPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}
