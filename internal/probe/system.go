package probe

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// SystemProbe reports host facts (OS, kernel, uptime) so support staff can
// correlate connectivity symptoms with the platform reporting them.
type SystemProbe struct{}

func NewSystemProbe() *SystemProbe { return &SystemProbe{} }

func (p *SystemProbe) ID() string       { return "system" }
func (p *SystemProbe) Describe() string { return "host and operating system facts" }

func (p *SystemProbe) Run(ctx context.Context) Result {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Failf(err)
	}

	var r Result
	r.Set("hostname", info.Hostname)
	r.Set("os", info.OS)
	r.Set("platform", info.Platform)
	r.Set("platform_version", info.PlatformVersion)
	r.Set("kernel_version", info.KernelVersion)
	r.Set("arch", runtime.GOARCH)
	r.SetInt("uptime_s", int64(info.Uptime))
	return r
}
