package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	EdgeHost        string        // edge host fetched for datacenter/XFF data, e.g. "www.fastly-debug.com"
	AnalyticsDomain string        // domain suffix for per-run cache-busting hostnames
	ProbeTimeout    time.Duration // hard per-probe deadline
	Concurrency     int           // max probes in flight at once
	LogDir          string        // when set, debug logs also rotate into this directory
}

func Default() Config {
	return Config{
		EdgeHost:        "www.fastly-debug.com",
		AnalyticsDomain: "u.fastly-analytics.com",
		ProbeTimeout:    10 * time.Second,
		Concurrency:     4,
	}
}

// FromEnv returns the default config with EDGEDEBUG_* overrides applied.
// The env surface lives here, in the CLI collaborator's layer; the pipeline
// itself only ever sees the explicit struct.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("EDGEDEBUG_EDGE_HOST"); v != "" {
		cfg.EdgeHost = v
	}
	if v := os.Getenv("EDGEDEBUG_ANALYTICS_DOMAIN"); v != "" {
		cfg.AnalyticsDomain = v
	}
	if v := os.Getenv("EDGEDEBUG_PROBE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.ProbeTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("EDGEDEBUG_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Concurrency = n
		}
	}
	cfg.LogDir = os.Getenv("EDGEDEBUG_LOG_DIR")

	return cfg
}
