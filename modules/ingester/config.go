package ingester

import (
	"flag"
	"time"

	"github.com/zachfi/zkit/pkg/util"
)

const (
	defaultRequestTimeout = 30 * time.Second
)

type Config struct {
	SourceURL      string        `yaml:"source-url,omitempty"`      // directory mirror base URL; empty discovers one
	DiscoverMirror bool          `yaml:"discover-mirror,omitempty"` // ask the directory for an available mirror at startup
	Interval       time.Duration `yaml:"interval,omitempty"`        // re-run the ingest pass this often; 0 runs once
	RequestTimeout time.Duration `yaml:"request-timeout,omitempty"` // per directory request
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.SourceURL, util.PrefixConfig(prefix, "source-url"), "", "Base URL of the station directory mirror. Empty uses a default mirror, or discovery when discover-mirror is set.")
	f.BoolVar(&cfg.DiscoverMirror, util.PrefixConfig(prefix, "discover-mirror"), false, "Discover an available directory mirror at startup instead of using source-url.")
	f.DurationVar(&cfg.Interval, util.PrefixConfig(prefix, "interval"), 0, "Interval between ingest passes. 0 runs a single pass at startup.")
	f.DurationVar(&cfg.RequestTimeout, util.PrefixConfig(prefix, "request-timeout"), defaultRequestTimeout, "Timeout for each directory request.")
}
