package nowplaying

import (
	"flag"
	"time"

	"github.com/zachfi/zkit/pkg/util"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	Timeout time.Duration `yaml:"timeout,omitempty"` // bound on the whole extraction, connect included
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.DurationVar(&cfg.Timeout, util.PrefixConfig(prefix, "timeout"), defaultTimeout,
		"How long to wait for a stream to deliver its metadata block before giving up. Live streams stall; this must stay bounded.")
}
