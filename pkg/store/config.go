package store

import (
	"flag"

	"github.com/zachfi/zkit/pkg/util"
)

const defaultPath = "stationd.db"

type Config struct {
	Path string `yaml:"path,omitempty"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Path, util.PrefixConfig(prefix, "path"), defaultPath, "Path of the sqlite database file")
}
