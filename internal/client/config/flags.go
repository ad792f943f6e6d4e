package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the RetailMediaAI server
//	-s string   storage backend: sqlite, memory, redis or postgres
//	-d string   storage DSN, file path or address
//	-i int      activity heartbeat interval in seconds
//	-l string   log level
//
// Only the flags above are taken from os.Args (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the server")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (sqlite|memory|redis|postgres)")
	fs.StringVar(&cfg.DSN, "d", cfg.DSN, "storage DSN")
	heartbeat := fs.Int("i", int(cfg.HeartbeatInterval.Seconds()), "activity heartbeat interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HeartbeatInterval = time.Duration(*heartbeat) * time.Second
}
