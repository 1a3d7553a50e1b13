package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/nasomail/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   database path or postgres:// DSN
//	-s string   schema file path
//	-a string   bind address (e.g., "0.0.0.0:8080")
//	-p string   public address probed by the self-test
//	-w int      self-test delay, milliseconds
//	-t int      probe timeout, seconds
//
// args are filtered to the flags above first, so -c/-config and anything
// else on the command line is ignored here.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-s", "-a", "-p", "-w", "-t"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DBPath, "d", config.DBPath, "database path or DSN")
	fs.StringVar(&config.SchemaPath, "s", config.SchemaPath, "schema file path")
	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to listen on")
	fs.StringVar(&config.PubAddr, "p", config.PubAddr, "public address to self-test")

	selfTestDelay := fs.Int64("w", config.SelfTestDelay.Milliseconds(), "self-test delay (in milliseconds)")
	probeTimeout := fs.Int64("t", int64(config.ProbeTimeout/time.Second), "probe timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// durations only change when given, so sub-unit values survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			config.SelfTestDelay = time.Duration(*selfTestDelay) * time.Millisecond
		case "t":
			config.ProbeTimeout = time.Duration(*probeTimeout) * time.Second
		}
	})
	return nil
}
