package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/nasomail/internal/flagx"
)

// GlobalFlags are the flags the CLI accepts before or after a subcommand.
// Subcommands receive the arguments with these removed.
var GlobalFlags = []string{"-c", "-config", "--config", "-D", "-t"}

// parseFlags populates Config fields from -D and -t in args.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-D", "-t"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DataDir, "D", config.DataDir, "data directory")
	probeTimeout := fs.Int64("t", int64(config.ProbeTimeout/time.Second), "probe timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.ProbeTimeout = time.Duration(*probeTimeout) * time.Second
		}
	})
	return nil
}
