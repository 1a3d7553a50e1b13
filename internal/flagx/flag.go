// Package flagx lets several components share os.Args without stepping on
// each other's flags: each one filters the arguments it owns before parsing.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
//
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			// a following token that does not look like a flag is the value
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// StripArgs is the complement of FilterArgs: it drops the given flags (and
// their separate values) and keeps everything else in order. The CLI uses it
// to hand subcommands only the arguments that are not global flags.
func StripArgs(args []string, flags []string) []string {
	drop := make(map[string]struct{}, len(flags))
	for _, f := range flags {
		drop[f] = struct{}{}
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			if _, ok := drop[strings.SplitN(arg, "=", 2)[0]]; ok {
				continue
			}
			kept = append(kept, arg)
			continue
		}

		if _, ok := drop[arg]; ok {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		kept = append(kept, arg)
	}
	return kept
}

// ConfigPath extracts the config file path provided via -c or -config in
// os.Args. When neither is present, def is returned.
func ConfigPath(def string) string {
	return ConfigPathFrom(os.Args[1:], def)
}

// ConfigPathFrom is ConfigPath over an explicit argument list.
func ConfigPathFrom(args []string, def string) string {
	config := def

	args = FilterArgs(args, []string{"-c", "-config", "--config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", def, "Path to config file")
	fs.StringVar(&config, "c", def, "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
