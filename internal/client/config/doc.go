// Package config loads runtime configuration for the nasomail CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-D string   data directory holding credentials.json and connection.txt
//	-t int      reachability probe timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5s" or
// integer nanoseconds:
//
//	{
//	  "data_dir": "/home/me/.config/nasomail_client",
//	  "probe_timeout": "5s"
//	}
package config
