// Package cli implements the nasomail command-line client.
//
// Subcommands:
//
//	login [--name NAME] [--passphrase PASS]   store credentials (prompts for missing ones)
//	logout                                    remove stored credentials
//	connect ADDR                              register ADDR after probing its token endpoint
//	disconnect                                forget the registered address
//	status                                    show the registered address
//	version                                   print build data
//
// Global flags (-c config file, -D data dir, -t probe timeout) may appear
// anywhere on the command line. Every command prints one short status line;
// the exit code is 0 on success, 1 when the operation failed and 2 on usage
// errors.
package cli
