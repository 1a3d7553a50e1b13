package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/nasomail/internal/buildinfo"
	"github.com/dmitrijs2005/nasomail/internal/client/config"
	"github.com/dmitrijs2005/nasomail/internal/client/connection"
	"github.com/dmitrijs2005/nasomail/internal/client/session"
	"github.com/dmitrijs2005/nasomail/internal/flagx"
	"github.com/dmitrijs2005/nasomail/internal/netx"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = `usage: nasomail [-c config.json] [-D data-dir] [-t seconds] <command> [args]

commands:
  login [--name NAME] [--passphrase PASS]
  logout
  connect ADDR
  disconnect
  status
  version
  help
`

type App struct {
	config   *config.Config
	sessions *session.Store
	registry *connection.Registry

	reader      *bufio.Reader
	interactive bool
	stdout      io.Writer
	out         *printer
	errOut      *printer
}

// NewApp wires the stores under the configured data directory.
func NewApp(c *config.Config, stdin io.Reader, stdout, stderr io.Writer) *App {
	a := &App{
		config:   c,
		sessions: session.NewStore(c.CredentialsPath()),
		registry: connection.NewRegistry(
			connection.NewFileStore(c.ConnectionPath()),
			connection.HTTPProber{Client: netx.NewHTTPClient(c.ProbeTimeout)},
		),
		reader: bufio.NewReader(stdin),
		stdout: stdout,
		out:    newPrinter(stdout),
		errOut: newPrinter(stderr),
	}
	if f, ok := stdin.(*os.File); ok {
		a.interactive = term.IsTerminal(int(f.Fd()))
	}
	return a
}

// Run executes one CLI invocation reading from os.Stdin and returns the
// process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, args, os.Stdin, stdout, stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	errOut := newPrinter(stderr)

	cfg, err := config.LoadConfig(args)
	if err != nil {
		errOut.Error("invalid configuration: %v", err)
		return exitUsage
	}

	rest := flagx.StripArgs(args, config.GlobalFlags)
	if len(rest) == 0 {
		errOut.Plain(usage)
		return exitUsage
	}

	return NewApp(cfg, stdin, stdout, stderr).Dispatch(ctx, rest[0], rest[1:])
}

// Dispatch runs the named subcommand.
func (a *App) Dispatch(ctx context.Context, cmd string, args []string) int {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "connect":
		return a.connect(ctx, args)
	case "disconnect":
		return a.disconnect(ctx)
	case "status":
		return a.status(ctx)
	case "version":
		buildinfo.PrintBuildData(a.stdout)
		return exitOK
	case "help", "-h", "--help":
		a.out.Plain(usage)
		return exitOK
	default:
		a.errOut.Error("unknown command %q", cmd)
		a.errOut.Plain(usage)
		return exitUsage
	}
}
