package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/nasomail/internal/client/connection"
	"github.com/dmitrijs2005/nasomail/internal/client/session"
	"github.com/dmitrijs2005/nasomail/internal/common"
	"github.com/dmitrijs2005/nasomail/internal/ctest"
)

func (a *App) login(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "user name")
	passphrase := fs.String("passphrase", "", "passphrase")
	if err := fs.Parse(args); err != nil {
		a.errOut.Error("login: %v", err)
		return exitUsage
	}

	passGiven := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "passphrase" {
			passGiven = true
		}
	})

	if *name == "" {
		v, err := GetSimpleText(a.reader, "Name", a.stdout)
		if err != nil {
			a.errOut.Error("login: could not read name: %v", err)
			return exitFailure
		}
		*name = v
	}

	if !passGiven {
		v, err := a.readPassphrase()
		if err != nil {
			a.errOut.Error("login: could not read passphrase: %v", err)
			return exitFailure
		}
		*passphrase = v
	}

	err := a.sessions.Login(ctx, common.AuthPayload{Name: *name, Passphrase: *passphrase})
	if errors.Is(err, session.ErrEmptyName) {
		a.errOut.Error("login: name must not be empty")
		return exitUsage
	}
	if err != nil {
		a.errOut.Error("login failed: %v", err)
		return exitFailure
	}

	a.out.Success("logged in as %s", *name)
	return exitOK
}

func (a *App) readPassphrase() (string, error) {
	if a.interactive {
		pw, err := GetPassword(a.stdout)
		return string(pw), err
	}
	return GetSimpleText(a.reader, "Passphrase", a.stdout)
}

func (a *App) logout(ctx context.Context) int {
	removed, err := a.sessions.Logout(ctx)
	if err != nil {
		a.errOut.Error("logout failed: %v", err)
		return exitFailure
	}
	if !removed {
		a.out.Warn("%s, nothing to remove", common.ErrorNotLoggedIn)
		return exitOK
	}
	a.out.Success("logged out")
	return exitOK
}

func (a *App) connect(ctx context.Context, args []string) int {
	if len(args) != 1 {
		a.errOut.Error("usage: connect ADDR")
		return exitUsage
	}
	addr := args[0]

	res, err := a.registry.Connect(ctx, addr)
	if err == nil {
		a.out.Success("connected to %s", res.Addr)
		return exitOK
	}

	if res.Outcome == ctest.Success {
		// the probe never ran: bad input or the record could not be saved
		if errors.Is(err, common.ErrorEmptyAddress) {
			a.errOut.Error("usage: connect ADDR")
			return exitUsage
		}
		a.errOut.Error("could not connect to %s: %v", addr, err)
		return exitFailure
	}

	a.errOut.Error("could not connect to %s: %s", res.Addr, describe(res))
	if errors.Is(err, connection.ErrRollback) {
		a.errOut.Warn("the address is still registered in %s: %v", a.config.ConnectionPath(), err)
	}
	return exitFailure
}

// describe renders the failure classification for the user.
func describe(res ctest.Result) string {
	switch res.Outcome {
	case ctest.Unreachable:
		return fmt.Sprintf("server unreachable (%s)", res.Detail())
	case ctest.UnexpectedStatus:
		return fmt.Sprintf("unexpected status %d", res.Status)
	case ctest.EmptyBody:
		return "server answered with an empty token"
	case ctest.BadBody:
		return "could not read the server response"
	default:
		return res.Detail()
	}
}

func (a *App) disconnect(ctx context.Context) int {
	// only for the message; a corrupted record is still removed below
	addr, had, _ := a.registry.Status(ctx)

	removed, err := a.registry.Disconnect(ctx)
	if err != nil {
		a.errOut.Error("disconnect failed: %v", err)
		return exitFailure
	}
	if !removed {
		a.out.Warn("%s, nothing to remove", common.ErrorNotConnected)
		return exitOK
	}
	if had {
		a.out.Success("disconnected from %s", addr)
	} else {
		a.out.Success("disconnected")
	}
	return exitOK
}

func (a *App) status(ctx context.Context) int {
	addr, ok, err := a.registry.Status(ctx)
	if err != nil {
		a.errOut.Error("status failed: %v", err)
		return exitFailure
	}
	if !ok {
		a.out.Warn("%s", common.ErrorNotConnected)
		return exitOK
	}

	line := "connected to " + addr
	if p, loggedIn, err := a.sessions.Current(ctx); err == nil && loggedIn {
		line += " as " + p.Name
	}
	a.out.Success("%s", line)
	return exitOK
}
