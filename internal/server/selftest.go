package server

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/nasomail/internal/ctest"
	"github.com/dmitrijs2005/nasomail/internal/logging"
	"github.com/dmitrijs2005/nasomail/internal/server/appctx"
	"github.com/dmitrijs2005/nasomail/internal/server/config"
	"github.com/dmitrijs2005/nasomail/internal/server/models"
	"github.com/dmitrijs2005/nasomail/internal/server/repositories/checks"
)

// SelfTest fetches the token endpoint through the advertised public address
// and checks that this process answered. The outcome is logged and, when rec
// is not nil, recorded. Failures never leave this function as errors.
func SelfTest(ctx context.Context, app *appctx.AppContext, client *http.Client, log logging.Logger, rec checks.Repository) ctest.Result {
	var pubAddr, token string
	_ = app.ReadConfig(func(c config.Config) error {
		pubAddr = c.PubAddr
		return nil
	})
	_ = app.ReadToken(func(t string) error {
		token = t
		return nil
	})

	log.Info(ctx, "self-test started", "pub_addr", pubAddr)

	res := ctest.Verify(ctx, client, pubAddr, token)
	if res.OK() {
		log.Info(ctx, "self-test succeeded", "pub_addr", pubAddr)
	} else {
		log.Warn(ctx, "self-test failed",
			"pub_addr", pubAddr,
			"outcome", res.Outcome.String(),
			"detail", res.Detail(),
			"status", res.Status,
			"err", res.Err(),
		)
	}

	if rec != nil {
		check := &models.ReachabilityCheck{
			Target:  pubAddr,
			Outcome: res.Outcome.String(),
			Status:  res.Status,
			Detail:  res.Detail(),
		}
		// the probe may have been cut short by shutdown; still record it
		if err := rec.Insert(context.WithoutCancel(ctx), check); err != nil {
			log.Warn(ctx, "failed to record self-test", "err", err)
		}
	}

	return res
}
