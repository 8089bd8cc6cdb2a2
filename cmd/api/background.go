package main

import (
	"context"
	"time"
)

type sweeper interface {
	Sweep() int
}

// runHousekeepingEvery30Mins abandons expired carts and drops idle sessions
// and closed rate limiter windows until ctx is done.
func (app *application) runHousekeepingEvery30Mins(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		// Run once immediately
		app.housekeeping(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.housekeeping(ctx)
			}
		}
	}()
}

func (app *application) housekeeping(ctx context.Context) {
	n, err := app.carts.MarkExpiredAsAbandoned(ctx)
	if err != nil {
		app.logger.Errorw("error marking expired carts as abandoned", "error", err)
	} else {
		app.logger.Infow("marked expired carts as abandoned", "count", n, "at", time.Now().Format(time.RFC1123))
	}

	if ended := app.sessions.Sweep(app.config.checkout.sessionMaxIdle); ended > 0 {
		app.logger.Infow("ended idle cart sessions", "count", ended)
	}

	if s, ok := app.rateLimiter.(sweeper); ok {
		s.Sweep()
	}
}
