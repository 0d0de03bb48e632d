package game

import (
	"context"
	"time"
)

// Run ticks the game until it is over, maxTicks ticks have run (0 means no
// limit) or ctx is done. A non-zero interval paces the ticks.
func Run(ctx context.Context, g *Game, maxTicks int, interval time.Duration) error {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for ticks := 0; !g.Over && (maxTicks == 0 || ticks < maxTicks); ticks++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := g.Update(ctx); err != nil {
			return err
		}
	}
	return nil
}
