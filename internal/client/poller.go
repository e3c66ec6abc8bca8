package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oonogame/oono/internal/protocol"
)

// PollResult is one status fetch. Exactly one of Update, Won and Err
// is set.
type PollResult struct {
	Update *protocol.UpdatePayload
	Won    *protocol.PlayerWonPayload
	Err    error
}

// Poll issues RequestUpdate at the given interval until ctx is
// cancelled. This is cooperative polling, not a subscription: the
// server pushes nothing, and stopping the poll is the only form of
// leaving it knows about. The channel is closed on cancellation.
func (c *Client) Poll(ctx context.Context, gameID, playerID uuid.UUID, interval time.Duration) <-chan PollResult {
	out := make(chan PollResult, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				update, won, err := c.RequestUpdate(ctx, gameID, playerID)
				res := PollResult{Update: update, Won: won, Err: err}
				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
