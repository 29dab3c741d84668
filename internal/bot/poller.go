package bot

import (
	"context"
	"time"

	"github.com/kitestore-next/internal/logger"
)

const pollRetryDelay = 3 * time.Second

// Poller is the long-poll loop run as an application service. Updates are
// handed to the dispatcher strictly one at a time: the catalog's
// single-writer discipline depends on this loop never processing two
// updates concurrently.
type Poller struct {
	client         *Client
	dispatcher     *Dispatcher
	timeoutSeconds int
}

// NewPoller creates the bot polling service.
func NewPoller(client *Client, dispatcher *Dispatcher, timeoutSeconds int) *Poller {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	return &Poller{client: client, dispatcher: dispatcher, timeoutSeconds: timeoutSeconds}
}

// Name names the service.
func (p *Poller) Name() string {
	return "bot-poller"
}

// Start runs the poll loop until the context is cancelled. Poll failures
// back off and retry; they never kill the loop.
func (p *Poller) Start(ctx context.Context) error {
	logger.Infow("bot_poller_start", "poll_timeout_seconds", p.timeoutSeconds)
	var offset int64
	for {
		if ctx.Err() != nil {
			return nil
		}
		updates, err := p.client.GetUpdates(ctx, offset, p.timeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Errorw("bot_poll_failed", "error", err)
			select {
			case <-time.After(pollRetryDelay):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		for _, update := range updates {
			p.dispatcher.HandleUpdate(ctx, update)
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
		}
	}
}

// Stop ends the service; the poll loop exits with its context.
func (p *Poller) Stop(ctx context.Context) error {
	return nil
}
