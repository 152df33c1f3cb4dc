package messaging

import (
	"bitbucket.org/sotavant/workhub-chat/internal/logger"
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"context"
	"go.uber.org/zap"
	"time"
)

// DefaultInterval is how often an open chat re-fetches its conversation.
const DefaultInterval = 3 * time.Second

// Update is one poll result delivered to the owning view. Either Err is
// set, or Messages holds the full filtered conversation, chronologically
// ascending, replacing whatever the view had before. Grew tells the view
// to scroll to the newest message.
type Update struct {
	Messages []models.Message
	Grew     bool
	Err      error
}

// Poller owns the refresh cadence of one open chat view: an immediate
// first fetch, a fixed-interval tick, and out-of-band refreshes after
// sends. It marks newly visible inbound messages as read after every
// successful fetch.
type Poller struct {
	store    Store
	user     models.User
	otherID  string
	interval time.Duration

	updates chan Update
	refresh chan struct{}

	lastLen int // touched only by the Run goroutine
}

func NewPoller(store Store, user models.User, otherID string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		store:    store,
		user:     user,
		otherID:  otherID,
		interval: interval,
		updates:  make(chan Update),
		refresh:  make(chan struct{}, 1),
	}
}

// Updates is closed when Run returns; nothing is ever delivered after
// the context is cancelled.
func (p *Poller) Updates() <-chan Update {
	return p.updates
}

// Refresh requests one out-of-band fetch, e.g. right after a successful
// send. It never blocks; nudges arriving while one is already queued
// coalesce.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Run fetches once immediately, then on every tick and every Refresh
// nudge, until ctx is cancelled. All fetches happen in this goroutine,
// so at most one request per view is in flight; ticks that fire while a
// fetch is still running are dropped by the ticker.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.updates)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		case <-p.refresh:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	msgs, err := p.store.ListMessages(ctx, p.user)
	if ctx.Err() != nil {
		// view closed while the fetch was in flight: discard the result
		return
	}
	if err != nil {
		logger.Log.Debug("poll tick failed", zap.Error(err))
		p.deliver(ctx, Update{Err: err})
		return
	}

	conv := FilterPair(p.user.ID, p.otherID, msgs)
	SortChronological(conv)

	grew := len(conv) > p.lastLen
	p.lastLen = len(conv)
	if !p.deliver(ctx, Update{Messages: conv, Grew: grew}) {
		return
	}

	// read receipts go out only after the view has the update, so they
	// never delay a render; a failed receipt is dropped here and retried
	// naturally on the next tick, since the backend still reports the
	// message unread
	for _, m := range conv {
		if ctx.Err() != nil {
			return
		}
		if !m.Read && m.ReceiverID == p.user.ID {
			if err := p.store.MarkRead(ctx, m.ID); err != nil {
				logger.Log.Debug("mark read failed",
					zap.String("messageId", m.ID), zap.Error(err))
			}
		}
	}
}

func (p *Poller) deliver(ctx context.Context, u Update) bool {
	select {
	case p.updates <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
