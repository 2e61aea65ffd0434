package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nibchat/nibchat-server/internal/user"
)

// DefaultInterval is the polling cadence. Staleness up to one interval is
// accepted; there is no push channel.
const DefaultInterval = 8 * time.Second

// Fetcher performs the single-user fetch against the session-sync
// projection.
type Fetcher interface {
	FetchUser(ctx context.Context, id string) (user.User, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id string) (user.User, error)

// FetchUser calls f.
func (f FetcherFunc) FetchUser(ctx context.Context, id string) (user.User, error) {
	return f(ctx, id)
}

// Hooks are invoked by the poller when remote state diverges from the
// adopted local copy. Both run on the poll goroutine.
type Hooks struct {
	// OnCredited fires once per observed balance change with the numeric delta.
	OnCredited func(delta decimal.Decimal, u user.User)
	// OnBanned fires when the remote record is banned; the session owner
	// must clear persisted state. Polling stops afterwards.
	OnBanned func(u user.User)
}

// Poller reconciles a live session against the remote user projection on a
// fixed cadence. Fetch failures are swallowed and retried on the next tick;
// a response landing after Stop is discarded.
type Poller struct {
	fetcher  Fetcher
	userID   string
	interval time.Duration
	logger   *slog.Logger
	hooks    Hooks

	mu      sync.Mutex
	current user.User
	started bool
	stopped bool
	cancel  context.CancelFunc

	done     chan struct{}
	stopOnce sync.Once
}

// NewPoller builds a poller seeded with the session's last known user state.
func NewPoller(fetcher Fetcher, initial user.User, interval time.Duration, logger *slog.Logger, hooks Hooks) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetcher:  fetcher,
		userID:   initial.ID,
		interval: interval,
		logger:   logger,
		hooks:    hooks,
		current:  initial,
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop. It returns immediately; the loop runs
// until Stop is called, a ban is adopted, or ctx is cancelled. A second
// Start, or one arriving after Stop, is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !p.tick(ctx) {
					return
				}
			}
		}
	}()
}

// Stop tears the poller down. Safe to call more than once and from hooks.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		cancel := p.cancel
		p.mu.Unlock()
		if cancel != nil {
			cancel()
		}
	})
}

// Done is closed once the polling loop has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Current returns the last adopted user state.
func (p *Poller) Current() user.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// tick performs one fetch/compare/adopt cycle. It reports whether polling
// should continue.
func (p *Poller) tick(ctx context.Context) bool {
	fetched, err := p.fetcher.FetchUser(ctx, p.userID)
	if err != nil {
		// Best effort: log locally, self-heal on the next tick.
		p.logger.Debug("reconcile fetch failed", "user_id", p.userID, "error", err)
		return true
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return false
	}
	prev := p.current
	p.current = fetched
	if fetched.IsBanned {
		p.stopped = true
	}
	p.mu.Unlock()

	if fetched.IsBanned {
		if p.hooks.OnBanned != nil {
			p.hooks.OnBanned(fetched)
		}
		p.Stop()
		return false
	}

	prevBalance, prevErr := prev.Balance()
	newBalance, newErr := fetched.Balance()
	if prevErr == nil && newErr == nil && !newBalance.Equal(prevBalance) {
		if p.hooks.OnCredited != nil {
			p.hooks.OnCredited(newBalance.Sub(prevBalance), fetched)
		}
	}

	return true
}
