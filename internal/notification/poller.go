package notification

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CountFetcher returns the server's unread notification count.
type CountFetcher interface {
	UnreadCount(ctx context.Context) (int, error)
}

// TokenReader reports the stored session token, empty when logged out.
type TokenReader interface {
	Token(ctx context.Context) (string, error)
}

// Ticker is the part of time.Ticker the poller uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates the ticker driving periodic refreshes.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker is the production TickerFactory.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Poller keeps a Store in sync with the server by fetching the unread count
// on start and on every tick. There is no backoff and concurrent refreshes
// are not deduplicated.
type Poller struct {
	fetcher   CountFetcher
	tokens    TokenReader
	store     *Store
	interval  time.Duration
	newTicker TickerFactory
	log       *logrus.Logger

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewPoller(fetcher CountFetcher, tokens TokenReader, store *Store, interval time.Duration, newTicker TickerFactory, log *logrus.Logger) *Poller {
	if newTicker == nil {
		newTicker = NewRealTicker
	}
	return &Poller{
		fetcher:   fetcher,
		tokens:    tokens,
		store:     store,
		interval:  interval,
		newTicker: newTicker,
		log:       log,
	}
}

// Start begins polling in the background. Calling Start on a running poller
// does nothing.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})

	ticker := p.newTicker(p.interval)
	go p.loop(ticker, p.stopCh, p.doneCh)
}

func (p *Poller) loop(ticker Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-stop
		cancel()
	}()

	p.Refresh(ctx)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			p.Refresh(ctx)
		}
	}
}

// Stop ends polling and waits up to wait for the loop to exit.
func (p *Poller) Stop(wait time.Duration) {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	close(p.stopCh)
	done := p.doneCh
	p.mu.Unlock()

	select {
	case <-done:
	case <-time.After(wait):
		p.log.Warn("Notification poller did not stop in time")
	}
}

func (p *Poller) Started() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Refresh fetches the count now. Without a session the badge is reset to
// zero; a failed fetch leaves the current count as it is.
func (p *Poller) Refresh(ctx context.Context) {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		p.log.Warnf("Failed to read session token: %+v", err)
		return
	}
	if token == "" {
		p.store.Set(0)
		return
	}

	count, err := p.fetcher.UnreadCount(ctx)
	if err != nil {
		p.log.Warnf("Failed to fetch unread notification count: %+v", err)
		return
	}
	p.store.Set(count)
}
