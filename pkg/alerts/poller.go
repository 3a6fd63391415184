// Package alerts polls the backend for weather alerts on a fixed interval.
package alerts

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/models"
)

// DefaultInterval is the refetch period of the alerts panel
const DefaultInterval = 60 * time.Second

// fetchTimeout bounds a single fetch
const fetchTimeout = 30 * time.Second

// FetchFunc loads the current alert list
type FetchFunc func(ctx context.Context) ([]models.Alert, error)

// Poller refetches alerts immediately and then on every tick until its
// context is cancelled or Stop is called
type Poller struct {
	fetch    FetchFunc
	interval time.Duration
	onUpdate func([]models.Alert)
	onError  func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithInterval sets the refetch period
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// OnUpdate is called with every successfully fetched list
func OnUpdate(fn func([]models.Alert)) PollerOption {
	return func(p *Poller) {
		p.onUpdate = fn
	}
}

// OnError is called when a fetch fails. Polling continues.
func OnError(fn func(error)) PollerOption {
	return func(p *Poller) {
		p.onError = fn
	}
}

// NewPoller creates a poller
func NewPoller(fetch FetchFunc, opts ...PollerOption) *Poller {
	p := &Poller{
		fetch:    fetch,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is cancelled. It always returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// Start runs the poller in the background
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		_ = p.Run(ctx)
	}(p.done)
	log.Debug().Dur("interval", p.interval).Msg("Alerts poller started")
}

// Stop cancels a poller started with Start and waits for it to exit
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Debug().Msg("Alerts poller stopped")
}

func (p *Poller) poll(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	alerts, err := p.fetch(fetchCtx)
	if err != nil {
		// cancellation is the owner going away, not a failure
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Msg("Failed to fetch alerts")
		if p.onError != nil {
			p.onError(err)
		}
		return
	}

	if alerts == nil {
		alerts = []models.Alert{}
	}
	if p.onUpdate != nil {
		p.onUpdate(alerts)
	}
}
