package application

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/zamvr/vrcswitch/internal/domain"
	"github.com/zamvr/vrcswitch/internal/ports"
)

const defaultRetryInterval = 10 * time.Second

// PollerOptions configures a PresencePoller. Zero values fall back to the
// system clock, the default retry interval, and a discarding logger.
// OnChange runs serially on a poller goroutine and must not call back into
// the poller.
type PollerOptions struct {
	Credential domain.Credential
	Clock      ports.Clock
	Interval   time.Duration
	OnChange   func(domain.PresenceState)
	Logger     *slog.Logger
}

// PresencePoller maintains the user's presence state by fetching their
// current location and retrying on a fixed interval until the platform
// reports one. It is the sole writer of its PresenceState; consumers read
// value snapshots or subscribe through OnChange.
//
// One fetch cycle is in flight at a time: a Refresh while a cycle (or its
// scheduled retry) is pending is coalesced. A cycle ends when the location is
// known; Unknown and Unreachable results reschedule themselves indefinitely
// until Close.
type PresencePoller struct {
	client ports.SessionClient
	store  ports.CredentialStore
	clock  ports.Clock

	interval time.Duration
	onChange func(domain.PresenceState)
	logger   *slog.Logger

	// notifyMu serializes OnChange callbacks and is acquired before mu;
	// Close takes it last so no notification lands after Close returns.
	notifyMu sync.Mutex

	mu       sync.Mutex
	cred     domain.Credential
	state    domain.PresenceState
	inFlight bool
	closed   bool
	retry    *time.Timer
}

func NewPresencePoller(client ports.SessionClient, store ports.CredentialStore, opts PollerOptions) *PresencePoller {
	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &PresencePoller{
		client:   client,
		store:    store,
		clock:    clock,
		interval: interval,
		onChange: opts.OnChange,
		logger:   logger,
		cred:     opts.Credential,
		state:    domain.PresenceState{Status: domain.FetchPending},
	}
}

// Refresh starts a fetch cycle. It never blocks on the network: the fetch
// runs on its own goroutine. Calls while a cycle or retry is pending, or
// after Close, are no-ops.
func (p *PresencePoller) Refresh() {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.closed || p.inFlight {
		p.mu.Unlock()
		return
	}

	// Polling needs an identity. Without one the state is honestly
	// unreachable and no cycle starts.
	if !p.cred.HasIdentity() {
		p.state.Location = ""
		p.state.Status = domain.FetchUnreachable
		p.state.CheckedAt = p.clock.Now()
		snapshot := p.state
		p.mu.Unlock()

		p.notify(snapshot)
		return
	}

	p.inFlight = true
	p.mu.Unlock()

	go p.cycle()
}

// Snapshot returns a value copy of the current presence state.
func (p *PresencePoller) Snapshot() domain.PresenceState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// UpdateCredential swaps the credential used for fetches, after a re-login.
// The empty-fetch counter restarts with the new identity.
func (p *PresencePoller) UpdateCredential(cred domain.Credential) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cred = cred
	p.state.ConsecutiveEmptyFetches = 0
}

// Close tears the poller down: the pending retry timer is cancelled and any
// in-flight fetch has its result discarded. Once Close returns, no state
// mutation or change notification will occur. Idempotent.
func (p *PresencePoller) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.retry != nil {
		p.retry.Stop()
		p.retry = nil
	}
	p.mu.Unlock()

	// Wait out a notification already in progress.
	p.notifyMu.Lock()
	p.notifyMu.Unlock()
}

// cycle runs one fetch and applies the result. The fetch itself happens off
// every lock; the in-flight HTTP client carries its own timeout, so teardown
// never aborts it, only discards what it returns.
func (p *PresencePoller) cycle() {
	p.mu.Lock()
	if p.closed {
		p.inFlight = false
		p.mu.Unlock()
		return
	}
	cred := p.cred
	p.mu.Unlock()

	result := p.client.FetchLocation(context.Background(), cred.AuthToken, cred.UserID)

	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.closed {
		p.inFlight = false
		p.mu.Unlock()
		return
	}

	p.state.CheckedAt = p.clock.Now()
	switch result.Status {
	case domain.LocationKnown:
		p.state.Location = result.Location
		p.state.Status = domain.FetchReady
		p.state.ConsecutiveEmptyFetches = 0
		p.inFlight = false
	case domain.LocationUnknown:
		// The user may be mid-transition between instances; keep asking.
		p.state.Location = ""
		p.state.Status = domain.FetchReady
		p.state.ConsecutiveEmptyFetches++
		p.scheduleRetry()
	default:
		p.state.Status = domain.FetchUnreachable
		p.scheduleRetry()
	}
	snapshot := p.state
	p.mu.Unlock()

	if result.Status == domain.LocationKnown {
		// Refresh-on-success: a fetch that worked proves the session is
		// live, so re-persist it. Failing to do so is not fatal.
		if err := p.store.Save(context.Background(), cred); err != nil {
			p.logger.Warn("re-persist session after presence fetch failed", "error", err)
		}
	}

	p.notify(snapshot)
}

// scheduleRetry arms the retry timer. Caller holds mu. The cycle stays
// in-flight until a Known result or Close ends it, which is what coalesces
// concurrent Refresh calls.
func (p *PresencePoller) scheduleRetry() {
	p.retry = time.AfterFunc(p.interval, func() {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()

		p.cycle()
	})
}

// notify invokes the change callback. Caller holds notifyMu, which keeps
// callbacks serial.
func (p *PresencePoller) notify(state domain.PresenceState) {
	if p.onChange == nil {
		return
	}
	p.onChange(state)
}
