// ABOUTME: Status presenter that owns the tray item and runs the agent's event loop.
// ABOUTME: Wires toggle/quit clicks to the toggler and schedules the deferred refresh.

package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultRefreshDelay = time.Second

// StatusItem is the visible part of the agent: icon, tooltip and status row.
type StatusItem interface {
	Render(state AppearanceState)
}

type appearanceQuerier interface {
	Query(ctx context.Context) AppearanceState
}

type appearanceToggler interface {
	Toggle(ctx context.Context) error
}

type recoveryRunner interface {
	Run(ctx context.Context)
}

// Controls are the inputs of the event loop. A nil channel never fires.
type Controls struct {
	Toggle   <-chan struct{}
	Quit     <-chan struct{}
	External <-chan struct{}
}

type phase int

const (
	phaseIdle phase = iota
	phaseToggling
	phasePendingRefresh
	phaseRecovering
)

func (p phase) String() string {
	switch p {
	case phaseToggling:
		return "toggling"
	case phasePendingRefresh:
		return "pending-refresh"
	case phaseRecovering:
		return "recovering"
	default:
		return "idle"
	}
}

// PresenterOptions configures a Presenter.
type PresenterOptions struct {
	Oracle   appearanceQuerier
	Toggler  appearanceToggler
	Recovery recoveryRunner
	Item     StatusItem
	Policy   ActivationPolicy
	Logger   *zap.Logger

	// RefreshDelay is how long to wait after a successful toggle before
	// re-reading the appearance; the OS applies the change asynchronously.
	RefreshDelay time.Duration

	// After arms a one-shot timer. Defaults to time.After.
	After func(time.Duration) <-chan time.Time
}

// Presenter owns the status item for the lifetime of the process. All of its
// fields are touched only by the goroutine running Start and Run; automation
// calls happen on workers that post their results back to the loop.
type Presenter struct {
	oracle   appearanceQuerier
	toggler  appearanceToggler
	recovery recoveryRunner
	item     StatusItem
	policy   ActivationPolicy
	logger   *zap.Logger
	delay    time.Duration
	after    func(time.Duration) <-chan time.Time

	phase    phase
	shown    AppearanceState
	rendered bool
	querying bool
	attempt  string
	refresh  <-chan time.Time

	// requery is set when the refresh timer fires while an older query is
	// still in flight; that result predates the toggle and is discarded.
	requery bool

	toggled   chan error
	queried   chan AppearanceState
	recovered chan struct{}
}

// NewPresenter creates a presenter. Nothing is rendered until Start.
func NewPresenter(opts PresenterOptions) *Presenter {
	delay := opts.RefreshDelay
	if delay <= 0 {
		delay = defaultRefreshDelay
	}
	after := opts.After
	if after == nil {
		after = time.After
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := opts.Policy
	if policy == nil {
		policy = newActivationPolicy()
	}

	return &Presenter{
		oracle:    opts.Oracle,
		toggler:   opts.Toggler,
		recovery:  opts.Recovery,
		item:      opts.Item,
		policy:    policy,
		logger:    logger,
		delay:     delay,
		after:     after,
		toggled:   make(chan error, 1),
		queried:   make(chan AppearanceState, 1),
		recovered: make(chan struct{}, 1),
	}
}

// Start performs the initial query and render and puts the process in
// background agent mode.
func (p *Presenter) Start(ctx context.Context) {
	state := p.oracle.Query(ctx)
	p.logger.Info("initial appearance", zap.Stringer("state", state))
	p.apply(state)
	p.policy.Accessory()
}

// Run is the event loop. It returns when Quit fires or ctx is cancelled.
func (p *Presenter) Run(ctx context.Context, controls Controls) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-controls.Quit:
			p.logger.Info("quit requested")
			return nil

		case <-controls.Toggle:
			p.onToggleClicked(ctx)

		case err := <-p.toggled:
			p.onToggled(ctx, err)

		case <-p.refresh:
			p.refresh = nil
			p.logger.Debug("refresh timer fired", zap.String("attempt", p.attempt))
			if p.querying {
				p.requery = true
			} else {
				p.startQuery(ctx)
			}

		case state := <-p.queried:
			p.onQueried(ctx, state)

		case <-p.recovered:
			p.logger.Info("permission recovery closed")
			p.phase = phaseIdle

		case <-controls.External:
			if p.phase == phaseIdle {
				p.logger.Debug("appearance changed outside the agent")
				p.startQuery(ctx)
			}
		}
	}
}

func (p *Presenter) onToggleClicked(ctx context.Context) {
	switch p.phase {
	case phaseToggling, phaseRecovering:
		p.logger.Debug("toggle ignored", zap.Stringer("phase", p.phase))
		return
	}

	p.phase = phaseToggling
	p.attempt = uuid.NewString()
	p.logger.Info("toggling appearance", zap.String("attempt", p.attempt))

	go func() {
		err := p.toggler.Toggle(ctx)
		select {
		case p.toggled <- err:
		case <-ctx.Done():
		}
	}()
}

func (p *Presenter) onToggled(ctx context.Context, err error) {
	switch {
	case err == nil:
		p.phase = phasePendingRefresh
		p.refresh = p.after(p.delay)
		p.logger.Info("appearance toggled",
			zap.String("attempt", p.attempt),
			zap.Duration("refresh_in", p.delay))

	case IsPermissionDenied(err):
		p.phase = phaseRecovering
		p.logger.Warn("automation permission denied", zap.String("attempt", p.attempt), zap.Error(err))
		go func() {
			p.recovery.Run(ctx)
			select {
			case p.recovered <- struct{}{}:
			case <-ctx.Done():
			}
		}()

	default:
		p.phase = phaseIdle
		p.logger.Error("toggle failed", zap.String("attempt", p.attempt), zap.Error(err))
	}
}

func (p *Presenter) startQuery(ctx context.Context) {
	if p.querying {
		return
	}
	p.querying = true
	go func() {
		state := p.oracle.Query(ctx)
		select {
		case p.queried <- state:
		case <-ctx.Done():
		}
	}()
}

func (p *Presenter) onQueried(ctx context.Context, state AppearanceState) {
	p.querying = false
	if p.requery {
		p.requery = false
		p.logger.Debug("discarding query started before the toggle", zap.Stringer("state", state))
		p.startQuery(ctx)
		return
	}
	p.apply(state)
	if p.phase == phasePendingRefresh && p.refresh == nil {
		p.phase = phaseIdle
	}
}

// apply renders state unless it is Unknown and something better is already
// on screen; stale state is kept rather than guessed.
func (p *Presenter) apply(state AppearanceState) {
	if !state.Known() && p.rendered {
		p.logger.Debug("keeping last known appearance", zap.Stringer("shown", p.shown))
		return
	}
	p.item.Render(state)
	p.shown = state
	p.rendered = true
}
