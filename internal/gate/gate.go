// Package gate implements the time-locked login gate that guards the
// greeting.
//
// A Gate starts in AwaitingInput. A valid submission either unlocks it
// straight away (deadline passed, or a bypass in dev mode) or moves it
// to TimeLocked, where a recurring tick refreshes the countdown until
// the deadline passes. An invalid submission moves it to Denied, which
// reverts on its own after DeniedTimeout. Unlocked is terminal.
//
// The gate owns every timer it arms. Each timer is stopped on every
// path that leaves the phase it belongs to, on Unlocked and on Close.
package gate

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/BradenHooton/valentine/internal/clock"
	"github.com/BradenHooton/valentine/internal/countdown"
	"github.com/BradenHooton/valentine/internal/credential"
	"github.com/BradenHooton/valentine/internal/models"
	pkglogger "github.com/BradenHooton/valentine/pkg/logger"
)

const (
	DefaultTickInterval  = 1 * time.Second
	DefaultDeniedTimeout = 3 * time.Second
	DefaultSettleDelay   = 1500 * time.Millisecond
)

// Config holds the gate's fixed settings
type Config struct {
	Target            time.Time
	AllowedIdentities []string
	AllowedSecrets    []string
	BypassSecret      string

	// DevMode enables the bypass secret. Outside dev mode the bypass
	// secret is not recognised at all.
	DevMode bool

	TickInterval  time.Duration
	DeniedTimeout time.Duration
	SettleDelay   time.Duration
}

// Option customizes a Gate
type Option func(*Gate)

// WithClock sets the time source. Defaults to clock.Real().
func WithClock(c clock.Clock) Option {
	return func(g *Gate) { g.clock = c }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

// WithAuditLogger sets the audit logger for attempts and transitions.
func WithAuditLogger(audit *pkglogger.AuditLogger) Option {
	return func(g *Gate) { g.audit = audit }
}

// WithOnChange registers a callback invoked after every state
// replacement, outside the gate's lock. Callbacks from timer goroutines
// and from Submit/DismissTimeLock may arrive out of order; use
// State.Revision to discard stale snapshots.
func WithOnChange(fn func(models.State)) Option {
	return func(g *Gate) { g.onChange = fn }
}

// WithOnUnlocked registers a callback invoked exactly once, when the
// gate enters Unlocked.
func WithOnUnlocked(fn func()) Option {
	return func(g *Gate) { g.onUnlocked = fn }
}

// Gate is the access gate state machine. It is safe for concurrent use.
type Gate struct {
	cfg        Config
	checker    *credential.Checker
	clock      clock.Clock
	logger     *slog.Logger
	audit      *pkglogger.AuditLogger
	onChange   func(models.State)
	onUnlocked func()

	mu    sync.Mutex
	state models.State
	// epoch increments whenever the phase changes or the gate is torn
	// down. Timer callbacks capture it and do nothing if it moved.
	epoch    uint64
	tick     *clock.Timer
	denial   *clock.Timer
	settle   *clock.Timer
	tornDown bool
}

// notification is what a transition owes its observers once the lock
// is released.
type notification struct {
	state    models.State
	changed  bool
	unlocked bool
}

// New mounts a gate in AwaitingInput. Call Close when the gate is no
// longer shown; Close is safe to defer even after the gate unlocks.
func New(cfg Config, opts ...Option) (*Gate, error) {
	if cfg.Target.IsZero() {
		return nil, errors.New("gate: target instant is required")
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.DeniedTimeout == 0 {
		cfg.DeniedTimeout = DefaultDeniedTimeout
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.TickInterval < 0 || cfg.DeniedTimeout < 0 || cfg.SettleDelay < 0 {
		return nil, errors.New("gate: intervals must be positive")
	}

	bypass := ""
	if cfg.DevMode {
		bypass = cfg.BypassSecret
	}
	checker, err := credential.NewChecker(cfg.AllowedIdentities, cfg.AllowedSecrets, bypass)
	if err != nil {
		return nil, err
	}

	g := &Gate{
		cfg:     cfg,
		checker: checker,
		clock:   clock.Real(),
		logger:  slog.Default(),
		state:   models.State{Phase: models.PhaseAwaitingInput, Revision: 1},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.audit == nil {
		g.audit = pkglogger.NewAuditLogger(g.logger, "production", g.clock.Now)
	}

	g.logger.Debug("gate mounted",
		slog.Time("target", cfg.Target),
		slog.Bool("dev_mode", cfg.DevMode))
	return g, nil
}

// State returns the current snapshot.
func (g *Gate) State() models.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Target returns the configured unlock deadline.
func (g *Gate) Target() time.Time {
	return g.cfg.Target
}

// Submit checks a credential attempt. It is accepted only while the
// gate is AwaitingInput; rejected credentials are not an error, they
// move the gate to Denied with the reason in State.Reason.
//
// The credential check runs without the lock held, since bcrypt entries
// are slow to compare. If the state changed meanwhile the attempt is
// dropped with ErrNotAwaitingInput.
func (g *Gate) Submit(identity, secret string) (models.State, error) {
	g.mu.Lock()
	if err := g.submittableLocked(); err != nil {
		state := g.state
		g.mu.Unlock()
		return state, err
	}
	revision := g.state.Revision
	g.mu.Unlock()

	attempt := models.NewAttempt(identity, secret, g.clock.Now())
	result := g.checker.Check(attempt.Identity, attempt.Secret)

	g.mu.Lock()
	if err := g.submittableLocked(); err != nil {
		state := g.state
		g.mu.Unlock()
		return state, err
	}
	if g.state.Revision != revision {
		state := g.state
		g.mu.Unlock()
		return state, models.ErrNotAwaitingInput
	}

	now := g.clock.Now()
	var n notification
	switch {
	case !result.Accepted:
		g.audit.LogAttempt(pkglogger.AuditEvent{
			EventType:     "attempt_denied",
			AttemptID:     attempt.ID,
			Identity:      attempt.Identity,
			FailureReason: models.ReasonCode(result.Reason),
		})
		n = g.enterDeniedLocked(result.Reason)

	case result.Bypass:
		g.logAccepted(attempt, "bypass")
		n = g.enterUnlockedLocked(models.UnlockBypass)

	case countdown.Remaining(now, g.cfg.Target) <= 0:
		g.logAccepted(attempt, "deadline_passed")
		n = g.enterUnlockedLocked(models.UnlockOnTime)

	default:
		g.logAccepted(attempt, "time_locked")
		n = g.enterTimeLockedLocked(now)
	}

	state := g.state
	g.mu.Unlock()
	g.deliver(n)
	return state, nil
}

func (g *Gate) submittableLocked() error {
	if g.tornDown {
		return models.ErrGateClosed
	}
	if g.state.Phase != models.PhaseAwaitingInput {
		return models.ErrNotAwaitingInput
	}
	return nil
}

// DismissTimeLock closes the countdown and returns to AwaitingInput,
// cancelling the tick and any pending settle.
func (g *Gate) DismissTimeLock() (models.State, error) {
	g.mu.Lock()
	if g.tornDown {
		state := g.state
		g.mu.Unlock()
		return state, models.ErrGateClosed
	}
	if g.state.Phase != models.PhaseTimeLocked {
		state := g.state
		g.mu.Unlock()
		return state, models.ErrNotTimeLocked
	}

	n := g.enterAwaitingLocked("dismissed")
	state := g.state
	g.mu.Unlock()
	g.deliver(n)
	return state, nil
}

// Close unmounts the gate. Every pending timer is cancelled and no
// further state changes or notifications happen. Close is idempotent.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.tornDown {
		return
	}
	g.tornDown = true
	g.epoch++
	g.stopTimersLocked()
	g.logger.Debug("gate closed", slog.String("phase", g.state.Phase.String()))
}

func (g *Gate) logAccepted(attempt models.Attempt, outcome string) {
	g.audit.LogAttempt(pkglogger.AuditEvent{
		EventType: "attempt_accepted",
		AttemptID: attempt.ID,
		Identity:  attempt.Identity,
		Success:   true,
		Metadata:  map[string]string{"outcome": outcome},
	})
}

func (g *Gate) enterAwaitingLocked(via string) notification {
	g.stopTimersLocked()
	return g.replaceLocked(models.State{Phase: models.PhaseAwaitingInput}, map[string]string{"via": via})
}

func (g *Gate) enterDeniedLocked(reason error) notification {
	g.stopTimersLocked()
	n := g.replaceLocked(models.State{Phase: models.PhaseDenied, Reason: reason},
		map[string]string{"reason": models.ReasonCode(reason)})
	epoch := g.epoch
	g.denial = g.clock.AfterFunc(g.cfg.DeniedTimeout, func() { g.expireDenial(epoch) })
	return n
}

func (g *Gate) enterTimeLockedLocked(now time.Time) notification {
	g.stopTimersLocked()
	remaining := countdown.Remaining(now, g.cfg.Target)
	n := g.replaceLocked(models.State{
		Phase:     models.PhaseTimeLocked,
		Countdown: countdown.Format(remaining),
		Remaining: remaining,
	}, map[string]string{"remaining": countdown.Format(remaining)})
	g.armTickLocked()
	return n
}

func (g *Gate) enterUnlockedLocked(cause models.UnlockCause) notification {
	g.stopTimersLocked()
	n := g.replaceLocked(models.State{Phase: models.PhaseUnlocked, Cause: cause},
		map[string]string{"cause": string(cause)})
	g.tornDown = true
	n.unlocked = true
	return n
}

// replaceLocked swaps in next as the whole new state. A phase change
// bumps the epoch so timers armed for the old phase become inert.
func (g *Gate) replaceLocked(next models.State, metadata map[string]string) notification {
	prev := g.state
	next.Revision = prev.Revision + 1
	g.state = next
	if prev.Phase != next.Phase {
		g.epoch++
		g.audit.LogTransition(prev.Phase.String(), next.Phase.String(), metadata)
	}
	return notification{state: next, changed: true}
}

func (g *Gate) armTickLocked() {
	epoch := g.epoch
	g.tick = g.clock.AfterFunc(g.cfg.TickInterval, func() { g.onTick(epoch) })
}

func (g *Gate) stopTimersLocked() {
	g.tick.Stop()
	g.denial.Stop()
	g.settle.Stop()
	g.tick, g.denial, g.settle = nil, nil, nil
}

func (g *Gate) expireDenial(epoch uint64) {
	g.mu.Lock()
	if g.tornDown || g.epoch != epoch || g.state.Phase != models.PhaseDenied {
		g.mu.Unlock()
		return
	}
	g.denial = nil
	n := g.enterAwaitingLocked("denial_expired")
	g.mu.Unlock()
	g.deliver(n)
}

// onTick refreshes the countdown. Once the deadline has passed it
// shows the arrived message and arms the settle delay instead of
// another tick.
func (g *Gate) onTick(epoch uint64) {
	g.mu.Lock()
	if g.tornDown || g.epoch != epoch || g.state.Phase != models.PhaseTimeLocked || g.state.Arrived {
		g.mu.Unlock()
		return
	}
	g.tick = nil

	remaining := countdown.Remaining(g.clock.Now(), g.cfg.Target)
	var n notification
	if remaining <= 0 {
		n = g.replaceLocked(models.State{
			Phase:     models.PhaseTimeLocked,
			Countdown: countdown.Arrived,
			Remaining: remaining,
			Arrived:   true,
		}, nil)
		g.settle = g.clock.AfterFunc(g.cfg.SettleDelay, func() { g.onSettled(epoch) })
		g.logger.Info("unlock deadline reached", slog.Duration("settle_delay", g.cfg.SettleDelay))
	} else {
		n = g.replaceLocked(models.State{
			Phase:     models.PhaseTimeLocked,
			Countdown: countdown.Format(remaining),
			Remaining: remaining,
		}, nil)
		g.armTickLocked()
	}
	g.mu.Unlock()
	g.deliver(n)
}

func (g *Gate) onSettled(epoch uint64) {
	g.mu.Lock()
	if g.tornDown || g.epoch != epoch || g.state.Phase != models.PhaseTimeLocked || !g.state.Arrived {
		g.mu.Unlock()
		return
	}
	g.settle = nil
	n := g.enterUnlockedLocked(models.UnlockTimeLock)
	g.mu.Unlock()
	g.deliver(n)
}

func (g *Gate) deliver(n notification) {
	if n.changed && g.onChange != nil {
		g.onChange(n.state)
	}
	if n.unlocked && g.onUnlocked != nil {
		g.onUnlocked()
	}
}
