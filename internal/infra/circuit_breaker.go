package infra

import (
	"errors"
	"sync"
	"time"
)

// El gateway de pagos es el único colaborador externo que puede caerse sin
// aviso durante un checkout. Las llamadas salientes pasan por este breaker:
// tras una racha de fallos deja de intentar (fast-fail) y sondea la
// recuperación con una llamada de prueba antes de reabrir el tráfico.

// CBState is the breaker state exposed on /health as "pago_gateway".
type CBState int

const (
	CBClosed   CBState = iota // gateway sano, las llamadas pasan
	CBOpen                    // gateway caído, fast-fail sin llamar
	CBHalfOpen                // sondeando recuperación
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned by Execute while the breaker is fast-failing.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig holds the gateway-specific thresholds, loaded from the
// PAGO_CB_* settings.
type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive gateway failures before fast-failing
	SuccessThreshold int           // consecutive probe successes before closing again
	OpenTimeout      time.Duration // wait before the first recovery probe
}

// DefaultCBConfig returns the thresholds used when no PAGO_CB_* override is
// set: 5 failures to open, 2 probes to close, 60s between probes.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

// CircuitBreaker serializes every state transition behind a mutex; a single
// instance is shared by the checkout and webhook paths.
type CircuitBreaker struct {
	mu               sync.Mutex
	state            CBState
	failureCount     int
	successCount     int
	lastFailureTime  time.Time
	failureThreshold int
	successThreshold int
	openTimeout      time.Duration
}

// NewCircuitBreaker starts closed. Non-positive thresholds fall back to the
// defaults so a partially-set PAGO_CB_* block cannot wedge the breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{
		state:            CBClosed,
		failureThreshold: cfg.FailureThreshold,
		successThreshold: cfg.SuccessThreshold,
		openTimeout:      cfg.OpenTimeout,
	}
}

// State reports the current state, moving open → half-open once the probe
// window has elapsed. Reading the state is what arms the probe, so /health
// polling alone is enough to eventually let a request through.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CBOpen && time.Since(cb.lastFailureTime) >= cb.openTimeout {
		cb.state = CBHalfOpen
		cb.successCount = 0
	}
	return cb.state
}

// Execute runs one gateway call through the breaker. While open it returns
// ErrCircuitOpen without invoking fn; the caller maps that to a 500 like any
// other gateway failure.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == CBOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.recordFailure()
		return err
	}
	cb.recordSuccess()
	return nil
}

func (cb *CircuitBreaker) recordFailure() {
	cb.failureCount++
	cb.lastFailureTime = time.Now()

	switch cb.state {
	case CBClosed:
		if cb.failureCount >= cb.failureThreshold {
			cb.state = CBOpen
			cb.successCount = 0
		}
	case CBHalfOpen:
		// La sonda falló: el gateway sigue caído.
		cb.state = CBOpen
		cb.failureCount = 0
	}
}

func (cb *CircuitBreaker) recordSuccess() {
	switch cb.state {
	case CBClosed:
		cb.failureCount = 0
	case CBHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.successThreshold {
			cb.state = CBClosed
			cb.failureCount = 0
			cb.successCount = 0
		}
	}
}
