package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

// ErrOpen is returned while the breaker rejects calls.
var ErrOpen = errors.New("circuit breaker is open")

type Config struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before letting trial calls through.
	OpenTimeout time.Duration
	// HalfOpenMax is the number of trial calls allowed while half-open.
	HalfOpenMax uint32
	// IsSuccessful decides whether an error counts against the breaker. Nil
	// counts every non-nil error.
	IsSuccessful func(err error) bool
	// OnStateChange is called with the new state name after every transition.
	OnStateChange func(name, state string)
}

type Breaker struct {
	cb           *gobreaker.TwoStepCircuitBreaker
	name         string
	isSuccessful func(err error) bool
}

func New(log *logger.Logger, cfg Config) *Breaker {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenMax == 0 {
		cfg.HalfOpenMax = 1
	}
	log = log.With("breaker", cfg.Name)

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenMax,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", "from", stateName(from), "to", stateName(to))
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(name, stateName(to))
			}
		},
	}
	isSuccessful := cfg.IsSuccessful
	if isSuccessful == nil {
		isSuccessful = func(err error) bool { return err == nil }
	}
	return &Breaker{
		cb:           gobreaker.NewTwoStepCircuitBreaker(settings),
		name:         cfg.Name,
		isSuccessful: isSuccessful,
	}
}

// Call runs fn through the breaker. A nil breaker calls fn directly.
//
// A call that fails after ctx was cancelled is not counted while the breaker is
// closed. An abandoned half-open trial call counts as failed.
func Call[T any](ctx context.Context, b *Breaker, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if b == nil {
		return fn(ctx)
	}
	done, err := b.cb.Allow()
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, ErrOpen
		}
		return zero, err
	}
	defer func() {
		if e := recover(); e != nil {
			done(false)
			panic(e)
		}
	}()

	out, err := fn(ctx)
	if err != nil && ctx.Err() != nil {
		if b.cb.State() != gobreaker.StateClosed {
			done(false)
		}
		return out, err
	}
	done(b.isSuccessful(err))
	return out, err
}

func (b *Breaker) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// State reports "closed", "open" or "half-open".
func (b *Breaker) State() string {
	if b == nil {
		return stateName(gobreaker.StateClosed)
	}
	return stateName(b.cb.State())
}

func stateName(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateOpen:
		return "open"
	case gobreaker.StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}
