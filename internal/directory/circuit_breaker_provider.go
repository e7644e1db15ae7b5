package directory

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker"

	"huddle/internal/config"
	"huddle/pkg/circuitbreaker"
)

// CircuitBreakerProvider stops hammering the directory API once it starts
// failing. Disabled breaker means transparent passthrough.
type CircuitBreakerProvider struct {
	inner Provider
	cb    *circuitbreaker.Wrapper
}

func NewCircuitBreakerProvider(inner Provider, cfg config.CircuitBreakerConfig) *CircuitBreakerProvider {
	if !cfg.Enabled {
		return &CircuitBreakerProvider{inner: inner}
	}

	cbConfig := circuitbreaker.DefaultConfig("directory-api")
	if cfg.MaxRequests > 0 {
		cbConfig.MaxRequests = cfg.MaxRequests
	}
	if cfg.Interval > 0 {
		cbConfig.Interval = cfg.Interval
	}
	if cfg.Timeout > 0 {
		cbConfig.Timeout = cfg.Timeout
	}
	if cfg.FailureRatio > 0 && cfg.MinRequests > 0 {
		cbConfig.ReadyToTrip = func(counts gobreaker.Counts) bool {
			if counts.Requests < uint32(cfg.MinRequests) {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		}
	}

	return &CircuitBreakerProvider{
		inner: inner,
		cb:    circuitbreaker.NewWrapper(cbConfig),
	}
}

func (p *CircuitBreakerProvider) Lookup(ctx context.Context, userID string) (DisplayInfo, error) {
	if p.cb == nil {
		return p.inner.Lookup(ctx, userID)
	}

	result, err := p.cb.ExecuteWithContext(ctx, func() (interface{}, error) {
		return p.inner.Lookup(ctx, userID)
	})

	p.cb.RecordRequest(err == nil)

	if err != nil {
		if p.cb.IsOpen() {
			return DisplayInfo{}, fmt.Errorf("circuit breaker is open for directory-api: %w", err)
		}
		return DisplayInfo{}, err
	}

	info, ok := result.(DisplayInfo)
	if !ok {
		return DisplayInfo{}, fmt.Errorf("provider returned invalid result type")
	}

	return info, nil
}

var _ Provider = (*CircuitBreakerProvider)(nil)
