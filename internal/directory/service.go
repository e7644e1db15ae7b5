package directory

import (
	"context"
	"time"

	"huddle/internal/logger"
	"huddle/pkg/metrics"
)

// Resolver turns user IDs into display names with a guaranteed answer. Every
// failure path ends in the deterministic placeholder, so callers never see an
// error and never block beyond the provider timeout.
type Resolver struct {
	provider Provider
	logger   logger.Logger
}

func NewResolver(provider Provider, log logger.Logger) *Resolver {
	return &Resolver{provider: provider, logger: log}
}

func (r *Resolver) DisplayName(ctx context.Context, userID string) string {
	if r.provider == nil {
		metrics.IncDirectoryLookup("placeholder", "no_provider")
		return Placeholder(userID).DisplayName
	}

	start := time.Now()
	info, err := r.provider.Lookup(ctx, userID)
	metrics.ObserveDirectoryLookupDuration("provider", time.Since(start))

	if err != nil {
		metrics.IncDirectoryLookup("provider", "error")
		r.logger.DebugwCtx(ctx, "Directory lookup failed, using placeholder",
			"user_id", userID,
			"error", err,
		)
		return Placeholder(userID).DisplayName
	}

	metrics.IncDirectoryLookup("provider", "success")
	return info.DisplayName
}
