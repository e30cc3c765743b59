package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/runger/movie-explorer/internal/omdb"
)

// Provider is the catalog collaborator. *omdb.Client implements it.
type Provider interface {
	Search(ctx context.Context, phrase string) (*omdb.SearchResponse, error)
}

// RetryPolicy controls how many attempts one lookup may take.
// The zero value makes a single attempt.
type RetryPolicy struct {
	MaxAttempts int           // <= 1 means one attempt
	Backoff     time.Duration // Attempt n waits n*Backoff before attempt n+1
}

// DefaultRetryPolicy is a single attempt with no retry.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 1}
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	if p.Backoff <= 0 {
		return 0
	}
	return time.Duration(attempt) * p.Backoff
}

// Resolve runs one lookup for phrase under policy and maps the provider
// answer into items. Failures come back as *Error; cancellation comes back
// as ctx.Err().
func Resolve(ctx context.Context, p Provider, phrase string, policy RetryPolicy, logger *slog.Logger) ([]Item, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	attempts := policy.attempts()
	var lastErr *Error
	for attempt := 1; attempt <= attempts; attempt++ {
		items, err := lookupOnce(ctx, p, phrase)
		if err == nil {
			return items, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = Classify(err)
		if !lastErr.Retryable() || attempt == attempts {
			break
		}

		wait := policy.delay(attempt)
		logger.Warn("search attempt failed, retrying",
			"attempt", attempt,
			"max_attempts", attempts,
			"wait_ms", wait.Milliseconds(),
			"error", err,
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func lookupOnce(ctx context.Context, p Provider, phrase string) (items []Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("search: provider panic: %v", r)
		}
	}()

	resp, err := p.Search(ctx, phrase)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("search: provider returned no response")
	}
	if !resp.Found() {
		return nil, notFoundError(resp.Error)
	}
	return itemsFromRecords(resp.Search), nil
}
