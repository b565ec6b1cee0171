// Package queries contains read-only operations over the dispatch store.
// Handlers read through GORM directly and retry transparently while the
// store reports errs.ErrStorageUnavailable.
package queries

import (
	"context"
	"time"

	"dispatch/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// Classifier maps a storage driver error onto the errs taxonomy. Errors it
// reports as errs.ErrStorageUnavailable are retried.
type Classifier func(error) error

// RetryPolicy bounds the transparent retries of a read. A zero MaxElapsed
// disables retrying. Without a Classifier errors are taken as they are.
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxElapsed      time.Duration
	Classify        Classifier
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialInterval: 50 * time.Millisecond,
		MaxElapsed:      2 * time.Second,
	}
}

// WithClassifier returns a copy of p that classifies read errors with c.
func (p RetryPolicy) WithClassifier(c Classifier) RetryPolicy {
	p.Classify = c
	return p
}

func (p RetryPolicy) classify(err error) error {
	if err == nil || p.Classify == nil {
		return err
	}
	return p.Classify(err)
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOffContext {
	if p.MaxElapsed <= 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}

	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	b.MaxElapsedTime = p.MaxElapsed
	return backoff.WithContext(b, ctx)
}

// run executes read until it succeeds, fails permanently or the policy gives
// up. Driver errors are classified first, so only storage outages are retried.
func (p RetryPolicy) run(ctx context.Context, read func() error) error {
	return backoff.Retry(func() error {
		err := p.classify(read())
		if err == nil {
			return nil
		}
		if errs.IsTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}, p.backOff(ctx))
}
