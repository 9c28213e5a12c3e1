// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package price

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/sboehler/networth/lib/quotes/yahoo"
)

// ErrIndexLookup is returned by sources when a quote could not be located
// in the upstream response. It is retried.
var ErrIndexLookup = errors.New("quote index lookup failed")

// RetryPolicy describes how often a lookup is attempted.
type RetryPolicy struct {
	// Attempts is the total number of attempts, including the first one.
	Attempts int
	// Backoff is the pause between attempts.
	Backoff time.Duration
	// Timeout bounds a single attempt. Zero means no bound.
	Timeout time.Duration
	// Retryable decides whether a failed attempt is repeated.
	Retryable func(error) bool
	// OnRetry, if set, is called before every repeated attempt.
	OnRetry func(err error, wait time.Duration)
}

// DefaultPolicy retries timeouts and index lookup failures twice.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:  3,
		Backoff:   250 * time.Millisecond,
		Timeout:   10 * time.Second,
		Retryable: Transient,
	}
}

// Transient reports whether err belongs to the timeout or index lookup
// class of failures.
func Transient(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrIndexLookup) ||
		yahoo.IsTransient(err)
}

// Do calls f until it succeeds, fails with a non-retryable error, the
// attempts are exhausted or ctx is done. It returns the number of attempts
// made.
func (p RetryPolicy) Do(ctx context.Context, f func(context.Context) (decimal.Decimal, error)) (decimal.Decimal, int, error) {
	var (
		res      decimal.Decimal
		attempts int
	)
	op := func() error {
		attempts++
		var err error
		if res, err = p.attempt(ctx, f); err != nil && !p.retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.RetryNotify(op, p.backOff(ctx), p.OnRetry); err != nil {
		return decimal.Zero, attempts, err
	}
	return res, attempts, nil
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	retries := p.Attempts - 1
	if retries < 0 {
		retries = 0
	}
	b := backoff.WithContext(backoff.NewConstantBackOff(p.Backoff), ctx)
	return backoff.WithMaxRetries(b, uint64(retries))
}

func (p RetryPolicy) retryable(err error) bool {
	return p.Retryable != nil && p.Retryable(err)
}

func (p RetryPolicy) attempt(ctx context.Context, f func(context.Context) (decimal.Decimal, error)) (decimal.Decimal, error) {
	if p.Timeout <= 0 {
		return f(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	return f(ctx)
}
