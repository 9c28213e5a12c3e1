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

// Package price looks up current unit prices of assets. Lookups are retried
// according to a policy and cached for the lifetime of an Oracle, which
// corresponds to a single run.
package price

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sboehler/networth/lib/common/logging"
)

// ErrPriceUnavailable is matched by errors of lookups which produced no
// usable quote.
var ErrPriceUnavailable = errors.New("price unavailable")

// UnavailableError describes a failed lookup.
type UnavailableError struct {
	AssetID  string
	Attempts int
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("price unavailable for %s after %d attempt(s): %v", e.AssetID, e.Attempts, e.Err)
}

func (e *UnavailableError) Is(target error) bool { return target == ErrPriceUnavailable }

func (e *UnavailableError) Unwrap() error { return e.Err }

// Source provides quotes from an upstream market data provider.
type Source interface {
	Quote(ctx context.Context, assetID string) (decimal.Decimal, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context, assetID string) (decimal.Decimal, error)

// Quote implements Source.
func (f SourceFunc) Quote(ctx context.Context, assetID string) (decimal.Decimal, error) {
	return f(ctx, assetID)
}

// Oracle is a caching, retrying price lookup. It is safe for concurrent use.
type Oracle struct {
	source Source
	policy RetryPolicy
	log    *zap.Logger

	mu    sync.Mutex
	cache map[string]entry
	group singleflight.Group

	fetches atomic.Int64
}

type entry struct {
	price decimal.Decimal
	err   error
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithPolicy sets the retry policy.
func WithPolicy(p RetryPolicy) Option {
	return func(o *Oracle) { o.policy = p }
}

// WithLogger sets the logger receiving warnings about unavailable prices.
func WithLogger(l *zap.Logger) Option {
	return func(o *Oracle) { o.log = l }
}

// New creates an Oracle with an empty cache.
func New(src Source, opts ...Option) *Oracle {
	o := &Oracle{
		source: src,
		policy: DefaultPolicy(),
		cache:  make(map[string]entry),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log = logging.OrNop(o.log)
	return o
}

// Lookup returns the unit price of the asset. The upstream source is
// consulted at most once per asset; later calls, including failed ones,
// are answered from the cache. Failures match ErrPriceUnavailable.
func (o *Oracle) Lookup(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if e, ok := o.cached(assetID); ok {
		return e.price, e.err
	}
	v, _, _ := o.group.Do(assetID, func() (interface{}, error) {
		if e, ok := o.cached(assetID); ok {
			return e, nil
		}
		e := o.fetch(ctx, assetID)
		if ctx.Err() == nil {
			o.mu.Lock()
			o.cache[assetID] = e
			o.mu.Unlock()
		}
		return e, nil
	})
	e := v.(entry)
	return e.price, e.err
}

// Price is like Lookup, but degrades to zero when no price is available.
// It fails only when ctx is done.
func (o *Oracle) Price(ctx context.Context, assetID string) (decimal.Decimal, error) {
	p, err := o.Lookup(ctx, assetID)
	if cerr := ctx.Err(); cerr != nil {
		return decimal.Zero, cerr
	}
	if err != nil {
		return decimal.Zero, nil
	}
	return p, nil
}

// Fetches returns the number of upstream lookups performed so far.
func (o *Oracle) Fetches() int {
	return int(o.fetches.Load())
}

func (o *Oracle) cached(assetID string) (entry, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	e, ok := o.cache[assetID]
	return e, ok
}

func (o *Oracle) fetch(ctx context.Context, assetID string) entry {
	o.fetches.Add(1)
	policy := o.policy
	policy.OnRetry = func(err error, wait time.Duration) {
		o.log.Debug("retrying quote",
			zap.String("asset", assetID),
			zap.Duration("wait", wait),
			zap.Error(err))
	}
	p, attempts, err := policy.Do(ctx, func(ctx context.Context) (decimal.Decimal, error) {
		return o.source.Quote(ctx, assetID)
	})
	if err != nil && ctx.Err() != nil {
		o.log.Debug("lookup cancelled", zap.String("asset", assetID), zap.Error(err))
		return entry{price: decimal.Zero, err: &UnavailableError{AssetID: assetID, Attempts: attempts, Err: ctx.Err()}}
	}
	if err != nil {
		o.log.Warn("failed to find price, using zero",
			zap.String("asset", assetID),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return entry{price: decimal.Zero, err: &UnavailableError{AssetID: assetID, Attempts: attempts, Err: err}}
	}
	o.log.Debug("fetched price",
		zap.String("asset", assetID),
		zap.Stringer("price", p),
		zap.Int("attempts", attempts))
	return entry{price: p}
}
