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

// Package networth runs the pipeline computing the net worth of a day:
// records are loaded and valued, the results aggregated and the snapshot
// merged into the ledger.
package networth

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sboehler/networth/lib/common/date"
	"github.com/sboehler/networth/lib/common/logging"
	"github.com/sboehler/networth/lib/holding"
	"github.com/sboehler/networth/lib/ledger"
	"github.com/sboehler/networth/lib/valuation"
)

// Engine runs the pipeline.
type Engine struct {
	Loader  holding.Loader
	DataDir string
	Prices  valuation.PriceFunc
	Ledger  ledger.File

	// Concurrency bounds the number of records valued in parallel.
	Concurrency int
	// DryRun leaves the ledger file untouched.
	DryRun bool
	// Progress, if set, receives a progress bar.
	Progress io.Writer
	// Report, if set, receives the result of every record. Calls are
	// serialized but their order is unspecified.
	Report func(valuation.Result)
	Logger *zap.Logger
}

// Outcome is the result of a run.
type Outcome struct {
	Summary valuation.Summary
	Table   *ledger.Table
	NewHigh bool
	Saved   bool
}

// Run computes the snapshot of the given day and merges it into the
// ledger. Nothing is written if any step fails.
func (e *Engine) Run(ctx context.Context, on time.Time) (Outcome, error) {
	log := logging.OrNop(e.Logger)
	recs, err := e.Loader.Load(e.DataDir)
	if err != nil {
		return Outcome{}, err
	}
	log.Debug("loaded records", zap.String("dir", e.DataDir), zap.Int("records", len(recs)))

	results, err := e.value(ctx, recs)
	if err != nil {
		return Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	summary, err := valuation.Aggregator{Date: date.Of(on)}.Aggregate(results)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Summary: summary}
	if err := e.record(ctx, &out, log); err != nil {
		return Outcome{}, err
	}
	if out.NewHigh {
		log.Info("new all-time high", zap.Stringer("net_worth", summary.Snapshot.NetWorth))
	}
	return out, nil
}

func (e *Engine) value(ctx context.Context, recs []holding.Record) ([]valuation.Result, error) {
	var bar *pb.ProgressBar
	if e.Progress != nil {
		bar = pb.New(len(recs)).SetWriter(e.Progress).Start()
		defer bar.Finish()
	}
	var mu sync.Mutex
	v := valuation.Valuator{
		Prices: e.Prices,
		Report: func(r valuation.Result) {
			mu.Lock()
			defer mu.Unlock()
			if bar != nil {
				bar.Increment()
			}
			if e.Report != nil {
				e.Report(r)
			}
		},
	}
	limit := e.Concurrency
	if limit < 1 {
		limit = 1
	}
	results := make([]valuation.Result, len(recs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, rec := range recs {
		i, rec := i, rec
		g.Go(func() error {
			r, err := v.Value(ctx, rec)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) record(ctx context.Context, out *Outcome, log *zap.Logger) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !e.DryRun {
		var unlock func() error
		if unlock, err = e.Ledger.Lock(); err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, unlock())
		}()
	}
	tbl, err := e.Ledger.Load()
	if err != nil {
		return err
	}
	m := ledger.Merger{
		OnNewHigh: func(ledger.Snapshot) { out.NewHigh = true },
	}
	if out.Table, err = m.Merge(tbl, out.Summary.Snapshot); err != nil {
		return err
	}
	if e.DryRun {
		return nil
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	if err = e.Ledger.Save(out.Table); err != nil {
		return err
	}
	out.Saved = true
	log.Info("saved ledger",
		zap.String("path", e.Ledger.Path),
		zap.Int("rows", out.Table.Len()),
		zap.Stringer("net_worth", out.Summary.Snapshot.NetWorth))
	return nil
}
