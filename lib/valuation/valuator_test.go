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

package valuation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sboehler/networth/lib/holding"
	"github.com/sboehler/networth/lib/price"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func record(name string, kind holding.Kind, kv ...string) holding.Record {
	rec := holding.Record{Name: name, Path: name + ".csv", Kind: kind}
	for i := 0; i+1 < len(kv); i += 2 {
		rec.Holdings = append(rec.Holdings, holding.Holding{AssetID: kv[i], Quantity: d(kv[i+1])})
	}
	return rec
}

// quotes is a price source with fixed quotes. Unknown assets fail with an
// index lookup error.
type quotes struct {
	mu     sync.Mutex
	prices map[string]string
	calls  map[string]int
}

func newQuotes(kv ...string) *quotes {
	q := &quotes{prices: make(map[string]string), calls: make(map[string]int)}
	for i := 0; i+1 < len(kv); i += 2 {
		q.prices[kv[i]] = kv[i+1]
	}
	return q
}

func (q *quotes) Quote(_ context.Context, id string) (decimal.Decimal, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls[id]++
	p, ok := q.prices[id]
	if !ok {
		return decimal.Zero, price.ErrIndexLookup
	}
	return d(p), nil
}

func newOracle(src price.Source, log *zap.Logger) *price.Oracle {
	return price.New(src,
		price.WithPolicy(price.RetryPolicy{Attempts: 3, Retryable: price.Transient}),
		price.WithLogger(log))
}

func TestValueStatic(t *testing.T) {
	v := Valuator{
		Prices: func(context.Context, string) (decimal.Decimal, error) {
			t.Fatal("price looked up for a static record")
			return decimal.Zero, nil
		},
	}

	got, err := v.Value(context.Background(), record("bank", holding.Static, "cash", "500.00", "savings", "0.333"))

	if err != nil {
		t.Fatalf("Value(): unexpected error %v", err)
	}
	want := Result{
		Source:   "bank",
		Kind:     holding.Static,
		Subtotal: d("500.333"),
		Contributions: []Contribution{
			{AssetID: "cash", Quantity: d("500"), Price: d("1"), Value: d("500")},
			{AssetID: "savings", Quantity: d("0.333"), Price: d("1"), Value: d("0.333")},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Value() returned unexpected diff (-want, +got):\n%s", diff)
	}
}

func TestValueLive(t *testing.T) {
	src := newQuotes("BTC", "50000.00", "ETH", "3000.004", "ADA", "0.45")
	o := newOracle(src, nil)
	v := Valuator{Prices: o.Price}

	got, err := v.Value(context.Background(), record("wallet", holding.Live, "BTC", "0.5", "ETH", "1.5", "ADA", "0.333"))

	if err != nil {
		t.Fatalf("Value(): unexpected error %v", err)
	}
	want := Result{
		Source:   "wallet",
		Kind:     holding.Live,
		Subtotal: d("29500.16"),
		Contributions: []Contribution{
			{AssetID: "BTC", Quantity: d("0.5"), Price: d("50000"), Value: d("25000")},
			{AssetID: "ETH", Quantity: d("1.5"), Price: d("3000.004"), Value: d("4500.01")},
			{AssetID: "ADA", Quantity: d("0.333"), Price: d("0.45"), Value: d("0.15")},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Value() returned unexpected diff (-want, +got):\n%s", diff)
	}
}

func TestValueUnavailablePrice(t *testing.T) {
	var (
		core, logs = observer.New(zapcore.WarnLevel)
		src        = newQuotes("BTC", "50000")
		v          = Valuator{Prices: newOracle(src, zap.New(core)).Price}
	)

	got, err := v.Value(context.Background(), record("wallet", holding.Live, "ETH", "2", "BTC", "0.5"))

	if err != nil {
		t.Fatalf("Value(): unexpected error %v", err)
	}
	if c, _ := got.Contribution("ETH"); !c.Value.IsZero() {
		t.Errorf("Contribution(ETH).Value = %s, want 0", c.Value)
	}
	if !got.Subtotal.Equal(d("25000")) {
		t.Errorf("Subtotal = %s, want 25000", got.Subtotal)
	}
	if n := src.calls["ETH"]; n != 3 {
		t.Errorf("got %d calls for ETH, want 3", n)
	}
	if n := logs.FilterField(zap.String("asset", "ETH")).Len(); n != 1 {
		t.Errorf("got %d warnings for ETH, want 1", n)
	}
}

func TestValueQueriesEachAssetOnce(t *testing.T) {
	var (
		src = newQuotes("BTC", "50000", "ETH", "3000")
		o   = newOracle(src, nil)
		v   = Valuator{Prices: o.Price}
		ctx = context.Background()
	)
	recs := []holding.Record{
		record("a", holding.Live, "BTC", "1", "ETH", "1"),
		record("b", holding.Live, "BTC", "2"),
		record("c", holding.Live, "ETH", "3", "BTC", "0.1", "DOGE", "10"),
		record("d", holding.Live, "DOGE", "1"),
	}
	for _, rec := range recs {
		if _, err := v.Value(ctx, rec); err != nil {
			t.Fatalf("Value(): unexpected error %v", err)
		}
	}

	want := map[string]int{"BTC": 1, "ETH": 1, "DOGE": 3}
	if diff := cmp.Diff(want, src.calls); diff != "" {
		t.Errorf("upstream calls: unexpected diff (-want, +got):\n%s", diff)
	}
	if got := o.Fetches(); got != 3 {
		t.Errorf("Fetches() = %d, want 3", got)
	}
}

func TestValueEmpty(t *testing.T) {
	for _, kind := range []holding.Kind{holding.Static, holding.Live} {
		got, err := Valuator{}.Value(context.Background(), record("empty", kind))
		if err != nil {
			t.Fatalf("Value(%v): unexpected error %v", kind, err)
		}
		if !got.Subtotal.IsZero() || len(got.Contributions) != 0 {
			t.Errorf("Value(%v) = %v, want zero subtotal and no contributions", kind, got)
		}
	}
}

func TestValueErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Valuator{}.Value(ctx, record("odd", holding.Kind(3), "cash", "1"))
	var ite *holding.InvalidRecordTypeError
	if !errors.As(err, &ite) || ite.Value != "3" {
		t.Errorf("Value(): got error %v, want InvalidRecordTypeError with value 3", err)
	}

	if _, err := (Valuator{}).Value(ctx, record("wallet", holding.Live, "BTC", "1")); !errors.Is(err, ErrNoPrices) {
		t.Errorf("Value(): got error %v, want ErrNoPrices", err)
	}
}

func TestValueCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := price.SourceFunc(func(context.Context, string) (decimal.Decimal, error) {
		cancel()
		return decimal.Zero, price.ErrIndexLookup
	})
	var reported int
	v := Valuator{
		Prices: newOracle(src, nil).Price,
		Report: func(Result) { reported++ },
	}

	got, err := v.Value(ctx, record("wallet", holding.Live, "BTC", "1"))

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Value(): got %v, %v, want context.Canceled", got, err)
	}
	if reported != 0 {
		t.Errorf("got %d reports, want none", reported)
	}
}

func TestValueReports(t *testing.T) {
	var got []string
	v := Valuator{Report: func(r Result) { got = append(got, r.Source+"="+r.Subtotal.String()) }}

	for _, rec := range []holding.Record{
		record("bank", holding.Static, "cash", "500"),
		record("house", holding.Static, "home", "250000", "mortgage", "0"),
	} {
		if _, err := v.Value(context.Background(), rec); err != nil {
			t.Fatalf("Value(): unexpected error %v", err)
		}
	}

	if diff := cmp.Diff([]string{"bank=500", "house=250000"}, got); diff != "" {
		t.Errorf("reported subtotals: unexpected diff (-want, +got):\n%s", diff)
	}
}
