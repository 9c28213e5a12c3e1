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
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sboehler/networth/lib/common/compare"
	"github.com/sboehler/networth/lib/ledger"
)

// DuplicateSourceError is returned when two records have the same name.
type DuplicateSourceError struct {
	Name string
}

func (e *DuplicateSourceError) Error() string {
	return fmt.Sprintf("duplicate source %q: two records resolve to the same ledger column", e.Name)
}

// Position is the combined holding of an asset across all sources.
type Position struct {
	AssetID  string
	Quantity decimal.Decimal
	Value    decimal.Decimal
}

// Holdings are positions in the order their assets first appeared.
type Holdings []Position

// Get returns the position of an asset.
func (hs Holdings) Get(assetID string) (Position, bool) {
	for _, p := range hs {
		if p.AssetID == assetID {
			return p, true
		}
	}
	return Position{}, false
}

// SortedByValue returns a copy sorted by ascending value.
func (hs Holdings) SortedByValue() Holdings {
	res := append(Holdings(nil), hs...)
	compare.Sort(res, compare.By(func(p Position) decimal.Decimal { return p.Value }, compare.Decimal))
	return res
}

// Total returns the sum of the position values.
func (hs Holdings) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range hs {
		sum = sum.Add(p.Value)
	}
	return sum
}

// Summary is the outcome of aggregating the results of a run.
type Summary struct {
	Snapshot ledger.Snapshot
	Holdings Holdings
	Results  []Result
}

// Aggregator combines valuation results.
type Aggregator struct {
	Date time.Time
}

// Aggregate combines the results into the snapshot of the aggregator's
// date and the combined holdings.
func (a Aggregator) Aggregate(results []Result) (Summary, error) {
	var (
		entries = make([]ledger.Entry, 0, len(results))
		seen    = make(map[string]bool, len(results))
		index   = make(map[string]int)
		hs      Holdings
	)
	for _, r := range results {
		if seen[r.Source] {
			return Summary{}, &DuplicateSourceError{Name: r.Source}
		}
		seen[r.Source] = true
		entries = append(entries, ledger.Entry{Source: r.Source, Value: r.Subtotal})
		for _, c := range r.Contributions {
			i, ok := index[c.AssetID]
			if !ok {
				i = len(hs)
				index[c.AssetID] = i
				hs = append(hs, Position{AssetID: c.AssetID, Quantity: decimal.Zero, Value: decimal.Zero})
			}
			hs[i].Quantity = hs[i].Quantity.Add(c.Quantity)
			hs[i].Value = hs[i].Value.Add(c.Value)
		}
	}
	return Summary{
		Snapshot: ledger.NewSnapshot(a.Date, entries),
		Holdings: hs,
		Results:  append([]Result(nil), results...),
	}, nil
}
