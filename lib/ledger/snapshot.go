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

package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sboehler/networth/lib/common/date"
)

// Names of the fixed ledger columns.
const (
	DateColumn     = "date"
	NetWorthColumn = "net_worth"
)

// ErrInvalidSnapshot is returned for snapshots which cannot be merged.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Entry is the subtotal of one source.
type Entry struct {
	Source string
	Value  decimal.Decimal
}

// Snapshot is the aggregated state of one day.
type Snapshot struct {
	Date     time.Time
	NetWorth decimal.Decimal
	Sources  []Entry
}

// NewSnapshot creates a snapshot whose net worth is the sum of the
// entries, rounded to cents.
func NewSnapshot(on time.Time, entries []Entry) Snapshot {
	return Snapshot{
		Date:     date.Of(on),
		NetWorth: Total(entries),
		Sources:  entries,
	}
}

// Total returns the sum of the entry values, rounded to cents.
func Total(entries []Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Value)
	}
	return sum.Round(2)
}

// PerSource returns the subtotals keyed by source.
func (s Snapshot) PerSource() map[string]decimal.Decimal {
	res := make(map[string]decimal.Decimal, len(s.Sources))
	for _, e := range s.Sources {
		res[e.Source] = e.Value
	}
	return res
}

// Check verifies that source names are unique and usable as columns and
// that the net worth matches the sum of the sources.
func (s Snapshot) Check() error {
	if s.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidSnapshot)
	}
	seen := make(map[string]bool, len(s.Sources))
	for _, e := range s.Sources {
		switch {
		case e.Source == "":
			return fmt.Errorf("%w: empty source name", ErrInvalidSnapshot)
		case e.Source == DateColumn || e.Source == NetWorthColumn:
			return fmt.Errorf("%w: source name %q is reserved", ErrInvalidSnapshot, e.Source)
		case seen[e.Source]:
			return fmt.Errorf("%w: duplicate source %q", ErrInvalidSnapshot, e.Source)
		}
		seen[e.Source] = true
	}
	if total := Total(s.Sources); !total.Equal(s.NetWorth.Round(2)) {
		return fmt.Errorf("%w: net worth %s does not match the sum of sources %s", ErrInvalidSnapshot, s.NetWorth, total)
	}
	return nil
}
