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

// Package ledger maintains the net worth history: a table with one row
// per day, holding the net worth and the subtotal of every source. The
// set of source columns grows as new sources appear.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sboehler/networth/lib/common/compare"
	"github.com/sboehler/networth/lib/common/date"
	"github.com/sboehler/networth/lib/common/dict"
	"github.com/sboehler/networth/lib/common/set"
)

// ErrMalformedLedger is returned for tables violating the ledger
// invariants.
var ErrMalformedLedger = errors.New("malformed ledger")

// Row is the entry of one day. Sources without a value on that day are
// missing, which is distinct from zero.
type Row struct {
	Date     time.Time
	NetWorth decimal.Decimal
	values   map[string]decimal.Decimal
}

// NewRow creates a row. Sources absent from values are missing.
func NewRow(on time.Time, netWorth decimal.Decimal, values map[string]decimal.Decimal) Row {
	vs := make(map[string]decimal.Decimal, len(values))
	for k, v := range values {
		vs[k] = v
	}
	return Row{Date: date.Of(on), NetWorth: netWorth, values: vs}
}

// Value returns the value of the source and whether it is present.
func (r Row) Value(source string) (decimal.Decimal, bool) {
	v, ok := r.values[source]
	return v, ok
}

// Sum returns the sum of all source values, counting missing ones as zero.
func (r Row) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range r.values {
		sum = sum.Add(v)
	}
	return sum
}

// Table is the net worth history. Tables are treated as immutable values;
// Merge returns a new table.
type Table struct {
	columns []string
	rows    []Row
}

// NewTable creates a table with the given source columns and rows. The
// column set is extended by sources only found in rows.
func NewTable(columns []string, rows ...Row) (*Table, error) {
	cols := set.Of(columns...)
	if cols.Len() != len(columns) {
		return nil, fmt.Errorf("%w: duplicate column", ErrMalformedLedger)
	}
	for _, r := range rows {
		for _, c := range dict.SortedKeys(r.values, compare.Ordered[string]) {
			cols.Add(c)
		}
	}
	t := &Table{columns: cols.Slice(), rows: append([]Row(nil), rows...)}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Columns returns the source columns in the order they first appeared.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Header returns all column names, starting with the date and net worth.
func (t *Table) Header() []string {
	return append([]string{DateColumn, NetWorthColumn}, t.columns...)
}

// Rows returns the rows in ascending order of dates.
func (t *Table) Rows() []Row {
	return append([]Row(nil), t.rows...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Last returns the most recent row.
func (t *Table) Last() (Row, bool) {
	if len(t.rows) == 0 {
		return Row{}, false
	}
	return t.rows[len(t.rows)-1], true
}

// IsHigh returns whether the most recent row has the highest net worth
// of all rows. Ties count as a high.
func (t *Table) IsHigh() bool {
	last, ok := t.Last()
	if !ok {
		return false
	}
	for _, r := range t.rows {
		if r.NetWorth.GreaterThan(last.NetWorth) {
			return false
		}
	}
	return true
}

// Validate checks the table invariants: unique, non-reserved columns,
// strictly ascending dates and values only for known columns.
func (t *Table) Validate() error {
	cols := set.Of(t.columns...)
	if cols.Len() != len(t.columns) {
		return fmt.Errorf("%w: duplicate column", ErrMalformedLedger)
	}
	if cols.Has(DateColumn) || cols.Has(NetWorthColumn) {
		return fmt.Errorf("%w: source column uses a reserved name", ErrMalformedLedger)
	}
	byDate := compare.By(func(r Row) time.Time { return r.Date }, compare.Time)
	if !compare.IsSorted(t.rows, byDate) {
		return fmt.Errorf("%w: dates are not unique and ascending", ErrMalformedLedger)
	}
	for _, r := range t.rows {
		for c := range r.values {
			if !cols.Has(c) {
				return fmt.Errorf("%w: row %s has a value for unknown column %q", ErrMalformedLedger, date.Format(r.Date), c)
			}
		}
	}
	return nil
}
