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
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/sboehler/networth/lib/common/compare"
	"github.com/sboehler/networth/lib/common/date"
	"github.com/sboehler/networth/lib/common/set"
)

// NonMonotonicDateError is returned when a snapshot predates the most
// recent row of the ledger.
type NonMonotonicDateError struct {
	Last, Date time.Time
}

func (e *NonMonotonicDateError) Error() string {
	return fmt.Sprintf("snapshot date %s precedes the last ledger date %s", date.Format(e.Date), date.Format(e.Last))
}

// Merger merges snapshots into tables.
type Merger struct {
	// OnNewHigh, if set, is called when the merged snapshot has the
	// highest net worth of the table.
	OnNewHigh func(Snapshot)
}

// Merge merges s into t using a zero Merger.
func Merge(t *Table, s Snapshot) (*Table, error) {
	return Merger{}.Merge(t, s)
}

// Merge returns a new table containing the rows of t and a row for s.
// A row with the same date as s is replaced; a snapshot older than the
// last row is rejected. Sources not seen before become new columns, which
// are missing in all earlier rows. t is not modified; a nil t is empty.
func (m Merger) Merge(t *Table, s Snapshot) (*Table, error) {
	if t == nil {
		t = new(Table)
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	var (
		row  = s.row()
		rows = slices.Clone(t.rows)
		cols = set.Of(t.columns...)
	)
	for _, e := range s.Sources {
		cols.Add(e.Source)
	}
	if last, ok := t.Last(); ok {
		switch compare.Time(last.Date, row.Date) {
		case compare.Greater:
			return nil, &NonMonotonicDateError{Last: last.Date, Date: row.Date}
		case compare.Equal:
			rows = rows[:len(rows)-1]
		}
	}
	res := &Table{columns: cols.Slice(), rows: append(rows, row)}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if m.OnNewHigh != nil && res.IsHigh() {
		m.OnNewHigh(s)
	}
	return res, nil
}

func (s Snapshot) row() Row {
	values := make(map[string]decimal.Decimal, len(s.Sources))
	for _, e := range s.Sources {
		values[e.Source] = e.Value
	}
	return Row{Date: date.Of(s.Date), NetWorth: s.NetWorth, values: values}
}
