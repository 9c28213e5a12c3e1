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

package report

import (
	"github.com/sboehler/networth/lib/common/date"
	"github.com/sboehler/networth/lib/common/table"
	"github.com/sboehler/networth/lib/ledger"
)

// History lays out the ledger rows within the period. Missing values are
// left blank.
func History(t *ledger.Table, period date.Period) *table.Table {
	cols := t.Columns()
	groups := make([]int, 2+len(cols))
	for i := range groups {
		groups[i] = 1
	}
	tbl := table.New(groups...)
	tbl.AddSeparatorRow()
	header := tbl.AddRow().AddText("Date", table.Center).AddText("Net worth", table.Center)
	for _, c := range cols {
		header.AddText(c, table.Center)
	}
	tbl.AddSeparatorRow()
	for _, r := range t.Rows() {
		if !period.Contains(r.Date) {
			continue
		}
		row := tbl.AddRow().AddText(date.Format(r.Date), table.Left).AddNumber(r.NetWorth)
		for _, c := range cols {
			if v, ok := r.Value(c); ok {
				row.AddNumber(v)
			} else {
				row.AddEmpty()
			}
		}
	}
	tbl.AddSeparatorRow()
	return tbl
}
