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

// Package report lays out the summary of a run and the net worth history
// as tables.
package report

import (
	"github.com/sboehler/networth/lib/common/table"
	"github.com/sboehler/networth/lib/holding"
	"github.com/sboehler/networth/lib/valuation"
)

// Renderer builds summary tables.
type Renderer struct {
	// Details adds a row for every holding of a source.
	Details bool
}

// Summary lays out the subtotal per source, the combined holdings sorted
// by value and the net worth.
func (rn Renderer) Summary(s valuation.Summary) *table.Table {
	tbl := table.New(1, 3)
	tbl.AddSeparatorRow()
	tbl.AddRow().
		AddText("Source", table.Center).
		AddText("Quantity", table.Center).
		AddText("Price", table.Center).
		AddText("Value", table.Center)
	tbl.AddSeparatorRow()

	for _, r := range s.Results {
		tbl.AddRow().AddText(r.Source, table.Left).AddEmpty().AddEmpty().AddNumber(r.Subtotal)
		if !rn.Details {
			continue
		}
		for _, c := range r.Contributions {
			row := tbl.AddRow().AddIndented(c.AssetID, 2).AddText(c.Quantity.String(), table.Right)
			if r.Kind == holding.Live {
				row.AddText(c.Price.String(), table.Right)
			} else {
				row.AddEmpty()
			}
			row.AddNumber(c.Value)
		}
	}
	tbl.AddSeparatorRow()

	tbl.AddRow().AddText("Holdings", table.Left).FillEmpty()
	for _, p := range s.Holdings.SortedByValue() {
		tbl.AddRow().
			AddIndented(p.AssetID, 2).
			AddText(p.Quantity.String(), table.Right).
			AddEmpty().
			AddNumber(p.Value)
	}
	tbl.AddSeparatorRow()

	tbl.AddRow().AddText("Net worth", table.Left).AddEmpty().AddEmpty().AddNumber(s.Snapshot.NetWorth)
	tbl.AddSeparatorRow()
	return tbl
}
