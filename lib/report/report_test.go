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
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/sboehler/networth/lib/common/date"
	"github.com/sboehler/networth/lib/common/table"
	"github.com/sboehler/networth/lib/holding"
	"github.com/sboehler/networth/lib/ledger"
	"github.com/sboehler/networth/lib/valuation"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func summary(t *testing.T) valuation.Summary {
	t.Helper()
	results := []valuation.Result{
		{
			Source:   "bank",
			Kind:     holding.Static,
			Subtotal: d("500"),
			Contributions: []valuation.Contribution{
				{AssetID: "cash", Quantity: d("500"), Price: d("1"), Value: d("500")},
			},
		},
		{
			Source:   "wallet",
			Kind:     holding.Live,
			Subtotal: d("25000"),
			Contributions: []valuation.Contribution{
				{AssetID: "BTC", Quantity: d("0.5"), Price: d("50000"), Value: d("25000")},
				{AssetID: "ETH", Quantity: d("2"), Price: d("0"), Value: d("0")},
			},
		},
	}
	s, err := valuation.Aggregator{Date: date.Date(2024, 1, 1)}.Aggregate(results)
	if err != nil {
		t.Fatalf("Aggregate(): unexpected error %v", err)
	}
	return s
}

func renderCSV(t *testing.T, tbl *table.Table) string {
	t.Helper()
	var buf bytes.Buffer
	if err := new(table.CSVRenderer).Render(tbl, &buf); err != nil {
		t.Fatalf("Render(): unexpected error %v", err)
	}
	return buf.String()
}

func TestSummary(t *testing.T) {
	got := renderCSV(t, Renderer{}.Summary(summary(t)))

	want := "Source,Quantity,Price,Value\n" +
		"bank,,,500\n" +
		"wallet,,,25000\n" +
		"Holdings,,,\n" +
		"ETH,2,,0\n" +
		"cash,500,,500\n" +
		"BTC,0.5,,25000\n" +
		"Net worth,,,25500\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summary() returned unexpected diff (-want, +got):\n%s", diff)
	}
}

func TestSummaryDetails(t *testing.T) {
	got := renderCSV(t, Renderer{Details: true}.Summary(summary(t)))

	want := "Source,Quantity,Price,Value\n" +
		"bank,,,500\n" +
		"cash,500,,500\n" +
		"wallet,,,25000\n" +
		"BTC,0.5,50000,25000\n" +
		"ETH,2,0,0\n" +
		"Holdings,,,\n" +
		"ETH,2,,0\n" +
		"cash,500,,500\n" +
		"BTC,0.5,,25000\n" +
		"Net worth,,,25500\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summary() returned unexpected diff (-want, +got):\n%s", diff)
	}
}

func history(t *testing.T) *ledger.Table {
	t.Helper()
	tbl, err := ledger.NewTable([]string{"cash", "home"},
		ledger.NewRow(date.Date(2024, 1, 1), d("500"), map[string]decimal.Decimal{"cash": d("500")}),
		ledger.NewRow(date.Date(2024, 1, 2), d("1500"), map[string]decimal.Decimal{"cash": d("500"), "home": d("1000")}),
	)
	if err != nil {
		t.Fatalf("NewTable(): unexpected error %v", err)
	}
	return tbl
}

func TestHistory(t *testing.T) {
	var (
		buf bytes.Buffer
		r   = table.TextRenderer{Round: 2}
	)
	if err := r.Render(History(history(t), date.Period{}), &buf); err != nil {
		t.Fatalf("Render(): unexpected error %v", err)
	}

	want := "" +
		"+------------+-----------+--------+----------+\n" +
		"|    Date    | Net worth |  cash  |   home   |\n" +
		"+------------+-----------+--------+----------+\n" +
		"| 2024-01-01 |    500.00 | 500.00 |          |\n" +
		"| 2024-01-02 |  1,500.00 | 500.00 | 1,000.00 |\n" +
		"+------------+-----------+--------+----------+\n" +
		"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("History() returned unexpected diff (-want, +got):\n%s", diff)
	}
}

func TestHistoryPeriod(t *testing.T) {
	got := renderCSV(t, History(history(t), date.Period{Start: date.Date(2024, 1, 2)}))

	want := "Date,Net worth,cash,home\n" +
		"2024-01-02,1500,500,1000\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("History() returned unexpected diff (-want, +got):\n%s", diff)
	}
}
