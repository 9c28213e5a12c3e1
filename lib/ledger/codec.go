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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sboehler/networth/lib/common/date"
	"github.com/sboehler/networth/lib/common/set"
)

// Encode writes t as CSV with the header "date,net_worth,<sources>...".
// Missing values are written as empty cells.
func Encode(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	for _, r := range t.rows {
		rec := make([]string, 0, 2+len(t.columns))
		rec = append(rec, date.Format(r.Date), r.NetWorth.String())
		for _, c := range t.columns {
			if v, ok := r.values[c]; ok {
				rec = append(rec, v.String())
			} else {
				rec = append(rec, "")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads a table written by Encode. Dates may carry a time
// component, which is dropped. Source cells which are not numbers are read
// as missing. An empty input is an empty table.
func Decode(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return new(Table), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLedger, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if len(header) < 2 || header[0] != DateColumn || header[1] != NetWorthColumn {
		return nil, fmt.Errorf("%w: header must start with %s,%s", ErrMalformedLedger, DateColumn, NetWorthColumn)
	}
	columns := header[2:]
	if set.Of(columns...).Len() != len(columns) {
		return nil, fmt.Errorf("%w: duplicate column", ErrMalformedLedger)
	}
	t := &Table{columns: append([]string(nil), columns...)}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLedger, err)
		}
		row, err := decodeRow(columns, rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedLedger, line, err)
		}
		t.rows = append(t.rows, row)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeRow(columns []string, rec []string) (Row, error) {
	on, err := date.Parse(strings.TrimSpace(rec[0]))
	if err != nil {
		return Row{}, err
	}
	nw, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
	if err != nil {
		return Row{}, fmt.Errorf("invalid net worth %q", rec[1])
	}
	row := Row{Date: on, NetWorth: nw, values: make(map[string]decimal.Decimal)}
	for i, c := range columns {
		s := strings.TrimSpace(rec[i+2])
		if s == "" {
			continue
		}
		if v, err := decimal.NewFromString(s); err == nil {
			row.values[c] = v
		}
	}
	return row, nil
}
