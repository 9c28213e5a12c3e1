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

package holding

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const typeColumn = "type"

// Decode reads the record stored at path. The input is a CSV table with a
// header row "type,<asset>..." and exactly one row of values. Empty
// quantities are read as zero. The record is named after the file stem.
func Decode(path string, r io.Reader) (Record, error) {
	var (
		name = path
		rec  = Record{Name: Stem(path), Path: path}
	)
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return rec, fmt.Errorf("%s: %w: %v", name, ErrMalformedRecord, err)
	}
	if len(rows) != 2 {
		return rec, fmt.Errorf("%s: %w: got %d rows, want a header and one row of values", name, ErrMalformedRecord, len(rows))
	}
	header, values := rows[0], rows[1]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if len(header) == 0 || strings.TrimSpace(header[0]) != typeColumn {
		return rec, fmt.Errorf("%s: %w: first column must be %q", name, ErrMalformedRecord, typeColumn)
	}
	if rec.Kind, err = parseKind(name, values[0]); err != nil {
		return rec, err
	}
	seen := make(map[string]bool, len(header))
	for i := 1; i < len(header); i++ {
		id := strings.TrimSpace(header[i])
		if id == "" {
			return rec, fmt.Errorf("%s: %w: column %d has no asset name", name, ErrMalformedRecord, i+1)
		}
		if seen[id] {
			return rec, fmt.Errorf("%s: %w: %s", name, ErrDuplicateAsset, id)
		}
		seen[id] = true
		q, err := parseQuantity(values[i])
		if err != nil {
			return rec, fmt.Errorf("%s: %w: asset %s: %v", name, ErrMalformedRecord, id, err)
		}
		if q.IsNegative() {
			return rec, fmt.Errorf("%s: %w: asset %s: %s", name, ErrNegativeQuantity, id, q)
		}
		rec.Holdings = append(rec.Holdings, Holding{AssetID: id, Quantity: q})
	}
	return rec, nil
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func parseKind(name, s string) (Kind, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		// Accept "1.0", which spreadsheet exports produce.
		d, derr := decimal.NewFromString(s)
		if derr != nil || !d.IsInteger() {
			return 0, &InvalidRecordTypeError{Path: name, Value: s}
		}
		n = int(d.IntPart())
	}
	switch k := Kind(n); k {
	case Live, Static:
		return k, nil
	}
	return 0, &InvalidRecordTypeError{Path: name, Value: s}
}

func parseQuantity(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
