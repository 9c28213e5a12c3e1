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

// Package valuation values source records and aggregates the results into
// the snapshot of a day.
package valuation

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sboehler/networth/lib/holding"
)

// ErrNoPrices is returned when a live record is valued without a price
// function.
var ErrNoPrices = errors.New("no price function configured")

// PriceFunc returns the unit price of an asset. Unavailable prices are
// zero; an error aborts the valuation.
type PriceFunc func(ctx context.Context, assetID string) (decimal.Decimal, error)

// Contribution is the value of one holding.
type Contribution struct {
	AssetID  string
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Value    decimal.Decimal
}

// Result is the valuation of one record.
type Result struct {
	Source        string
	Kind          holding.Kind
	Subtotal      decimal.Decimal
	Contributions []Contribution
}

// Contribution returns the contribution of the given asset.
func (r Result) Contribution(assetID string) (Contribution, bool) {
	for _, c := range r.Contributions {
		if c.AssetID == assetID {
			return c, true
		}
	}
	return Contribution{}, false
}

// Valuator values records.
type Valuator struct {
	// Prices is consulted for live holdings only.
	Prices PriceFunc
	// Report, if set, receives every result.
	Report func(Result)
}

var one = decimal.NewFromInt(1)

// Value values a record. Static holdings are worth their quantity. Live
// holdings are worth their quantity times the current price, rounded to
// cents.
func (v Valuator) Value(ctx context.Context, rec holding.Record) (Result, error) {
	if rec.Kind != holding.Static && rec.Kind != holding.Live {
		return Result{}, &holding.InvalidRecordTypeError{Path: rec.Path, Value: strconv.Itoa(int(rec.Kind))}
	}
	if rec.Kind == holding.Live && v.Prices == nil && len(rec.Holdings) > 0 {
		return Result{}, fmt.Errorf("%s: %w", rec.Name, ErrNoPrices)
	}
	res := Result{
		Source:        rec.Name,
		Kind:          rec.Kind,
		Subtotal:      decimal.Zero,
		Contributions: make([]Contribution, 0, len(rec.Holdings)),
	}
	for _, h := range rec.Holdings {
		c := Contribution{AssetID: h.AssetID, Quantity: h.Quantity}
		switch rec.Kind {
		case holding.Static:
			c.Price, c.Value = one, h.Quantity
		case holding.Live:
			p, err := v.Prices(ctx, h.AssetID)
			if err != nil {
				return Result{}, fmt.Errorf("%s: %w", rec.Name, err)
			}
			c.Price = p
			c.Value = h.Quantity.Mul(c.Price).Round(2)
		}
		res.Subtotal = res.Subtotal.Add(c.Value)
		res.Contributions = append(res.Contributions, c)
	}
	if v.Report != nil {
		v.Report(res)
	}
	return res, nil
}
