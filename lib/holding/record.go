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

// Package holding reads source records: one account or wallet each, listing
// the quantities held per asset.
package holding

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind determines how the holdings of a record are valued.
type Kind int

const (
	// Live holdings are valued at the current market price.
	Live Kind = 1
	// Static holdings are already denominated in the target currency.
	Static Kind = 2
)

func (k Kind) String() string {
	switch k {
	case Live:
		return "live"
	case Static:
		return "static"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Holding is the quantity held of one asset.
type Holding struct {
	AssetID  string
	Quantity decimal.Decimal
}

// Record is one source of holdings.
type Record struct {
	Name     string
	Path     string
	Kind     Kind
	Holdings []Holding
}

var (
	// ErrMalformedRecord is returned for records which cannot be read.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrDuplicateAsset is returned when an asset appears twice in a record.
	ErrDuplicateAsset = errors.New("duplicate asset")
	// ErrNegativeQuantity is returned for negative quantities.
	ErrNegativeQuantity = errors.New("negative quantity")
)

// InvalidRecordTypeError is returned when the type of a record is
// neither 1 (live) nor 2 (static).
type InvalidRecordTypeError struct {
	Path  string
	Value string
}

func (e *InvalidRecordTypeError) Error() string {
	return fmt.Sprintf("%s: invalid record type %q, want %d (live) or %d (static)", e.Path, e.Value, Live, Static)
}
