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

// Package compare provides composable orderings.
package compare

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Order is the result of a comparison.
type Order int

const (
	Smaller Order = -1
	Equal   Order = 0
	Greater Order = 1
)

// Compare compares two values.
type Compare[T any] func(t1, t2 T) Order

func Ordered[T constraints.Ordered](t1, t2 T) Order {
	if t1 < t2 {
		return Smaller
	}
	if t1 == t2 {
		return Equal
	}
	return Greater
}

func Time(t1, t2 time.Time) Order {
	switch {
	case t1.Before(t2):
		return Smaller
	case t1.After(t2):
		return Greater
	}
	return Equal
}

func Decimal(t1, t2 decimal.Decimal) Order {
	return Order(t1.Cmp(t2))
}

// By lifts a comparison on a key to a comparison on values.
func By[T, K any](key func(T) K, cmp Compare[K]) Compare[T] {
	return func(t1, t2 T) Order {
		return cmp(key(t1), key(t2))
	}
}

func Desc[T any](cmp Compare[T]) Compare[T] {
	return func(t1, t2 T) Order {
		return cmp(t2, t1)
	}
}

func Combine[T any](cmp ...Compare[T]) Compare[T] {
	return func(t1, t2 T) Order {
		for _, c := range cmp {
			if o := c(t1, t2); o != Equal {
				return o
			}
		}
		return Equal
	}
}

// Sort sorts ts stably.
func Sort[T any](ts []T, cmp Compare[T]) {
	slices.SortStableFunc(ts, func(t1, t2 T) bool {
		return cmp(t1, t2) == Smaller
	})
}

// IsSorted reports whether ts is strictly increasing under cmp.
func IsSorted[T any](ts []T, cmp Compare[T]) bool {
	for i := 1; i < len(ts); i++ {
		if cmp(ts[i-1], ts[i]) != Smaller {
			return false
		}
	}
	return true
}
