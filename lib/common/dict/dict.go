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

// Package dict provides helpers for maps.
package dict

import (
	"golang.org/x/exp/maps"

	"github.com/sboehler/networth/lib/common/compare"
)

// SortedKeys returns the keys of m, sorted by c.
func SortedKeys[K comparable, V any](m map[K]V, c compare.Compare[K]) []K {
	res := maps.Keys(m)
	compare.Sort(res, c)
	return res
}

// SortedValues returns the values of m, sorted by c.
func SortedValues[K comparable, V any](m map[K]V, c compare.Compare[V]) []V {
	res := maps.Values(m)
	compare.Sort(res, c)
	return res
}
