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

// Package set provides an insertion-ordered set.
package set

// Ordered is a set which remembers the order in which elements were
// first added.
type Ordered[T comparable] struct {
	index map[T]int
	elems []T
}

// Of creates a set from the given elements.
func Of[T comparable](ts ...T) *Ordered[T] {
	s := new(Ordered[T])
	s.Add(ts...)
	return s
}

// Add adds elements which are not yet present, in order.
func (s *Ordered[T]) Add(ts ...T) {
	if s.index == nil {
		s.index = make(map[T]int)
	}
	for _, t := range ts {
		if _, ok := s.index[t]; ok {
			continue
		}
		s.index[t] = len(s.elems)
		s.elems = append(s.elems, t)
	}
}

func (s *Ordered[T]) Has(t T) bool {
	_, ok := s.index[t]
	return ok
}

func (s *Ordered[T]) Len() int {
	return len(s.elems)
}

// Slice returns a copy of the elements in insertion order.
func (s *Ordered[T]) Slice() []T {
	return append([]T(nil), s.elems...)
}
