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

// Package date provides calendar-day helpers. All dates are represented as
// time.Time values at midnight UTC.
package date

import (
	"fmt"
	"time"
)

// Layout is the layout used to write dates.
const Layout = "2006-01-02"

// layouts are accepted when reading dates.
var layouts = []string{Layout, "2006-01-02 15:04:05", "2006-1-2"}

// Date creates a new date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Of truncates t to its calendar day in t's location.
func Of(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns today's date in the local time zone.
func Today() time.Time {
	return Of(time.Now().Local())
}

// Parse parses a calendar date. A time component, if present, is dropped.
func Parse(s string) (time.Time, error) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return Of(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want format %s", s, Layout)
}

// Format formats a date.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Period is a closed interval of dates. A zero bound is open.
type Period struct {
	Start, End time.Time
}

// Contains returns whether t lies within the period.
func (p Period) Contains(t time.Time) bool {
	if !p.Start.IsZero() && t.Before(p.Start) {
		return false
	}
	if !p.End.IsZero() && t.After(p.End) {
		return false
	}
	return true
}
