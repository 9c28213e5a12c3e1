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

package table

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// TextRenderer renders a table to aligned text.
type TextRenderer struct {
	Color     bool
	Thousands bool
	Round     int32
}

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Render renders the table to w.
func (r *TextRenderer) Render(t *Table, w io.Writer) error {
	color.NoColor = !r.Color
	widths := r.widths(t)
	for _, row := range t.rows {
		if len(row.cells) == 0 {
			continue
		}
		open, close := "| ", " |\n"
		if row.cells[0].isSep() {
			open = "+-"
		}
		if row.cells[len(row.cells)-1].isSep() {
			close = "-+\n"
		}
		if err := writeString(w, open); err != nil {
			return err
		}
		for i, c := range row.cells {
			if err := r.renderCell(c, widths[i], w); err != nil {
				return err
			}
			if i < len(row.cells)-1 {
				if err := writeString(w, createSep(c, row.cells[i+1])); err != nil {
					return err
				}
			}
		}
		if err := writeString(w, close); err != nil {
			return err
		}
	}
	return writeString(w, "\n")
}

// widths computes the column widths, widening all columns of a group to
// the widest member.
func (r *TextRenderer) widths(t *Table) []int {
	widths := make([]int, t.Width())
	for _, row := range t.rows {
		for i, c := range row.cells {
			if l := r.minLengthCell(c); widths[i] < l {
				widths[i] = l
			}
		}
	}
	groups := make(map[int]int)
	for i, w := range widths {
		if g := t.columns[i]; groups[g] < w {
			groups[g] = w
		}
	}
	for i := range widths {
		widths[i] = groups[t.columns[i]]
	}
	return widths
}

func (r *TextRenderer) renderCell(c cell, l int, w io.Writer) error {
	switch t := c.(type) {

	case emptyCell:
		return writeSpace(w, l)

	case separatorCell:
		return writeString(w, strings.Repeat("-", l))

	case textCell:
		var (
			n      = utf8.RuneCountInString(t.Content)
			before int
		)
		switch t.Align {
		case Left:
			before = t.Indent
		case Right:
			before = l - n
		case Center:
			before = (l - n) / 2
		}
		if err := writeSpace(w, before); err != nil {
			return err
		}
		if err := writeString(w, t.Content); err != nil {
			return err
		}
		return writeSpace(w, l-before-n)

	case numberCell:
		var (
			s      = r.numToString(t)
			before = l - utf8.RuneCountInString(s)
		)
		if err := writeSpace(w, before); err != nil {
			return err
		}
		var err error
		switch t.n.Sign() {
		case -1:
			_, err = red.Fprint(w, s)
		case 1:
			_, err = green.Fprint(w, s)
		default:
			_, err = fmt.Fprint(w, s)
		}
		return err
	}
	return fmt.Errorf("%v is not a valid cell type", c)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeSpace(w io.Writer, l int) error {
	if l <= 0 {
		return nil
	}
	return writeString(w, strings.Repeat(" ", l))
}

func (r *TextRenderer) minLengthCell(c cell) int {
	switch t := c.(type) {
	case textCell:
		if t.Align == Left {
			return t.Indent + utf8.RuneCountInString(t.Content)
		}
		return utf8.RuneCountInString(t.Content)
	case numberCell:
		return utf8.RuneCountInString(r.numToString(t))
	}
	return 0
}

func createSep(c1, c2 cell) string {
	switch {
	case c1.isSep() && c2.isSep():
		return "-+-"
	case c1.isSep():
		return "-+ "
	case c2.isSep():
		return " +-"
	default:
		return " | "
	}
}

var k = decimal.RequireFromString("1000")

func (r *TextRenderer) numToString(c numberCell) string {
	d, places := c.n, c.places
	if places < 0 {
		places = r.Round
	}
	if r.Thousands {
		d = d.Div(k)
	}
	return addThousandsSep(d.StringFixed(places))
}

func addThousandsSep(e string) string {
	index := strings.Index(e, ".")
	if index < 0 {
		index = len(e)
	}
	var (
		b  strings.Builder
		ok bool
	)
	for i, ch := range e {
		if i >= index && ch != '-' {
			b.WriteString(e[i:])
			break
		}
		if (index-i)%3 == 0 && ok {
			b.WriteRune(',')
		}
		b.WriteRune(ch)
		if unicode.IsDigit(ch) {
			ok = true
		}
	}
	return b.String()
}
