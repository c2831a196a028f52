/*
Copyright (C) 2026  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package schema describes the column layout of a tile: types, byte
// lengths, names and inlining, plus the derived per-column offsets and
// total tuple length.
package schema

import "github.com/memcp-db/compresstile/types"

// Column is one column's metadata: type, on-slab byte length, name and
// whether its value lives in-slab (Inlined) or as an indirection into
// an auxiliary pool (non-inlined, variable-length strings).
type Column struct {
	Name    string
	Type    types.TypeID
	Length  int
	Inlined bool
}

// Schema is an ordered list of columns. Offsets are derived, not
// stored, so that building a Schema from a column slice is always
// consistent with Offset/TupleLength.
type Schema struct {
	Columns []Column
}

// New builds a Schema from a column slice, copying it so callers can't
// mutate the Schema through their original slice.
func New(columns []Column) Schema {
	cp := make([]Column, len(columns))
	copy(cp, columns)
	return Schema{Columns: cp}
}

// ColumnCount returns the number of columns.
func (s Schema) ColumnCount() int { return len(s.Columns) }

// Offset returns the byte offset of column col within a tuple.
func (s Schema) Offset(col int) int {
	off := 0
	for i := 0; i < col; i++ {
		off += s.Columns[i].Length
	}
	return off
}

// TupleLength returns the total byte length of one tuple under this
// schema — the sum of every column's Length.
func (s Schema) TupleLength() int {
	total := 0
	for _, c := range s.Columns {
		total += c.Length
	}
	return total
}

// IsInlined reports whether column col stores its value in-slab.
func (s Schema) IsInlined(col int) bool { return s.Columns[col].Inlined }

// Equivalent compares two schemas structurally: same column count, and
// each column pair sharing Type and Length. Names are deliberately
// excluded — spec.md's Schema contract defines equivalence purely on
// physical layout.
func (s Schema) Equivalent(other Schema) bool {
	if len(s.Columns) != len(other.Columns) {
		return false
	}
	for i := range s.Columns {
		if s.Columns[i].Type != other.Columns[i].Type || s.Columns[i].Length != other.Columns[i].Length {
			return false
		}
	}
	return true
}

// Info returns a debug-only structural description, mirroring the
// original Schema::GetInfo() consumed contract (spec.md §6).
func (s Schema) Info() string {
	info := "schema["
	for i, c := range s.Columns {
		if i > 0 {
			info += ", "
		}
		info += c.Name + ":" + c.Type.String()
	}
	return info + "]"
}
