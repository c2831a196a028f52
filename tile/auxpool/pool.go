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

// Package auxpool is the out-of-line byte arena a Tile's slab indirects
// into for non-inlined (variable-length string) column values. It is a
// plain append-only arena, not a deduplicating one — deduplication for
// compressed string columns is DictionaryEncoder's job one layer up;
// this pool just needs to hold whatever a passthrough VARCHAR column
// carries verbatim.
package auxpool

import "strings"

// Ref addresses a value stored in the pool.
type Ref struct {
	Offset uint32
	Length uint32
}

// Pool is an append-only string arena.
type Pool struct {
	b strings.Builder
}

// Append stores s and returns its Ref.
func (p *Pool) Append(s string) Ref {
	off := uint32(p.b.Len())
	p.b.WriteString(s)
	return Ref{Offset: off, Length: uint32(len(s))}
}

// Get retrieves the string addressed by ref.
func (p *Pool) Get(ref Ref) string {
	return p.b.String()[ref.Offset : ref.Offset+ref.Length]
}

// Len returns the current size of the arena in bytes.
func (p *Pool) Len() int { return p.b.Len() }
