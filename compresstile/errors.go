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

// Package compresstile is the columnar compression layer: it narrows
// numeric columns to a delta-encoded representation and dictionary
// codes string columns, rewriting a tile.Tile's physical layout and
// sealing it read-only. See spec.md / SPEC_FULL.md for the contract.
package compresstile

import (
	"errors"

	"github.com/memcp-db/compresstile/types"
)

// Error kinds, per spec.md §7. ErrOverflow is types.ErrOverflow itself
// (not a separate sentinel) so that errors.Is works uniformly whether
// the overflow surfaced from a Value.CastAs or from an escalation loop
// here.
var (
	ErrNotCompressible     = errors.New("compresstile: column is not profitably compressible")
	ErrOverflow            = types.ErrOverflow
	ErrAllocatorFailure    = errors.New("compresstile: allocator failure")
	ErrWriteToSealed       = errors.New("compresstile: write to sealed column")
	ErrUnknownColumnOffset = errors.New("compresstile: offset not in offset-to-column map")
	ErrAlreadySealed       = errors.New("compresstile: compress called on an already-sealed tile")
)
