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

package compresstile

import (
	"fmt"
	"log"

	units "github.com/docker/go-units"

	"github.com/memcp-db/compresstile/schema"
	"github.com/memcp-db/compresstile/tile"
	"github.com/memcp-db/compresstile/types"
)

// columnValues is the per-row materialised data a descriptor carries
// into the rewrite. For every kind — passthrough, numericDelta or
// dictionaryEncoded — stored holds the row values already expressed
// under the NEW column's type, extracted from the old tile while its
// buffer was still live. This sidesteps an ordering hazard the
// original's two-Tile-object model doesn't have: here CompressedTile
// wraps a single owned Tile, so by the time the old buffer is released
// (step 3) nothing may read it again — every value the rewrite needs
// must already be in hand.
type columnValues struct {
	descriptor columnDescriptor
	stored     []types.Value // len == old.AllocatedTupleCount()
}

// rewriteTile implements spec.md §4.4 steps 1-5 (building
// offset_to_column and sealing are the caller's responsibility —
// TileRewriter only produces the new tile).
// Once step 3 (release of the old buffer) happens, an allocator
// failure in step 4 is fatal and not rolled back: the old bytes are
// already gone, matching spec.md's documented failure semantics and
// the "torn state must not be observed" rule in §5.
func rewriteTile(alloc tile.Allocator, backend tile.BackendType, old *tile.Tile, columns []columnValues) (*tile.Tile, error) {
	oldSchema := old.Schema
	newColumns := make([]schema.Column, len(columns))
	for i, cv := range columns {
		oc := oldSchema.Columns[i]
		switch cv.descriptor.kind {
		case passthrough:
			newColumns[i] = oc
		case numericDelta:
			newColumns[i] = schema.Column{
				Name:    oc.Name,
				Type:    cv.descriptor.compressedType,
				Length:  types.ByteWidth(cv.descriptor.compressedType),
				Inlined: oc.Inlined,
			}
		case dictionaryEncoded:
			newColumns[i] = schema.Column{
				Name:    oc.Name,
				Type:    cv.descriptor.codeType,
				Length:  types.ByteWidth(cv.descriptor.codeType),
				Inlined: true, // codes are fixed-width integers, always inlined
			}
		}
	}
	newSchema := schema.New(newColumns)

	numTupleSlots := old.NumTupleSlots
	oldSize := old.TileSize
	oldID := old.ID

	// step 3: release old buffer, null the handle
	old.Release()

	// step 4: allocate new buffer (zeroed)
	newTile, err := tile.New(alloc, backend, newSchema, numTupleSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocatorFailure, err)
	}

	log.Printf("compresstile: rewrote tile %s: %s -> %s", oldID,
		units.BytesSize(float64(oldSize)), units.BytesSize(float64(newTile.TileSize)))

	// step 5: repopulate by column from the already-extracted values
	for i, cv := range columns {
		newOffset := newSchema.Offset(i)
		newType := newSchema.Columns[i].Type
		newInlined := newSchema.Columns[i].Inlined
		for row := 0; row < numTupleSlots; row++ {
			if err := newTile.SetValueFast(cv.stored[row], row, newOffset, newType, newInlined); err != nil {
				return nil, err
			}
		}
	}

	return newTile, nil
}
