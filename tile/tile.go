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

// Package tile is the raw fixed-slot column store: a contiguous,
// row-major byte slab plus a Schema, addressed by (row, column) or
// directly by (row, offset, type, inlined). This is the "Tile"
// consumed contract from spec.md §3/§6 — the surrounding database
// normally owns this abstraction; this module ships a concrete,
// minimal implementation so CompressedTile can be built and tested
// standalone.
package tile

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/memcp-db/compresstile/schema"
	"github.com/memcp-db/compresstile/tile/auxpool"
	"github.com/memcp-db/compresstile/types"
)

// Tile owns a contiguous byte buffer sized NumTupleSlots * TupleLength,
// a Schema and a backend tag selecting the allocator. Non-inlined
// (variable-length string) values live in Aux; the slab carries an
// auxpool.Ref for those columns.
type Tile struct {
	ID            uuid.UUID
	Data          []byte
	Schema        schema.Schema
	NumTupleSlots int
	TupleLength   int
	TileSize      int
	BackendType   BackendType

	Aux *auxpool.Pool

	alloc Allocator
}

// New allocates a zeroed Tile for numTupleSlots tuples under s, using
// alloc for the backing buffer. DecimalType is a ValueOps-only type in
// this revision (types.DecimalType exists for arithmetic, not for slab
// storage); a schema naming it is rejected here rather than letting it
// surface later as a confusing panic out of GetValueFast/SetValueFast.
func New(alloc Allocator, backend BackendType, s schema.Schema, numTupleSlots int) (*Tile, error) {
	for _, c := range s.Columns {
		if c.Type == types.DecimalType {
			return nil, fmt.Errorf("tile: column %q: DecimalType is not storable in a tile in this revision", c.Name)
		}
	}
	tupleLength := s.TupleLength()
	tileSize := numTupleSlots * tupleLength
	data, err := alloc.Allocate(backend, tileSize)
	if err != nil {
		return nil, fmt.Errorf("tile: allocate %d bytes: %w", tileSize, err)
	}
	return &Tile{
		ID:            newUUID(),
		Data:          data,
		Schema:        s,
		NumTupleSlots: numTupleSlots,
		TupleLength:   tupleLength,
		TileSize:      tileSize,
		BackendType:   backend,
		Aux:           &auxpool.Pool{},
		alloc:         alloc,
	}, nil
}

// AllocatedTupleCount returns the number of tuple slots this tile has
// room for (spec.md §6's get_allocated_tuple_count).
func (t *Tile) AllocatedTupleCount() int { return t.NumTupleSlots }

// Release hands the backing buffer back to the allocator and nils the
// handle, so the tile is never observably double-owned (spec.md §4.4
// step 3).
func (t *Tile) Release() {
	if t.Data == nil {
		return
	}
	t.alloc.Release(t.BackendType, t.Data)
	t.Data = nil
}

func (t *Tile) slot(row, offset int) []byte {
	base := row*t.TupleLength + offset
	return t.Data[base:]
}

// GetValueFast reads the value at (row, offset) interpreting it under
// typ/inlined, bypassing schema column lookup — the fast path used
// once a caller already knows a column's physical placement.
func (t *Tile) GetValueFast(row, offset int, typ types.TypeID, inlined bool) types.Value {
	buf := t.slot(row, offset)
	if !inlined {
		ref := auxpool.Ref{
			Offset: binary.LittleEndian.Uint32(buf[0:4]),
			Length: binary.LittleEndian.Uint32(buf[4:8]),
		}
		if ref.Length == math.MaxUint32 {
			return types.NewNull(typ)
		}
		return types.NewVarchar(t.Aux.Get(ref))
	}
	switch typ {
	case types.TinyInt:
		return types.NewInt(typ, int64(int8(buf[0])))
	case types.SmallInt:
		return types.NewInt(typ, int64(int16(binary.LittleEndian.Uint16(buf))))
	case types.Integer:
		return types.NewInt(typ, int64(int32(binary.LittleEndian.Uint32(buf))))
	case types.BigInt:
		return types.NewInt(typ, int64(binary.LittleEndian.Uint64(buf)))
	default:
		// unreachable for a Tile built through New, which rejects
		// DecimalType schemas up front; kept as a panic, not a silent
		// zero value, for any caller constructing a Tile by hand.
		panic(fmt.Sprintf("tile: GetValueFast: unsupported inlined type %v", typ))
	}
}

// GetValue reads the value at (row, col), resolving col's offset/type
// from the schema first.
func (t *Tile) GetValue(row, col int) types.Value {
	c := t.Schema.Columns[col]
	return t.GetValueFast(row, t.Schema.Offset(col), c.Type, c.Inlined)
}

// SetValueFast writes v at (row, offset) under typ/inlined. Returns an
// error rather than panicking so CompressedTile can refuse writes to
// sealed columns through the same call shape (spec.md §4.5).
func (t *Tile) SetValueFast(v types.Value, row, offset int, typ types.TypeID, inlined bool) error {
	buf := t.slot(row, offset)
	if !inlined {
		if v.IsNull() {
			binary.LittleEndian.PutUint32(buf[0:4], 0)
			binary.LittleEndian.PutUint32(buf[4:8], math.MaxUint32)
			return nil
		}
		ref := t.Aux.Append(v.String())
		binary.LittleEndian.PutUint32(buf[0:4], ref.Offset)
		binary.LittleEndian.PutUint32(buf[4:8], ref.Length)
		return nil
	}
	if v.IsNull() {
		for i := range buf[:types.ByteWidth(typ)] {
			buf[i] = 0
		}
		return nil
	}
	switch typ {
	case types.TinyInt:
		buf[0] = byte(int8(v.Int()))
	case types.SmallInt:
		binary.LittleEndian.PutUint16(buf, uint16(int16(v.Int())))
	case types.Integer:
		binary.LittleEndian.PutUint32(buf, uint32(int32(v.Int())))
	case types.BigInt:
		binary.LittleEndian.PutUint64(buf, uint64(v.Int()))
	default:
		return fmt.Errorf("tile: SetValueFast: unsupported inlined type %v", typ)
	}
	return nil
}

// SetValue writes v at (row, col), resolving col's offset/type from
// the schema first.
func (t *Tile) SetValue(v types.Value, row, col int) error {
	c := t.Schema.Columns[col]
	return t.SetValueFast(v, row, t.Schema.Offset(col), c.Type, c.Inlined)
}

// InsertTuple writes an entire tuple's worth of values at row.
func (t *Tile) InsertTuple(row int, tuple []types.Value) error {
	if len(tuple) != t.Schema.ColumnCount() {
		return fmt.Errorf("tile: InsertTuple: expected %d values, got %d", t.Schema.ColumnCount(), len(tuple))
	}
	for col, v := range tuple {
		if err := t.SetValue(v, row, col); err != nil {
			return err
		}
	}
	return nil
}
