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
	"log"

	"github.com/google/btree"

	"github.com/memcp-db/compresstile/schema"
	"github.com/memcp-db/compresstile/tile"
	"github.com/memcp-db/compresstile/types"
)

// offsetColumn is one entry of the offset->column bijection (spec.md
// §3 offset_to_column), kept in a btree.BTreeG so the bijection
// invariant (P5, spec.md §8) can be walked in offset order and
// asserted as strictly monotonic — grounded on storage/index.go's
// btree.BTreeG[indexPair] in the teacher.
type offsetColumn struct {
	offset int
	column int
}

func offsetColumnLess(a, b offsetColumn) bool { return a.offset < b.offset }

// CompressedTile wraps an owned tile.Tile (spec.md §9: "re-architect as
// a thin wrapper holding an owned Tile plus the compression metadata,
// exposing the same read contract as a capability"), never subclasses
// it. Reads are intercepted to materialise logical values; mutations
// route through a policy check before delegation.
type CompressedTile struct {
	t            *tile.Tile
	sourceSchema schema.Schema // original (pre-compression) column types, for the materialisation contract

	sealed      bool
	torn        bool // Compress failed after releasing the old buffer (spec.md §8 scenario 6)
	descriptors []columnDescriptor // Passthrough | NumericDelta | Dictionary, one per column

	offsetToColumn *btree.BTreeG[offsetColumn]

	// exponent_column_map: reserved for scaled-integer DECIMAL storage
	// (SPEC_FULL.md §4 / spec.md §4.2). Always empty in this
	// revision — DECIMAL columns are never narrowed.
	exponent map[int]int8
}

// NewCompressedTile wraps t, starting in the Populated state (spec.md
// §4.6). t's current schema is remembered as the source schema so that
// GetValue can always return values typed as the caller originally
// declared them, even after compression replaces the physical schema.
func NewCompressedTile(t *tile.Tile) *CompressedTile {
	return &CompressedTile{
		t:            t,
		sourceSchema: t.Schema,
		exponent:     make(map[int]int8),
	}
}

// IsSealed reports whether Compress has completed successfully.
func (c *CompressedTile) IsSealed() bool { return c.sealed }

// Compress performs the one-shot Populated -> Sealed transition
// (spec.md §4.4). It is idempotent: calling it again on an
// already-sealed tile is a documented no-op returning nil (spec.md §9's
// open question — this module picks no-op over AlreadySealed so that
// "tests only assert idempotence of repeated reads", per spec.md §4.5,
// extends naturally to repeated Compress calls too).
func (c *CompressedTile) Compress(alloc tile.Allocator) error {
	if c.sealed {
		return nil
	}

	n := c.t.AllocatedTupleCount()
	colCount := c.sourceSchema.ColumnCount()
	if n == 0 || colCount == 0 {
		// nothing to compress; stays Populated (spec.md §4.4 precondition)
		return nil
	}

	columns := make([]columnValues, colCount)
	anyCompressed := false

	for col := 0; col < colCount; col++ {
		srcCol := c.sourceSchema.Columns[col]
		values := make([]types.Value, n)
		for row := 0; row < n; row++ {
			values[row] = c.t.GetValue(row, col)
		}

		switch {
		case types.IsIntegral(srcCol.Type):
			base, target, err := analyzeRange(values, srcCol.Type)
			if err != nil {
				log.Printf("compresstile: column %q: not narrowed (%v)", srcCol.Name, err)
				columns[col] = columnValues{descriptor: passthroughDescriptor(), stored: values}
				continue
			}
			stored, finalTarget, err := compressColumn(values, base, target, srcCol.Type)
			if err != nil {
				log.Printf("compresstile: column %q: not narrowed (%v)", srcCol.Name, err)
				columns[col] = columnValues{descriptor: passthroughDescriptor(), stored: values}
				continue
			}
			log.Printf("compresstile: column %q: narrowed %v -> %v, base=%s", srcCol.Name, srcCol.Type, finalTarget, base.Describe())
			columns[col] = columnValues{descriptor: numericDeltaDescriptor(base, finalTarget), stored: stored}
			anyCompressed = true

		case srcCol.Type == types.Varchar:
			dict, codes, codeType, err := encodeDictionary(values)
			if err != nil {
				log.Printf("compresstile: column %q: not dictionary-encoded (%v)", srcCol.Name, err)
				columns[col] = columnValues{descriptor: passthroughDescriptor(), stored: values}
				continue
			}
			log.Printf("compresstile: column %q: dictionary-encoded, %d entries, code type %v", srcCol.Name, len(dict), codeType)
			columns[col] = columnValues{descriptor: dictionaryDescriptor(dict, codeType), stored: codes}
			anyCompressed = true

		default:
			// DecimalType never reaches here: tile.New refuses to build a
			// tile over a schema naming one, so this only guards Invalid.
			log.Printf("compresstile: column %q: type %v currently uncompressible", srcCol.Name, srcCol.Type)
			columns[col] = columnValues{descriptor: passthroughDescriptor(), stored: values}
		}
	}

	if !anyCompressed {
		// spec.md §4.4 precondition: no rewrite occurs, stays Populated
		return nil
	}

	newTile, err := rewriteTile(alloc, c.t.BackendType, c.t, columns)
	if err != nil {
		// fatal: old buffer already released (rewriteTile's step 3).
		// The tile is left torn; report it unusable rather than panic.
		c.t = newTileStub()
		c.torn = true
		return err
	}

	c.t = newTile
	c.descriptors = make([]columnDescriptor, colCount)
	for i, cv := range columns {
		c.descriptors[i] = cv.descriptor
	}

	offsetTree := btree.NewG[offsetColumn](32, offsetColumnLess)
	for col := 0; col < colCount; col++ {
		offsetTree.ReplaceOrInsert(offsetColumn{offset: newTile.Schema.Offset(col), column: col})
	}
	c.offsetToColumn = offsetTree

	c.sealed = true
	return nil
}

// newTileStub returns a Tile reporting itself unusable (nil Data),
// the observable marker of the torn state after an allocator failure
// during Compress (spec.md §4.4 "Failure semantics", §8 scenario 6).
func newTileStub() *tile.Tile {
	return &tile.Tile{}
}

// columnFromOffset resolves a column id from a schema offset via the
// sealed offset_to_column bijection (spec.md §3/§9 — "the spec requires
// it to be built during rewrite and used in every _fast path").
func (c *CompressedTile) columnFromOffset(offset int) (int, error) {
	item, ok := c.offsetToColumn.Get(offsetColumn{offset: offset})
	if !ok {
		return 0, ErrUnknownColumnOffset
	}
	return item.column, nil
}

// materialise reconstructs the logical value for column col given the
// physically-stored value read off the slab, per spec.md §4.5's
// materialisation contract: the returned Value's type id equals the
// original (pre-compression) column type.
func (c *CompressedTile) materialise(col int, stored types.Value) types.Value {
	if c.descriptors == nil {
		return stored
	}
	d := c.descriptors[col]
	switch d.kind {
	case numericDelta:
		if stored.IsNull() {
			return types.NewNull(c.sourceSchema.Columns[col].Type)
		}
		widened, err := stored.CastAs(c.sourceSchema.Columns[col].Type)
		if err != nil {
			// cannot happen: the compressed type is always <= source width
			panic(err)
		}
		return d.base.Add(widened)
	case dictionaryEncoded:
		if stored.IsNull() {
			return types.NewNull(types.Varchar)
		}
		idx := stored.Int()
		return d.dictionary[idx]
	default:
		return stored
	}
}

// GetValue returns the logical value at (row, col). On an uncompressed
// tile this delegates straight to the wrapped Tile; once sealed, a
// compressed_column_map/dictionary_map hit is materialised back to the
// original type and value (spec.md §4.5).
func (c *CompressedTile) GetValue(row, col int) types.Value {
	v := c.t.GetValue(row, col)
	if !c.sealed {
		return v
	}
	return c.materialise(col, v)
}

// GetValueFast mirrors GetValue but addresses the column by its
// physical (offset, type, inlined) triple, resolving the column id
// through offset_to_column when sealed (spec.md §4.5).
func (c *CompressedTile) GetValueFast(row, offset int, typ types.TypeID, inlined bool) types.Value {
	v := c.t.GetValueFast(row, offset, typ, inlined)
	if !c.sealed {
		return v
	}
	col, err := c.columnFromOffset(offset)
	if err != nil {
		panic(err) // precondition violation: caller presented an offset we never emitted
	}
	return c.materialise(col, v)
}

// SetValue writes to (row, col). Fails with ErrWriteToSealed if the
// tile is sealed and col was narrowed or dictionary-encoded; otherwise
// delegates (spec.md §4.5) — a sealed passthrough column may still be
// written, matching the original's column-local (not tile-global)
// write policy.
func (c *CompressedTile) SetValue(v types.Value, row, col int) error {
	if c.sealed && c.descriptors[col].kind != passthrough {
		return ErrWriteToSealed
	}
	return c.t.SetValue(v, row, col)
}

// SetValueFast mirrors SetValue via the physical offset.
func (c *CompressedTile) SetValueFast(v types.Value, row, offset int, typ types.TypeID, inlined bool) error {
	if c.sealed {
		col, err := c.columnFromOffset(offset)
		if err != nil {
			return err
		}
		if c.descriptors[col].kind != passthrough {
			return ErrWriteToSealed
		}
	}
	return c.t.SetValueFast(v, row, offset, typ, inlined)
}

// InsertTuple fails unconditionally on a sealed tile — Peloton does not
// support insert into compressed tiles, and neither does this module
// (spec.md §4.5, §Non-goals "concurrent insertion into a compressed
// tile").
func (c *CompressedTile) InsertTuple(row int, tuple []types.Value) error {
	if c.sealed {
		return ErrWriteToSealed
	}
	return c.t.InsertTuple(row, tuple)
}

// BaseValue exposes a narrowed column's base for callers that want to
// push predicates into the compressed domain (spec.md §6, "Exposed to
// callers").
func (c *CompressedTile) BaseValue(col int) (types.Value, bool) {
	if !c.sealed || c.descriptors[col].kind != numericDelta {
		return types.Value{}, false
	}
	return c.descriptors[col].base, true
}

// CompressedType exposes a narrowed column's on-slab type.
func (c *CompressedTile) CompressedType(col int) (types.TypeID, bool) {
	if !c.sealed || c.descriptors[col].kind != numericDelta {
		return types.Invalid, false
	}
	return c.descriptors[col].compressedType, true
}

// Dictionary exposes a dictionary-encoded column's sorted unique
// values.
func (c *CompressedTile) Dictionary(col int) ([]types.Value, bool) {
	if !c.sealed || c.descriptors[col].kind != dictionaryEncoded {
		return nil, false
	}
	return c.descriptors[col].dictionary, true
}

// Usable reports whether the tile is still in a usable state — false
// only after an allocator failure mid-Compress left it torn (spec.md
// §8 scenario 6).
func (c *CompressedTile) Usable() bool { return !c.torn }

// Tile exposes the wrapped tile for read-only inspection (size,
// schema, id) by callers and tests.
func (c *CompressedTile) Tile() *tile.Tile { return c.t }
