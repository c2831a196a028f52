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
	"sort"

	"github.com/google/btree"

	"github.com/memcp-db/compresstile/types"
)

// codeWidths lists the candidate integer TypeIDs in narrowing order,
// mirroring analyzeRange's escalation ladder.
var codeWidths = []types.TypeID{types.TinyInt, types.SmallInt, types.Integer, types.BigInt}

// codeCapacity returns how many distinct codes a TypeID can index. The
// tile slab stores every integer TypeID as its signed representation
// (tile.Tile.GetValueFast sign-extends on read, SetValueFast truncates
// to a signed width on write), and dictionary codes are non-negative,
// so the usable range is only the non-negative half of each type's
// bit pattern: a code of 128 stored as int8 reads back as -128, not
// 128. Capacity is therefore capped at 2^(width*8-1), not 2^(width*8).
func codeCapacity(t types.TypeID) int64 {
	switch t {
	case types.TinyInt:
		return 1 << 7
	case types.SmallInt:
		return 1 << 15
	case types.Integer:
		return 1 << 31
	case types.BigInt:
		return 1<<63 - 1 // int64 has no 1<<63 positive value to spare
	default:
		return 0
	}
}

// encodeDictionary builds the sorted unique set of a string column via
// a btree.BTreeG (spec.md §4.3), grounded on storage/index.go's
// btree.BTreeG[indexPair] delta index in the teacher — the nearest
// idiom in the pack for "build an ordered working set, then flatten".
// Returns the dictionary, the per-row code column under the narrowest
// sufficient integer TypeID, or ErrNotCompressible if even BigInt codes
// can't index the distinct set.
func encodeDictionary(values []types.Value) (dict []types.Value, codes []types.Value, codeType types.TypeID, err error) {
	less := func(a, b types.Value) bool { return a.CompareLessThan(b) }
	tr := btree.NewG[types.Value](32, less)
	for _, v := range values {
		if !tr.Has(v) {
			tr.ReplaceOrInsert(v)
		}
	}

	dict = make([]types.Value, 0, tr.Len())
	tr.Ascend(func(v types.Value) bool {
		dict = append(dict, v)
		return true
	})

	codeType = types.Invalid
	for _, w := range codeWidths {
		if int64(len(dict)) <= codeCapacity(w) {
			codeType = w
			break
		}
	}
	if codeType == types.Invalid {
		return nil, nil, types.Invalid, ErrNotCompressible
	}

	codes = make([]types.Value, len(values))
	for i, v := range values {
		idx := sort.Search(len(dict), func(j int) bool { return !dict[j].CompareLessThan(v) })
		codes[i] = types.NewInt(codeType, int64(idx))
	}
	return dict, codes, codeType, nil
}
