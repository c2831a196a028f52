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

import "github.com/memcp-db/compresstile/types"

// descriptorKind tags which of the three shapes a column ended up in.
// The original's parallel column-id-keyed maps for compressed type,
// base and dictionary collapse into one per-column variant, making
// invariants P1-P5 local to a single value instead of spread across
// maps that can drift out of sync with each other. The reserved
// exponent map is not part of the variant; it stays a separate field
// on CompressedTile.
type descriptorKind uint8

const (
	passthrough descriptorKind = iota
	numericDelta
	dictionaryEncoded
)

// columnDescriptor is the per-column outcome of compression.
type columnDescriptor struct {
	kind descriptorKind

	// numericDelta
	base           types.Value
	compressedType types.TypeID

	// dictionaryEncoded
	dictionary []types.Value
	codeType   types.TypeID
}

func passthroughDescriptor() columnDescriptor {
	return columnDescriptor{kind: passthrough}
}

func numericDeltaDescriptor(base types.Value, compressedType types.TypeID) columnDescriptor {
	return columnDescriptor{kind: numericDelta, base: base, compressedType: compressedType}
}

func dictionaryDescriptor(dict []types.Value, codeType types.TypeID) columnDescriptor {
	return columnDescriptor{kind: dictionaryEncoded, dictionary: dict, codeType: codeType}
}
