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
	"testing"

	"github.com/memcp-db/compresstile/types"
)

func strs(vs ...string) []types.Value {
	out := make([]types.Value, len(vs))
	for i, v := range vs {
		out[i] = types.NewVarchar(v)
	}
	return out
}

func TestEncodeDictionarySortedUnique(t *testing.T) {
	values := strs("banana", "apple", "banana", "cherry", "apple")
	dict, codes, codeType, err := encodeDictionary(values)
	if err != nil {
		t.Fatalf("encodeDictionary: %v", err)
	}
	if codeType != types.TinyInt {
		t.Fatalf("3 distinct entries should fit TinyInt, got %v", codeType)
	}
	wantDict := []string{"apple", "banana", "cherry"}
	if len(dict) != len(wantDict) {
		t.Fatalf("dictionary length = %d, want %d", len(dict), len(wantDict))
	}
	for i, w := range wantDict {
		if dict[i].String() != w {
			t.Errorf("dict[%d] = %q, want %q", i, dict[i].String(), w)
		}
	}
	// codes must reconstruct the original sequence via the dictionary
	for i, v := range values {
		idx := codes[i].Int()
		if dict[idx].String() != v.String() {
			t.Errorf("row %d: code %d resolves to %q, want %q", i, idx, dict[idx].String(), v.String())
		}
	}
}

func TestEncodeDictionaryEmptyColumn(t *testing.T) {
	dict, codes, _, err := encodeDictionary(nil)
	if err != nil {
		t.Fatalf("encodeDictionary(nil): %v", err)
	}
	if len(dict) != 0 || len(codes) != 0 {
		t.Fatalf("expected empty dictionary and codes for an empty column")
	}
}

func TestEncodeDictionaryAllSameValue(t *testing.T) {
	values := strs("x", "x", "x")
	dict, codes, _, err := encodeDictionary(values)
	if err != nil {
		t.Fatalf("encodeDictionary: %v", err)
	}
	if len(dict) != 1 {
		t.Fatalf("expected a single dictionary entry, got %d", len(dict))
	}
	for _, c := range codes {
		if c.Int() != 0 {
			t.Fatalf("expected every code to point at index 0, got %d", c.Int())
		}
	}
}

func TestEncodeDictionaryEscalatesPastTinyIntCapacity(t *testing.T) {
	// 200 distinct values exceed TinyInt's usable capacity of 128 (codes
	// are stored sign-extended, so only indices 0..127 round-trip
	// through an int8 slot) and must escalate to SmallInt rather than
	// emit an out-of-range code that would read back negative.
	vs := make([]string, 200)
	for i := range vs {
		vs[i] = fmt.Sprintf("v%03d", i)
	}
	values := strs(vs...)
	dict, codes, codeType, err := encodeDictionary(values)
	if err != nil {
		t.Fatalf("encodeDictionary: %v", err)
	}
	if codeType != types.SmallInt {
		t.Fatalf("expected escalation to SmallInt for 200 distinct values, got %v", codeType)
	}
	if len(dict) != 200 {
		t.Fatalf("expected 200 distinct dictionary entries, got %d", len(dict))
	}
	for i, c := range codes {
		idx := c.Int()
		if idx < 0 || int(idx) >= len(dict) {
			t.Fatalf("row %d: code %d is out of dictionary range [0, %d)", i, idx, len(dict))
		}
		if dict[idx].String() != values[i].String() {
			t.Errorf("row %d: code %d resolves to %q, want %q", i, idx, dict[idx].String(), values[i].String())
		}
	}
}
