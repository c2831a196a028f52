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
	"errors"
	"testing"

	"github.com/memcp-db/compresstile/types"
)

func ints(typ types.TypeID, vs ...int64) []types.Value {
	out := make([]types.Value, len(vs))
	for i, v := range vs {
		out[i] = types.NewInt(typ, v)
	}
	return out
}

func TestAnalyzeRangeNarrowsTightCluster(t *testing.T) {
	values := ints(types.BigInt, 1000000, 1000001, 1000002, 1000003, 1000004)
	base, target, err := analyzeRange(values, types.BigInt)
	if err != nil {
		t.Fatalf("analyzeRange: %v", err)
	}
	if target != types.TinyInt {
		t.Fatalf("expected TinyInt target, got %v", target)
	}
	if base.Int() != 1000002 {
		t.Fatalf("expected median base 1000002, got %d", base.Int())
	}
}

func TestAnalyzeRangeEscalatesOnWideSpread(t *testing.T) {
	values := ints(types.BigInt, 0, 1<<20, 2<<20)
	_, target, err := analyzeRange(values, types.BigInt)
	if err != nil {
		t.Fatalf("analyzeRange: %v", err)
	}
	if target != types.Integer {
		t.Fatalf("expected escalation to Integer, got %v", target)
	}
}

func TestAnalyzeRangeNotCompressibleAtSourceWidth(t *testing.T) {
	// Spread so wide that even escalating all the way up reaches the
	// source type itself: no gain, must fail.
	values := ints(types.SmallInt, -32768, 0, 32767)
	_, _, err := analyzeRange(values, types.SmallInt)
	if !errors.Is(err, ErrNotCompressible) {
		t.Fatalf("expected ErrNotCompressible, got %v", err)
	}
}

func TestAnalyzeRangeSourceAlreadyNarrowest(t *testing.T) {
	values := ints(types.TinyInt, 1, 2, 3)
	_, _, err := analyzeRange(values, types.TinyInt)
	if !errors.Is(err, ErrNotCompressible) {
		t.Fatalf("TinyInt source column can never be narrowed further, got %v", err)
	}
}

func TestAnalyzeRangeEmptyColumn(t *testing.T) {
	_, _, err := analyzeRange(nil, types.BigInt)
	if !errors.Is(err, ErrNotCompressible) {
		t.Fatalf("expected ErrNotCompressible for an empty column, got %v", err)
	}
}
