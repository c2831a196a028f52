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

package types

import (
	"errors"
	"testing"
)

func TestCastAsIdentity(t *testing.T) {
	v := NewInt(Integer, 42)
	cast, err := v.CastAs(Integer)
	if err != nil {
		t.Fatalf("identity cast failed: %v", err)
	}
	if cast.Int() != 42 {
		t.Fatalf("got %d, want 42", cast.Int())
	}
}

func TestCastAsNarrowingFits(t *testing.T) {
	cases := []struct {
		v      int64
		target TypeID
	}{
		{0, TinyInt},
		{127, TinyInt},
		{-128, TinyInt},
		{32767, SmallInt},
		{-32768, SmallInt},
	}
	for _, c := range cases {
		v := NewInt(BigInt, c.v)
		cast, err := v.CastAs(c.target)
		if err != nil {
			t.Fatalf("CastAs(%d, %v): unexpected error: %v", c.v, c.target, err)
		}
		if cast.Int() != c.v {
			t.Fatalf("CastAs(%d, %v): got %d", c.v, c.target, cast.Int())
		}
	}
}

func TestCastAsOverflow(t *testing.T) {
	v := NewInt(BigInt, 128)
	_, err := v.CastAs(TinyInt)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestCastAsNull(t *testing.T) {
	v := NewNull(BigInt)
	cast, err := v.CastAs(TinyInt)
	if err != nil {
		t.Fatalf("casting NULL must never overflow: %v", err)
	}
	if !cast.IsNull() || cast.TypeID() != TinyInt {
		t.Fatalf("expected a NULL TinyInt, got %+v", cast)
	}
}

func TestSubtractSaturatesOnOverflow(t *testing.T) {
	a := NewInt(BigInt, 1<<62)
	b := NewInt(BigInt, -(1 << 62))
	diff := a.Subtract(b)
	if diff.Int() != 1<<63-1 {
		t.Fatalf("expected saturation to max int64, got %d", diff.Int())
	}
	if _, err := diff.CastAs(TinyInt); !errors.Is(err, ErrOverflow) {
		t.Fatalf("saturated diff must still overflow a narrow cast, got %v", err)
	}
}

func TestAddSaturatesOnOverflow(t *testing.T) {
	a := NewInt(BigInt, 1<<62)
	b := NewInt(BigInt, 1<<62)
	sum := a.Add(b)
	if sum.Int() != 1<<63-1 {
		t.Fatalf("expected saturation to max int64, got %d", sum.Int())
	}
}

func TestCompareLessThanNullsFirst(t *testing.T) {
	n := NewNull(Integer)
	v := NewInt(Integer, -1000)
	if !n.CompareLessThan(v) {
		t.Fatalf("NULL must sort before any non-null value")
	}
	if v.CompareLessThan(n) {
		t.Fatalf("non-null value must never sort before NULL")
	}
}

func TestCompareLessThanAcrossFamiliesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic comparing incompatible families")
		}
	}()
	NewInt(Integer, 1).CompareLessThan(NewVarchar("x"))
}

func TestNarrowestIntegerBelow(t *testing.T) {
	cases := []struct {
		src     TypeID
		want    TypeID
		wantOK  bool
	}{
		{TinyInt, Invalid, false},
		{SmallInt, TinyInt, true},
		{Integer, TinyInt, true},
		{BigInt, TinyInt, true},
		{Varchar, Invalid, false},
	}
	for _, c := range cases {
		got, ok := NarrowestIntegerBelow(c.src)
		if ok != c.wantOK || (ok && got != c.want) {
			t.Errorf("NarrowestIntegerBelow(%v) = (%v, %v), want (%v, %v)", c.src, got, ok, c.want, c.wantOK)
		}
	}
}

func TestWiderIntegerType(t *testing.T) {
	if next, ok := WiderIntegerType(TinyInt); !ok || next != SmallInt {
		t.Fatalf("TinyInt should widen to SmallInt, got %v, %v", next, ok)
	}
	if _, ok := WiderIntegerType(BigInt); ok {
		t.Fatalf("BigInt must have no wider integer type")
	}
}

func TestByteWidth(t *testing.T) {
	if ByteWidth(TinyInt) != 1 || ByteWidth(SmallInt) != 2 || ByteWidth(Integer) != 4 || ByteWidth(BigInt) != 8 {
		t.Fatalf("unexpected integer byte widths")
	}
}
