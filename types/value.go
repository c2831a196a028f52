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

// Package types implements the ValueOps contract: a small discriminated
// scalar with typed comparison, arithmetic and overflow-signaling casts.
package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TypeID identifies the logical type of a Value.
type TypeID uint8

const (
	Invalid TypeID = iota
	TinyInt        // int8
	SmallInt       // int16
	Integer        // int32
	BigInt         // int64
	DecimalType    // shopspring decimal.Decimal, scale reserved
	Varchar        // string, variable length
)

func (t TypeID) String() string {
	switch t {
	case TinyInt:
		return "TINYINT"
	case SmallInt:
		return "SMALLINT"
	case Integer:
		return "INTEGER"
	case BigInt:
		return "BIGINT"
	case DecimalType:
		return "DECIMAL"
	case Varchar:
		return "VARCHAR"
	default:
		return "INVALID"
	}
}

// ByteWidth returns the fixed on-slab width of a type. Varchar has no
// fixed width here; callers use schema.Column.Length for its inline
// capacity instead.
func ByteWidth(t TypeID) int {
	switch t {
	case TinyInt:
		return 1
	case SmallInt:
		return 2
	case Integer:
		return 4
	case BigInt:
		return 8
	case DecimalType:
		return 16
	default:
		return 0
	}
}

// IsIntegral reports whether t is one of the narrowable integer family.
func IsIntegral(t TypeID) bool {
	switch t {
	case TinyInt, SmallInt, Integer, BigInt:
		return true
	default:
		return false
	}
}

// integerRange returns the inclusive [min, max] representable by an
// integral TypeID. Panics for non-integral types — a programmer error,
// never a runtime input condition.
func integerRange(t TypeID) (min, max int64) {
	switch t {
	case TinyInt:
		return -1 << 7, 1<<7 - 1
	case SmallInt:
		return -1 << 15, 1<<15 - 1
	case Integer:
		return -1 << 31, 1<<31 - 1
	case BigInt:
		return -1 << 63, 1<<63 - 1
	default:
		panic(fmt.Sprintf("types: integerRange called on non-integral type %v", t))
	}
}

// widerIntegerType returns the next-wider integer type than t, in the
// narrowing escalation order TinyInt < SmallInt < Integer < BigInt.
// ok is false once t is already BigInt (no wider type exists).
func widerIntegerType(t TypeID) (next TypeID, ok bool) {
	switch t {
	case TinyInt:
		return SmallInt, true
	case SmallInt:
		return Integer, true
	case Integer:
		return BigInt, true
	default:
		return Invalid, false
	}
}

// WiderIntegerType exposes widerIntegerType to other packages in this
// module (the escalation loop lives in compresstile, not here).
func WiderIntegerType(t TypeID) (TypeID, bool) { return widerIntegerType(t) }

// NarrowestIntegerBelow returns the narrowest integer TypeID strictly
// narrower than source. ok is false if source itself is already the
// narrowest integer type (TinyInt) or not integral.
func NarrowestIntegerBelow(source TypeID) (TypeID, bool) {
	switch source {
	case SmallInt:
		return TinyInt, true
	case Integer:
		return TinyInt, true
	case BigInt:
		return TinyInt, true
	default:
		return Invalid, false
	}
}

// Value is a typed scalar. Exactly one of the payload fields is active,
// selected by typ; null is represented by the separate null flag so
// that e.g. the zero-valued Varchar ("") is distinguishable from NULL.
type Value struct {
	typ     TypeID
	null    bool
	i       int64
	dec     decimal.Decimal
	s       string
}

// NewNull returns a NULL value of the given type.
func NewNull(t TypeID) Value { return Value{typ: t, null: true} }

// NewInt constructs an integral Value. t must be one of the integer
// TypeIDs; the caller is responsible for t being wide enough to hold v
// (use CastAs to narrow with overflow detection instead of constructing
// directly with a mismatched width).
func NewInt(t TypeID, v int64) Value {
	return Value{typ: t, i: v}
}

// NewDecimal constructs a DECIMAL Value.
func NewDecimal(v decimal.Decimal) Value {
	return Value{typ: DecimalType, dec: v}
}

// NewVarchar constructs a VARCHAR Value.
func NewVarchar(s string) Value {
	return Value{typ: Varchar, s: s}
}

func (v Value) TypeID() TypeID { return v.typ }
func (v Value) IsNull() bool   { return v.null }

// Int returns the raw int64 payload of an integral Value. Panics if v
// is not integral or is null — callers must check TypeID/IsNull first,
// mirroring the ValueOps contract's typed-access discipline.
func (v Value) Int() int64 {
	if !IsIntegral(v.typ) {
		panic(fmt.Sprintf("types: Int() called on %v value", v.typ))
	}
	if v.null {
		panic("types: Int() called on a null value")
	}
	return v.i
}

// Decimal returns the raw decimal.Decimal payload.
func (v Value) Decimal() decimal.Decimal {
	if v.typ != DecimalType {
		panic(fmt.Sprintf("types: Decimal() called on %v value", v.typ))
	}
	return v.dec
}

// String returns the raw string payload for a Varchar Value (not to be
// confused with fmt.Stringer-style debug formatting — see Describe).
func (v Value) String() string {
	if v.typ != Varchar {
		panic(fmt.Sprintf("types: String() called on %v value", v.typ))
	}
	return v.s
}

// Describe formats v for logging/debug output, never for typed access.
func (v Value) Describe() string {
	if v.null {
		return "NULL"
	}
	switch v.typ {
	case Varchar:
		return fmt.Sprintf("%q", v.s)
	case DecimalType:
		return v.dec.String()
	default:
		return fmt.Sprintf("%d", v.i)
	}
}

// CompareLessThan implements a typed less-than. Both values must share
// the same TypeID family (both integral, or both Decimal, or both
// Varchar) — comparing across families is a programmer error. NULLs
// sort first.
func (v Value) CompareLessThan(other Value) bool {
	if v.null != other.null {
		return v.null
	}
	if v.null {
		return false
	}
	switch {
	case IsIntegral(v.typ) && IsIntegral(other.typ):
		return v.i < other.i
	case v.typ == DecimalType && other.typ == DecimalType:
		return v.dec.LessThan(other.dec)
	case v.typ == Varchar && other.typ == Varchar:
		return strings.Compare(v.s, other.s) < 0
	default:
		panic(fmt.Sprintf("types: CompareLessThan across incompatible types %v/%v", v.typ, other.typ))
	}
}

// Equal reports logical equality; a NULL equals only another NULL.
func (v Value) Equal(other Value) bool {
	if v.null || other.null {
		return v.null == other.null
	}
	switch {
	case IsIntegral(v.typ) && IsIntegral(other.typ):
		return v.i == other.i
	case v.typ == DecimalType && other.typ == DecimalType:
		return v.dec.Equal(other.dec)
	case v.typ == Varchar && other.typ == Varchar:
		return v.s == other.s
	default:
		return false
	}
}

// Subtract computes v - other in the type of v (both must be the same
// integral or decimal type — narrowing's source-type arithmetic). The
// result retains v's TypeID; overflow of the subtraction itself (e.g.
// BigInt extremes) saturates into the widest representable value the
// caller will subsequently try to CastAs, which will then correctly
// report Overflow — this mirrors the original's documented behavior
// ("overflow in the subtraction itself... is treated as a cast
// overflow and escalates", spec.md §4.1 edge cases).
func (v Value) Subtract(other Value) Value {
	if v.typ != other.typ {
		panic(fmt.Sprintf("types: Subtract across mismatched types %v/%v", v.typ, other.typ))
	}
	switch {
	case IsIntegral(v.typ):
		lo, hi := int64(-1<<63), int64(1<<63-1)
		a, b := v.i, other.i
		// detect signed overflow of a-b without relying on UB-free wraparound
		diff := a - b
		if (b > 0 && a < lo+b) || (b < 0 && a > hi+b) {
			if b > 0 {
				diff = lo
			} else {
				diff = hi
			}
		}
		return Value{typ: v.typ, i: diff}
	case v.typ == DecimalType:
		return Value{typ: DecimalType, dec: v.dec.Sub(other.dec)}
	default:
		panic(fmt.Sprintf("types: Subtract not defined for %v", v.typ))
	}
}

// Add computes v + other in the type of v. See Subtract for the
// overflow-saturation rationale.
func (v Value) Add(other Value) Value {
	if v.typ != other.typ {
		panic(fmt.Sprintf("types: Add across mismatched types %v/%v", v.typ, other.typ))
	}
	switch {
	case IsIntegral(v.typ):
		lo, hi := int64(-1<<63), int64(1<<63-1)
		a, b := v.i, other.i
		sum := a + b
		if (b > 0 && a > hi-b) || (b < 0 && a < lo-b) {
			if b > 0 {
				sum = hi
			} else {
				sum = lo
			}
		}
		return Value{typ: v.typ, i: sum}
	case v.typ == DecimalType:
		return Value{typ: DecimalType, dec: v.dec.Add(other.dec)}
	default:
		panic(fmt.Sprintf("types: Add not defined for %v", v.typ))
	}
}

// CastAs attempts to represent v under target, returning ErrOverflow
// (wrapped with both types for diagnostics) when target cannot hold
// v's magnitude. Only integral-to-integral narrowing/widening and
// identity casts are supported; DECIMAL/VARCHAR casts are not used by
// this module's compression paths and return ErrOverflow defensively
// rather than silently truncating.
func (v Value) CastAs(target TypeID) (Value, error) {
	if v.null {
		return Value{typ: target, null: true}, nil
	}
	if v.typ == target {
		return v, nil
	}
	if IsIntegral(v.typ) && IsIntegral(target) {
		min, max := integerRange(target)
		if v.i < min || v.i > max {
			return Value{}, fmt.Errorf("%w: %d does not fit %v (source %v)", ErrOverflow, v.i, target, v.typ)
		}
		return Value{typ: target, i: v.i}, nil
	}
	return Value{}, fmt.Errorf("%w: cannot cast %v to %v", ErrOverflow, v.typ, target)
}
