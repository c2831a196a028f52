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

	"github.com/memcp-db/compresstile/types"
)

// compressColumn materialises stored[i] = values[i].Subtract(base).CastAs(target)
// for every row (spec.md §4.2). If any element overflows during
// materialisation, it restarts at the next-wider target — a second,
// independent escalation loop from analyzeRange's min/max screen, kept
// distinct because it is what the original source actually does: the
// min/max check is a cheap pre-screen, but materialisation re-checks
// every row and can still escalate past it in principle.
func compressColumn(values []types.Value, base types.Value, target types.TypeID, sourceType types.TypeID) (stored []types.Value, finalTarget types.TypeID, err error) {
	for {
		stored = make([]types.Value, len(values))
		overflowed := false
		for i, v := range values {
			diff := v.Subtract(base)
			cast, castErr := diff.CastAs(target)
			if castErr != nil {
				if !errors.Is(castErr, ErrOverflow) {
					return nil, types.Invalid, castErr
				}
				overflowed = true
				break
			}
			stored[i] = cast
		}
		if !overflowed {
			return stored, target, nil
		}
		if target == sourceType {
			return nil, types.Invalid, ErrNotCompressible
		}
		next, ok := types.WiderIntegerType(target)
		if !ok || next == sourceType {
			return nil, types.Invalid, ErrNotCompressible
		}
		target = next
	}
}
