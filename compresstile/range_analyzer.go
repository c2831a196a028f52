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
	"sort"

	"github.com/memcp-db/compresstile/types"
)

// analyzeRange chooses a (base, target) pair for a numeric column, per
// spec.md §4.1: sort ascending, take the median as base, then probe the
// narrowest integer type strictly below sourceType, escalating on
// overflow of either the min or the max delta from base.
//
// Only min and max need checking after sort, because subtraction is
// monotone in the source type: if the endpoints fit, every value in
// between fits too.
func analyzeRange(values []types.Value, sourceType types.TypeID) (base types.Value, target types.TypeID, err error) {
	n := len(values)
	if n == 0 {
		return types.Value{}, types.Invalid, ErrNotCompressible
	}

	sorted := make([]types.Value, n)
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CompareLessThan(sorted[j]) })

	base = sorted[n/2]

	candidate, ok := types.NarrowestIntegerBelow(sourceType)
	if !ok {
		// source is already the narrowest integer type, or not integral
		return types.Value{}, types.Invalid, ErrNotCompressible
	}

	for {
		if candidate == sourceType {
			// escalation reached the source type itself: no gain
			return types.Value{}, types.Invalid, ErrNotCompressible
		}

		minDiff := sorted[0].Subtract(base)
		maxDiff := sorted[n-1].Subtract(base)
		_, minErr := minDiff.CastAs(candidate)
		_, maxErr := maxDiff.CastAs(candidate)
		if minErr == nil && maxErr == nil {
			return base, candidate, nil
		}
		if minErr != nil && !errors.Is(minErr, ErrOverflow) {
			return types.Value{}, types.Invalid, minErr
		}
		if maxErr != nil && !errors.Is(maxErr, ErrOverflow) {
			return types.Value{}, types.Invalid, maxErr
		}
		next, ok := types.WiderIntegerType(candidate)
		if !ok {
			return types.Value{}, types.Invalid, ErrNotCompressible
		}
		candidate = next
	}
}
