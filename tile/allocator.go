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

package tile

import "fmt"

// BackendType tags which allocator pool services a buffer. This module
// ships only BackendHeap; additional backends (NUMA-local, pooled,
// etc.) are the surrounding database's concern and out of this
// module's scope, but the tag is threaded through Allocate/Release so
// a caller's richer allocator can dispatch on it.
type BackendType uint8

const (
	BackendHeap BackendType = iota
)

func (b BackendType) String() string {
	switch b {
	case BackendHeap:
		return "heap"
	default:
		return "unknown"
	}
}

// Allocator is the StorageManager contract consumed from spec.md §6:
// allocate returns a zeroed buffer or a non-nil error; release must
// tolerate a nil buffer as a no-op.
type Allocator interface {
	Allocate(backend BackendType, nbytes int) ([]byte, error)
	Release(backend BackendType, data []byte)
}

// HeapAllocator is the default Allocator: plain Go heap memory, always
// zeroed on allocation (make([]byte, n) already zeroes).
type HeapAllocator struct{}

func (HeapAllocator) Allocate(backend BackendType, nbytes int) ([]byte, error) {
	if nbytes < 0 {
		return nil, fmt.Errorf("tile: negative allocation size %d", nbytes)
	}
	return make([]byte, nbytes), nil
}

func (HeapAllocator) Release(backend BackendType, data []byte) {
	// nothing to do: the GC reclaims heap buffers. Accepting nil is
	// implicit since there is no pointer to dereference.
}
