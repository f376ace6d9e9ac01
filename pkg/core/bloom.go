package core

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Bloom is a 64-bit membership filter over descendant ids.
// MayContain never reports false for an added id.
type Bloom struct {
	bits  uint64
	count int
}

func bloomMask(id ChildID) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(id))
	h := xxhash.Sum64(buf[:])
	return 1<<(h&63) | 1<<((h>>32)&63)
}

// Add records id in the filter.
func (b *Bloom) Add(id ChildID) {
	b.bits |= bloomMask(id)
	b.count++
}

// MayContain reports whether id might have been added.
func (b Bloom) MayContain(id ChildID) bool {
	m := bloomMask(id)
	return b.bits&m == m
}

// Union returns a filter containing the entries of both.
func (b Bloom) Union(other Bloom) Bloom {
	return Bloom{bits: b.bits | other.bits, count: b.count + other.count}
}

// Len returns the number of ids added, counting duplicates.
func (b Bloom) Len() int {
	return b.count
}

// IsEmpty reports whether nothing was added.
func (b Bloom) IsEmpty() bool {
	return b.count == 0
}
