package core

import "strconv"

// ChildID identifies a structural node for its whole lifetime.
// The zero value means "no node".
type ChildID uint64

func (id ChildID) String() string {
	if id == 0 {
		return "none"
	}
	return "#" + strconv.FormatUint(uint64(id), 10)
}

// ChildCounter hands out ids unique within one tree.
type ChildCounter struct {
	next uint64
}

// Generate returns a fresh id.
func (c *ChildCounter) Generate() ChildID {
	c.next++
	return ChildID(c.next)
}
