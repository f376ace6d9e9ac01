package core

import (
	"iter"

	"github.com/go-drift/weft/pkg/key"
)

// StateSlot is a persistent value retained at a call position.
type StateSlot struct {
	key   key.Key
	value any
	dead  bool
}

// Key returns the slot's identity.
func (s *StateSlot) Key() key.Key { return s.key }

// Value returns the stored pointer.
func (s *StateSlot) Value() any { return s.value }

// Children is the ordered content of one scope: its state slots and its
// structural nodes. The two collections are matched independently.
type Children struct {
	states []*StateSlot
	nodes  []*Child
}

// Len returns the number of structural nodes.
func (c *Children) Len() int { return len(c.nodes) }

// At returns the i-th structural node.
func (c *Children) At(i int) *Child { return c.nodes[i] }

// All iterates the structural nodes in build order.
func (c *Children) All() iter.Seq2[int, *Child] {
	return func(yield func(int, *Child) bool) {
		for i, n := range c.nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// StateLen returns the number of state slots.
func (c *Children) StateLen() int { return len(c.states) }

// States iterates the state slots in build order.
func (c *Children) States() iter.Seq2[int, *StateSlot] {
	return func(yield func(int, *StateSlot) bool) {
		for i, s := range c.states {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Count returns the number of structural nodes in the subtree.
func (c *Children) Count() int {
	n := 0
	for _, child := range c.nodes {
		n += 1 + child.children.Count()
	}
	return n
}

// StateCount returns the number of state slots in the subtree.
func (c *Children) StateCount() int {
	n := len(c.states)
	for _, child := range c.nodes {
		n += child.children.StateCount()
	}
	return n
}

func (c *Children) bloom() Bloom {
	var b Bloom
	for _, child := range c.nodes {
		b.Add(child.state.id)
		b = b.Union(child.state.children)
	}
	return b
}

// Child is a structural node: a render object, its nested scope and its state.
type Child struct {
	key      key.Key
	object   RenderObject
	children Children
	state    ChildState
	dead     bool
}

// Key returns the node's identity.
func (c *Child) Key() key.Key { return c.key }

// ID returns the node's id.
func (c *Child) ID() ChildID { return c.state.id }

// Object returns the render object.
func (c *Child) Object() RenderObject { return c.object }

// Children returns the nested scope.
func (c *Child) Children() *Children { return &c.children }

// State returns the node's transient state.
func (c *Child) State() *ChildState { return &c.state }
