package core

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/go-drift/weft/pkg/errors"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/key"
)

// Cx is the build cursor for one scope. It is only valid during the call
// that received it.
type Cx struct {
	tree    *Children
	state   *ContextState
	counter *ChildCounter
	scope   *ChildState

	stateIndex int
	nodeIndex  int
}

func newCx(tree *Children, state *ContextState, counter *ChildCounter, scope *ChildState) *Cx {
	return &Cx{tree: tree, state: state, counter: counter, scope: scope}
}

// Focus returns the id of the focused node.
func (cx *Cx) Focus() ChildID { return cx.state.focus }

// UseState matches or creates the state slot at pos and runs content with a
// pointer to its value. init runs only when the slot is created. content
// continues in the same scope, so nodes it builds are siblings of nodes built
// before and after the call.
func UseState[T any](cx *Cx, pos key.Position, init func() T, content func(cx *Cx, value *T)) {
	idx, found := cx.findState(pos)
	if !found {
		v := init()
		idx = cx.stateIndex
		cx.tree.states = slices.Insert(cx.tree.states, idx, &StateSlot{key: key.Of[T](pos), value: &v})
		cx.state.stats.StatesCreated++
	}
	for _, s := range cx.tree.states[cx.stateIndex:idx] {
		s.dead = true
	}
	slot := cx.tree.states[idx]
	cx.stateIndex = idx + 1

	value, ok := slot.value.(*T)
	if !ok {
		panic(&errors.IdentityError{
			Position: pos.String(),
			Expected: reflect.TypeFor[T]().String(),
			Actual:   slot.key.TypeName(),
		})
	}
	content(cx, value)
}

// Build matches or creates the structural node at pos.
//
// A new node is constructed with create(props); a matched node receives
// props through Update. content then runs in the node's own scope. When the
// node holds an action after content finishes, Build returns it and the
// current pass counts as having consumed an action.
func Build[P any, R Object[P]](cx *Cx, pos key.Position, props P, create func(P) R, content func(cx *Cx)) (any, bool) {
	idx, found := cx.findNode(pos)
	if !found {
		idx = cx.nodeIndex
		node := &Child{
			key:    key.Of[R](pos),
			object: create(props),
			state:  newChildState(cx.counter.Generate(), graphics.Size{}),
		}
		node.state.isNew = true
		node.state.needsLayout = true
		cx.tree.nodes = slices.Insert(cx.tree.nodes, idx, node)
		cx.state.stats.NodesCreated++
	}
	for _, n := range cx.tree.nodes[cx.nodeIndex:idx] {
		n.dead = true
	}
	node := cx.tree.nodes[idx]
	cx.nodeIndex = idx + 1

	object, ok := node.object.(R)
	if !ok {
		panic(&errors.IdentityError{
			Position: pos.String(),
			Expected: reflect.TypeFor[R]().String(),
			Actual:   fmt.Sprintf("%T", node.object),
		})
	}
	if found {
		object.Update(&UpdateCtx{nodeCtx: nodeCtx{state: cx.state, child: &node.state}}, props)
		cx.state.stats.NodesUpdated++
	}

	inner := newCx(&node.children, cx.state, cx.counter, &node.state)
	if content != nil {
		content(inner)
	}
	inner.finish()

	cx.scope.mergeBuild(&node.state)
	node.state.needsPass = false
	if !node.state.hasAction {
		return nil, false
	}
	action := node.state.action
	node.state.action = nil
	node.state.hasAction = false
	cx.state.actionConsumed = true
	cx.state.stats.ActionsConsumed++
	return action, true
}

func (cx *Cx) findState(pos key.Position) (int, bool) {
	for i := cx.stateIndex; i < len(cx.tree.states); i++ {
		if cx.tree.states[i].key.Pos == pos {
			return i, true
		}
	}
	return 0, false
}

func (cx *Cx) findNode(pos key.Position) (int, bool) {
	for i := cx.nodeIndex; i < len(cx.tree.nodes); i++ {
		if cx.tree.nodes[i].key.Pos == pos {
			return i, true
		}
	}
	return 0, false
}

// finish prunes everything the scope's content did not reach and refreshes
// the scope's descendant filter.
func (cx *Cx) finish() {
	prunedStates := 0
	for _, s := range cx.tree.states[cx.stateIndex:] {
		s.dead = true
	}
	cx.tree.states = slices.DeleteFunc(cx.tree.states, func(s *StateSlot) bool {
		if s.dead {
			prunedStates++
		}
		return s.dead
	})

	prunedNodes := 0
	for _, n := range cx.tree.nodes[cx.nodeIndex:] {
		n.dead = true
	}
	cx.tree.nodes = slices.DeleteFunc(cx.tree.nodes, func(n *Child) bool {
		if n.dead {
			prunedNodes += 1 + n.children.Count()
			prunedStates += n.children.StateCount()
		}
		return n.dead
	})

	cx.state.stats.StatesPruned += prunedStates
	cx.state.stats.NodesPruned += prunedNodes
	if prunedNodes > 0 {
		cx.scope.needsLayout = true
		cx.scope.needsPaint = true
	}
	cx.scope.children = cx.tree.bloom()
}
