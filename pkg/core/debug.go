package core

import (
	"fmt"
	"reflect"
	"strings"
)

// DebugMode controls whether the engine recovers panics raised while
// handling a frame. When false, panics propagate to the caller.
var DebugMode = true

// SetDebugMode enables or disables debug mode.
func SetDebugMode(debug bool) {
	DebugMode = debug
}

// NodeSnapshot is a serializable view of one structural node.
type NodeSnapshot struct {
	ID          ChildID        `json:"id"`
	Type        string         `json:"type"`
	Position    string         `json:"position"`
	Description string         `json:"description,omitempty"`
	X           float64        `json:"x"`
	Y           float64        `json:"y"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Hot         bool           `json:"hot,omitempty"`
	Active      bool           `json:"active,omitempty"`
	Focus       bool           `json:"focus,omitempty"`
	States      []StateInfo    `json:"states,omitempty"`
	Children    []NodeSnapshot `json:"children,omitempty"`
}

// StateInfo describes one state slot.
type StateInfo struct {
	Type     string `json:"type"`
	Position string `json:"position"`
	Value    string `json:"value"`
}

// Snapshot captures the current shape of the top-level scope.
func (t *Tree) Snapshot() []NodeSnapshot {
	return snapshotChildren(&t.children)
}

// TopStates describes the state slots of the top-level scope.
func (t *Tree) TopStates() []StateInfo {
	return stateInfos(&t.children)
}

func snapshotChildren(c *Children) []NodeSnapshot {
	if len(c.nodes) == 0 {
		return nil
	}
	out := make([]NodeSnapshot, 0, len(c.nodes))
	for _, n := range c.nodes {
		s := NodeSnapshot{
			ID:       n.state.id,
			Type:     n.key.TypeName(),
			Position: n.key.Pos.String(),
			X:        n.state.origin.X,
			Y:        n.state.origin.Y,
			Width:    n.state.size.Width,
			Height:   n.state.size.Height,
			Hot:      n.state.isHot,
			Active:   n.state.isActive,
			Focus:    n.state.hasFocus,
			States:   stateInfos(&n.children),
			Children: snapshotChildren(&n.children),
		}
		if d, ok := n.object.(Describer); ok {
			s.Description = d.Describe()
		}
		out = append(out, s)
	}
	return out
}

func stateInfos(c *Children) []StateInfo {
	if len(c.states) == 0 {
		return nil
	}
	out := make([]StateInfo, 0, len(c.states))
	for _, s := range c.states {
		out = append(out, StateInfo{
			Type:     s.key.TypeName(),
			Position: s.key.Pos.String(),
			Value:    fmt.Sprintf("%v", derefValue(s.value)),
		})
	}
	return out
}

func derefValue(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}

// Dump renders the tree as indented text, one node per line.
func (t *Tree) Dump() string {
	var sb strings.Builder
	var walk func(nodes []NodeSnapshot, depth int)
	walk = func(nodes []NodeSnapshot, depth int) {
		for _, n := range nodes {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(n.Type)
			if n.Description != "" {
				fmt.Fprintf(&sb, " %q", n.Description)
			}
			sb.WriteString("\n")
			walk(n.Children, depth+1)
		}
	}
	walk(t.Snapshot(), 0)
	return sb.String()
}
