package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/widgets"
)

// Element is a node together with its bounds in window coordinates.
type Element struct {
	Child  *core.Child
	Bounds graphics.Rect

	// parents runs from the root down to the direct parent.
	parents []Element
}

// Center returns the middle of the element's bounds.
func (e Element) Center() graphics.Offset {
	return graphics.Offset{
		X: (e.Bounds.Left + e.Bounds.Right) / 2,
		Y: (e.Bounds.Top + e.Bounds.Bottom) / 2,
	}
}

// Finder selects nodes in the tree.
type Finder interface {
	// Matches reports whether el is selected.
	Matches(el Element) bool
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("finder matched no nodes: %s", r.describe()))
	}
	return r.elements[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) Element {
	if index < 0 || index >= len(r.elements) {
		panic(fmt.Sprintf("finder index %d out of range (found %d): %s", index, len(r.elements), r.describe()))
	}
	return r.elements[index]
}

// All returns every match in depth-first pre-order.
func (r FinderResult) All() []Element { return r.elements }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.elements) }

// Exists reports whether at least one node matched.
func (r FinderResult) Exists() bool { return len(r.elements) > 0 }

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// Find walks the tree and returns the nodes finder selects.
func (t *Tester) Find(finder Finder) FinderResult {
	var out []Element
	var walk func(children *core.Children, origin graphics.Offset, parents []Element)
	walk = func(children *core.Children, origin graphics.Offset, parents []Element) {
		for _, child := range children.All() {
			at := origin.Add(child.Origin())
			el := Element{
				Child:   child,
				Bounds:  graphics.RectFromOriginSize(at, child.Size()),
				parents: parents,
			}
			if finder.Matches(el) {
				out = append(out, el)
			}
			walk(child.Children(), at, append(parents[:len(parents):len(parents)], el))
		}
	}
	walk(t.app.Tree().Children(), graphics.Offset{}, nil)
	return FinderResult{elements: out, finder: finder}
}

type finderFunc struct {
	match func(el Element) bool
	desc  string
}

func (f finderFunc) Matches(el Element) bool { return f.match(el) }
func (f finderFunc) Description() string     { return f.desc }

// ByType matches nodes whose render object has type T.
func ByType[T core.RenderObject]() Finder {
	want := reflect.TypeFor[T]()
	return finderFunc{
		desc: "type " + want.String(),
		match: func(el Element) bool {
			return reflect.TypeOf(el.Child.Object()) == want
		},
	}
}

// ByText matches labels whose text is exactly text.
func ByText(text string) Finder {
	return finderFunc{
		desc: fmt.Sprintf("text %q", text),
		match: func(el Element) bool {
			l, ok := el.Child.Object().(*widgets.LabelObject)
			return ok && l.Text() == text
		},
	}
}

// ByTextContaining matches labels whose text contains substr.
func ByTextContaining(substr string) Finder {
	return finderFunc{
		desc: fmt.Sprintf("text containing %q", substr),
		match: func(el Element) bool {
			l, ok := el.Child.Object().(*widgets.LabelObject)
			return ok && strings.Contains(l.Text(), substr)
		},
	}
}

// ByDescription matches nodes that are not labels and describe themselves
// as desc, such as a button by its label.
func ByDescription(desc string) Finder {
	return finderFunc{
		desc: fmt.Sprintf("description %q", desc),
		match: func(el Element) bool {
			if _, label := el.Child.Object().(*widgets.LabelObject); label {
				return false
			}
			d, ok := el.Child.Object().(core.Describer)
			return ok && d.Describe() == desc
		},
	}
}

// ByKey matches nodes placed with Key set to key.
func ByKey(key any) Finder {
	return finderFunc{
		desc: fmt.Sprintf("key %v", key),
		match: func(el Element) bool {
			return el.Child.Key().Pos.Local == key
		},
	}
}

// ByPredicate matches nodes for which fn returns true.
func ByPredicate(desc string, fn func(el Element) bool) Finder {
	return finderFunc{desc: desc, match: fn}
}

// Descendant matches nodes selected by of that lie inside a node selected by
// ancestor.
func Descendant(ancestor, of Finder) Finder {
	return ancestry{ancestor: ancestor, of: of}
}

type ancestry struct {
	ancestor, of Finder
}

func (a ancestry) Description() string {
	return fmt.Sprintf("%s inside %s", a.of.Description(), a.ancestor.Description())
}

func (a ancestry) Matches(el Element) bool {
	if !a.of.Matches(el) {
		return false
	}
	for _, p := range el.parents {
		if a.ancestor.Matches(p) {
			return true
		}
	}
	return false
}
