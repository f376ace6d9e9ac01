// Package demo holds the descriptions the weft CLI can run headlessly.
package demo

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/engine"
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
	"github.com/go-drift/weft/pkg/state"
	"github.com/go-drift/weft/pkg/widgets"
)

// Demo is a named description.
type Demo struct {
	Name    string
	Summary string
	Build   func(cx *core.Cx)
}

var demos = map[string]Demo{
	"counter": {Name: "counter", Summary: "a count with increment and reset buttons", Build: Counter},
	"todo":    {Name: "todo", Summary: "a list driven by a message store", Build: Todo},
	"focus":   {Name: "focus", Summary: "focusable fields with tooltips", Build: Focus},
}

// Lookup returns the demo called name.
func Lookup(name string) (Demo, error) {
	d, ok := demos[name]
	if !ok {
		return Demo{}, fmt.Errorf("unknown demo %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names returns the demo names in sorted order.
func Names() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Counter shows a count with buttons that change it.
func Counter(cx *core.Cx) {
	state.UseMutable(cx, func(cx *core.Cx, n *int) {
		widgets.Padding(cx, widgets.PaddingProps{Padding: layout.EdgeInsetsAll(8)}, func(cx *core.Cx) {
			widgets.Column(cx, widgets.FlexProps{Spacing: 6}, func(cx *core.Cx) {
				widgets.Text(cx, fmt.Sprintf("count: %d", *n))
				widgets.Row(cx, widgets.FlexProps{Spacing: 4}, func(cx *core.Cx) {
					if widgets.Button(cx, widgets.ButtonProps{Label: "inc"}) {
						*n++
					}
					if widgets.Button(cx, widgets.ButtonProps{Label: "reset", Disabled: *n == 0}) {
						*n = 0
					}
				})
			})
		})
	})
}

type todoItem struct {
	ID   int
	Done bool
}

type todoList struct {
	Next  int
	Items []todoItem
}

type todoMsg struct {
	kind string
	id   int
}

func reduceTodo(s *todoList, msg todoMsg) {
	switch msg.kind {
	case "add":
		s.Next++
		s.Items = append(s.Items, todoItem{ID: s.Next})
	case "toggle":
		for i := range s.Items {
			if s.Items[i].ID == msg.id {
				s.Items[i].Done = !s.Items[i].Done
			}
		}
	case "clear":
		s.Items = slices.DeleteFunc(s.Items, func(it todoItem) bool { return it.Done })
	}
}

// Todo shows a list of items that can be added, toggled and cleared. Items
// are keyed by id so toggling or clearing one keeps the others' state.
func Todo(cx *core.Cx) {
	state.UseStore(cx, func() todoList { return todoList{} }, reduceTodo, func(cx *core.Cx, store *state.Store[todoList, todoMsg]) {
		list := store.State()
		widgets.Padding(cx, widgets.PaddingProps{Padding: layout.EdgeInsetsAll(8)}, func(cx *core.Cx) {
			widgets.Column(cx, widgets.FlexProps{Spacing: 4, CrossAxisAlignment: widgets.CrossAxisAlignmentStretch}, func(cx *core.Cx) {
				widgets.Row(cx, widgets.FlexProps{Spacing: 4}, func(cx *core.Cx) {
					if widgets.Button(cx, widgets.ButtonProps{Label: "add"}) {
						store.Push(todoMsg{kind: "add"})
					}
					if widgets.Button(cx, widgets.ButtonProps{Label: "clear", Disabled: !anyDone(list)}) {
						store.Push(todoMsg{kind: "clear"})
					}
				})
				remaining := 0
				for _, it := range list.Items {
					if !it.Done {
						remaining++
					}
					widgets.Row(cx, widgets.FlexProps{Spacing: 6, Key: it.ID}, func(cx *core.Cx) {
						label := "done"
						if it.Done {
							label = "undo"
						}
						if widgets.Button(cx, widgets.ButtonProps{Label: label, Key: it.ID}) {
							store.Push(todoMsg{kind: "toggle", id: it.ID})
						}
						widgets.Text(cx, fmt.Sprintf("item %d", it.ID))
					})
				}
				widgets.Text(cx, fmt.Sprintf("%d left", remaining))
			})
		})
	})
}

func anyDone(list todoList) bool {
	return slices.ContainsFunc(list.Items, func(it todoItem) bool { return it.Done })
}

var focusFields = []string{"name", "email", "notes"}

// Focus shows fields that take focus and report the keys typed into them.
func Focus(cx *core.Cx) {
	state.UseMutable(cx, func(cx *core.Cx, last *string) {
		widgets.Padding(cx, widgets.PaddingProps{Padding: layout.EdgeInsetsAll(8)}, func(cx *core.Cx) {
			widgets.Column(cx, widgets.FlexProps{Spacing: 8}, func(cx *core.Cx) {
				for _, name := range focusFields {
					widgets.Tooltip(cx, widgets.TooltipProps{Text: "edit " + name, Key: name}, func(cx *core.Cx) {
						if k, ok := widgets.Focusable(cx, widgets.FocusableProps{Key: name}, func(cx *core.Cx) {
							widgets.SizedBox(cx, widgets.SizedBoxProps{Width: 120}, func(cx *core.Cx) {
								widgets.Text(cx, name)
							})
						}); ok {
							*last = name + ": " + k.Key
						}
					})
				}
				if *last == "" {
					widgets.Text(cx, "click a field")
				} else {
					widgets.Text(cx, *last)
				}
			})
		})
	})
}

// ClickButton clicks the center of the first enabled or disabled button
// labeled label in app's tree.
func ClickButton(app *engine.App, label string) error {
	r, ok := findButton(app.Tree().Snapshot(), graphics.Offset{}, label)
	if !ok {
		return fmt.Errorf("no button labeled %q", label)
	}
	center := graphics.Offset{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
	app.HandleEvent(event.PointerDown{Pointer: event.At(center)})
	app.HandleEvent(event.PointerUp{Pointer: event.At(center)})
	return nil
}

func findButton(nodes []core.NodeSnapshot, origin graphics.Offset, label string) (graphics.Rect, bool) {
	for _, n := range nodes {
		at := graphics.Offset{X: origin.X + n.X, Y: origin.Y + n.Y}
		if n.Type == buttonType && n.Description == label {
			return graphics.RectFromLTWH(at.X, at.Y, n.Width, n.Height), true
		}
		if r, ok := findButton(n.Children, at, label); ok {
			return r, true
		}
	}
	return graphics.Rect{}, false
}

var buttonType = fmt.Sprintf("%T", (*widgets.ButtonObject)(nil))
