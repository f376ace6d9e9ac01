// Package widgets provides the built-in render objects and the functions
// that place them in a description.
//
// Every widget function records the call position of its caller, so two
// calls on different lines are different nodes. Calls made from a loop share
// a line; set the Key field of the props to tell iterations apart:
//
//	for _, item := range items {
//	    widgets.Label(cx, widgets.LabelProps{Text: item.Name, Key: item.ID})
//	}
//
// Containers take a content function that describes their children:
//
//	widgets.Column(cx, widgets.FlexProps{Spacing: 8}, func(cx *core.Cx) {
//	    widgets.Text(cx, "Hello")
//	    if widgets.Button(cx, widgets.ButtonProps{Label: "Again"}) {
//	        count++
//	    }
//	})
//
// Button reports a click by returning true from the pass that consumed it.
package widgets
