// Package testbed provides small descriptions and render objects for testing
// the harness itself.
package testbed

import (
	"fmt"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/state"
	"github.com/go-drift/weft/pkg/widgets"
)

// Counter shows a count above a button labeled label that increments it.
func Counter(label string) func(cx *core.Cx) {
	return func(cx *core.Cx) {
		state.UseMutable(cx, func(cx *core.Cx, n *int) {
			widgets.Column(cx, widgets.FlexProps{Spacing: 4}, func(cx *core.Cx) {
				widgets.Text(cx, fmt.Sprint(*n))
				if widgets.Button(cx, widgets.ButtonProps{Label: label}) {
					*n++
				}
			})
		})
	}
}
