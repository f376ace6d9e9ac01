package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/go-drift/weft/cmd/weft/internal/demo"
	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/engine"
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/widgets"
)

func init() {
	register(runCmd())
}

func runCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run [step...]",
		Short: "Run a demo headlessly and report each frame",
		Long: `Connect the demo to a headless window, replay the given steps and
print the statistics of every frame followed by the texts on screen.

Steps run in order:
  click:<label>    click the first button labeled <label>
  key:<name>       press and release a key, e.g. key:Tab or key:shift+Tab
  tick             deliver a timer event, forcing a build pass`,
		Example: `  weft run click:inc click:inc
  weft run --demo focus key:Tab key:x`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			s.connect()
			for _, step := range args {
				if err := runStep(s.app, step); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			frames := s.app.Frames().Samples()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Frames []engine.FrameStats `json:"frames"`
					Texts  []string            `json:"texts"`
				}{frames, texts(s.app.Tree())})
			}
			if err := printFrames(out, frames); err != nil {
				return err
			}
			fmt.Fprintln(out)
			for _, t := range texts(s.app.Tree()) {
				fmt.Fprintf(out, "%q\n", t)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print frames and texts as JSON")
	return cmd
}

func runStep(app *engine.App, step string) error {
	kind, arg, _ := strings.Cut(step, ":")
	switch kind {
	case "click":
		return demo.ClickButton(app, arg)
	case "key":
		name, mods, err := parseKey(arg)
		if err != nil {
			return err
		}
		app.HandleEvent(event.KeyDown{Key: name, Mods: mods})
		app.HandleEvent(event.KeyUp{Key: name, Mods: mods})
		return nil
	case "tick":
		app.HandleEvent(event.Timer{})
		return nil
	}
	return fmt.Errorf("unknown step %q (use click:<label>, key:<name> or tick)", step)
}

// parseKey splits "ctrl+shift+a" into the key name and modifiers.
func parseKey(s string) (string, event.Modifiers, error) {
	parts := strings.Split(s, "+")
	name := parts[len(parts)-1]
	if name == "" {
		return "", 0, fmt.Errorf("empty key in %q", s)
	}
	var mods event.Modifiers
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "shift":
			mods |= event.ModShift
		case "ctrl":
			mods |= event.ModCtrl
		case "alt":
			mods |= event.ModAlt
		case "meta", "cmd":
			mods |= event.ModMeta
		default:
			return "", 0, fmt.Errorf("unknown modifier %q in %q", p, s)
		}
	}
	return name, mods, nil
}

func printFrames(w io.Writer, frames []engine.FrameStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tTRIGGER\tPASSES\tCREATED\tUPDATED\tPRUNED\tLAYOUT\tPAINT\tMS")
	for _, f := range frames {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%t\t%t\t%.3f\n",
			f.Seq, f.Trigger, f.Build.Passes,
			f.Build.NodesCreated, f.Build.NodesUpdated, f.Build.NodesPruned,
			f.Layout, f.Painted, f.FrameMs)
	}
	return tw.Flush()
}

// texts returns the text of every label in tree order.
func texts(tree *core.Tree) []string {
	var out []string
	var walk func(children *core.Children)
	walk = func(children *core.Children) {
		for _, child := range children.All() {
			if l, ok := child.Object().(*widgets.LabelObject); ok {
				out = append(out, l.Text())
			}
			walk(child.Children())
		}
	}
	walk(tree.Children())
	return out
}
