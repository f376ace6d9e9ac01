package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	register(treeCmd())
}

func treeCmd() *cobra.Command {
	var text bool

	cmd := &cobra.Command{
		Use:   "tree [step...]",
		Short: "Print the retained tree of a demo",
		Long: `Connect the demo, replay the given steps (see "weft run --help") and
print the published tree snapshot as JSON, or as indented text with --text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			s.app.EnableSnapshots()
			s.connect()
			for _, step := range args {
				if err := runStep(s.app, step); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if text {
				fmt.Fprint(out, s.app.Tree().Dump())
				return nil
			}
			snap := s.app.Snapshot()
			if snap == nil {
				return fmt.Errorf("no tree snapshot was published")
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}

	cmd.Flags().BoolVar(&text, "text", false, "print an indented text dump instead of JSON")
	return cmd
}
