package cmd

import (
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/weft/pkg/graphics"
)

func init() {
	register(renderCmd())
}

func renderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render [step...]",
		Short: "Render the last frame of a demo to a PNG file",
		Long: `Connect the demo, replay the given steps (see "weft run --help") and
rasterize the most recently presented frame.`,
		Example: `  weft render --demo todo -o todo.png click:add click:add`,
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

			frame := s.window.LastFrame()
			if frame == nil {
				return fmt.Errorf("no frame was presented")
			}
			size := frame.Size()
			canvas := graphics.NewImageCanvas(int(math.Ceil(size.Width)), int(math.Ceil(size.Height)))
			frame.Paint(canvas)

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := png.Encode(f, canvas.Image()); err != nil {
				f.Close()
				return fmt.Errorf("failed to encode %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			s.logger.Info("frame rendered",
				slog.String("path", output),
				slog.Float64("width", size.Width),
				slog.Float64("height", size.Height),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "frame.png", "PNG file to write")
	return cmd
}
