package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sticker"
)

// maxScriptFrames bounds headless runs of scripts that never finish.
const maxScriptFrames = 10000

// headlessSurface satisfies sticker.Surface without drawing anything.
type headlessSurface struct{}

func (headlessSurface) Clear(sticker.Rect) {}
func (headlessSurface) DrawImage(sticker.Content, float64, float64, float64, float64, float64) {}
func (headlessSurface) StrokeRect(sticker.Rect, float64, sticker.Color) {}
func (headlessSurface) FillRect(sticker.Rect, sticker.Color) {}
func (headlessSurface) StrokeLine(float64, float64, float64, float64, float64, sticker.Color) {}
func (headlessSurface) FillCircle(float64, float64, float64, sticker.Color) {}

type scriptOptions struct {
	configID    string
	stickerPath string
	save        bool
}

// scriptResult is printed as JSON after a headless run.
type scriptResult struct {
	ConfigID    string             `json:"config_id,omitempty"`
	Orientation string             `json:"orientation"`
	Present     bool               `json:"present"`
	Sticker     *sticker.Transform `json:"sticker,omitempty"`
	Cursor      int                `json:"cursor"`
	Entries     int                `json:"entries"`
	Frames      int                `json:"frames"`
	Snapshots   []string           `json:"snapshots,omitempty"`
}

func newScriptCmd(g *globalOptions) *cobra.Command {
	opts := &scriptOptions{}
	cmd := &cobra.Command{
		Use:   "script <file.json>",
		Short: "Run a test script without a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			runner, err := sticker.LoadTestScript(data)
			if err != nil {
				return err
			}
			settings, err := g.loadSettings()
			if err != nil {
				return err
			}

			engine, err := sticker.NewEngine(headlessSurface{}, settings)
			if err != nil {
				return err
			}
			engine.SetLogger(logger.WithPrefix("sticker"))
			engine.SetDebugMode(g.verbose)
			if err := engine.SetCanvasSize(settings.CanvasWidth, settings.CanvasHeight); err != nil {
				return err
			}

			var sess *session
			if opts.configID != "" || opts.save {
				st, err := g.openStore(ctx, settings)
				if err != nil {
					return err
				}
				defer st.Close()
				sess = newSession(engine, st, logger)
				if err := sess.restore(ctx, opts.configID); err != nil {
					return err
				}
			} else {
				sess = newSession(engine, nil, logger)
			}
			if opts.stickerPath != "" {
				if err := sess.attachFile(opts.stickerPath); err != nil {
					return err
				}
			}

			engine.SetTestRunner(runner)
			res := runScript(engine, runner)
			if !runner.Done() {
				return fmt.Errorf("script did not finish within %d frames", maxScriptFrames)
			}
			if opts.save {
				id, err := sess.save(ctx)
				if err != nil {
					return err
				}
				res.ConfigID = id
			}
			return writeResult(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configID, "config", "", "configuration id to start from")
	f.StringVar(&opts.stickerPath, "sticker", "", "sticker image to attach before the script runs")
	f.BoolVar(&opts.save, "save", false, "save the resulting configuration")
	return cmd
}

// runScript steps the engine until the runner is done and reports the final
// state.
func runScript(e *sticker.Engine, runner *sticker.TestRunner) scriptResult {
	frames := 0
	var snaps []string
	for ; frames < maxScriptFrames && !runner.Done(); frames++ {
		e.Update(1.0 / 60)
		snaps = append(snaps, e.TakeSnapshots()...)
	}

	track := e.History(e.Orientation())
	res := scriptResult{
		Orientation: e.Orientation().String(),
		Cursor:      track.Cursor(),
		Entries:     track.Len(),
		Frames:      frames,
		Snapshots:   snaps,
	}
	if t, ok := e.Sticker(); ok {
		res.Present = true
		res.Sticker = &t
	}
	return res
}

func writeResult(w io.Writer, res scriptResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
