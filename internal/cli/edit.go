package cli

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sticker"
	"github.com/phanxgames/sticker/game"
)

type editOptions struct {
	configID    string
	stickerPath string
	background  string
	scriptPath  string
	snapshotDir string
	snapshotFmt string
	noSave      bool
}

func newEditCmd(g *globalOptions) *cobra.Command {
	opts := &editOptions{}
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the editor window",
		Long: `Open the editor window over a background photo.

Drag the sticker to move it, drag a corner to resize, and drag the knob
below it to rotate. Keys: C/F/L custom/fit/fill, 1-9 anchor, Tab cycles
portrait/landscape/square, Delete removes the sticker, Esc quits. The
configuration is saved on exit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			settings, err := g.loadSettings()
			if err != nil {
				return err
			}
			st, err := g.openStore(ctx, settings)
			if err != nil {
				return err
			}
			defer st.Close()

			surface := game.NewSurface(int(settings.CanvasWidth), int(settings.CanvasHeight), logger)
			engine, err := sticker.NewEngine(surface, settings)
			if err != nil {
				return err
			}
			engine.SetLogger(logger.WithPrefix("sticker"))
			engine.SetDebugMode(g.verbose)

			gm, err := game.New(engine, surface, logger)
			if err != nil {
				return err
			}

			sess := newSession(engine, st, logger)
			if err := sess.restore(ctx, opts.configID); err != nil {
				return err
			}
			if opts.stickerPath != "" {
				if err := sess.attachFile(opts.stickerPath); err != nil {
					return err
				}
			}
			for key, img := range sess.images {
				surface.AddImage(key, img)
			}
			if opts.background != "" {
				img, err := loadImage(opts.background)
				if err != nil {
					return err
				}
				gm.SetBackground(img)
			}
			if opts.scriptPath != "" {
				data, err := os.ReadFile(opts.scriptPath)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				runner, err := sticker.LoadTestScript(data)
				if err != nil {
					return err
				}
				engine.SetTestRunner(runner)
			}
			snaps, err := game.NewSnapshotter(opts.snapshotDir, opts.snapshotFmt, logger)
			if err != nil {
				return err
			}
			gm.SetSnapshotter(snaps)

			ebiten.SetWindowTitle("stickered")
			if err := ebiten.RunGame(gm); err != nil {
				return fmt.Errorf("run editor: %w", err)
			}

			if opts.noSave {
				return nil
			}
			id, err := sess.save(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configID, "config", "", "configuration id to load and save")
	f.StringVar(&opts.stickerPath, "sticker", "", "sticker image (png, jpeg, webp, tga)")
	f.StringVar(&opts.background, "background", "", "background photo")
	f.StringVar(&opts.scriptPath, "script", "", "JSON test script to drive the editor")
	f.StringVar(&opts.snapshotDir, "snapshots", "snapshots", "directory for script snapshots")
	f.StringVar(&opts.snapshotFmt, "snapshot-format", "png", "snapshot format: png or webp")
	f.BoolVar(&opts.noSave, "no-save", false, "do not save the configuration on exit")
	return cmd
}
