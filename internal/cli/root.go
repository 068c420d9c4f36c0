// Package cli implements the stickered command-line interface.
//
// # Commands
//
//   - edit: open the watermark editor window
//   - script: run a JSON test script headlessly and print the result
//   - config: show or delete stored configurations
//
// All commands accept --settings (TOML), --store (directory), --redis
// (address, overrides --store), and --verbose (-v) for debug logging.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sticker"
	"github.com/phanxgames/sticker/store"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	settingsPath string
	storeDir     string
	redisAddr    string
	verbose      bool
}

// Execute runs the stickered CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          "stickered",
		Short:        "stickered places a watermark sticker on photos",
		Long:         `stickered is an editor for positioning, scaling, and rotating a watermark sticker over a photo, with separate layouts and undo history for portrait, landscape, and square canvases.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("stickered %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	pf := root.PersistentFlags()
	pf.StringVar(&opts.settingsPath, "settings", "", "TOML settings file")
	pf.StringVar(&opts.storeDir, "store", "", "configuration directory (default from settings)")
	pf.StringVar(&opts.redisAddr, "redis", "", "Redis address; stores configurations in Redis instead of files")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newScriptCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

// loadSettings returns defaults, or the TOML file when --settings is set.
func (o *globalOptions) loadSettings() (sticker.Settings, error) {
	if o.settingsPath == "" {
		return sticker.DefaultSettings(), nil
	}
	return sticker.LoadSettings(o.settingsPath)
}

// openStore picks Redis when an address is configured, else the file store.
// Flags override settings.
func (o *globalOptions) openStore(ctx context.Context, s sticker.Settings) (store.ConfigStore, error) {
	addr := o.redisAddr
	if addr == "" {
		addr = s.RedisAddr
	}
	if addr != "" {
		loggerFromContext(ctx).Debug("using redis store", "addr", addr)
		return store.NewRedisStore(ctx, store.RedisConfig{Addr: addr})
	}
	dir := o.storeDir
	if dir == "" {
		dir = s.StoreDir
	}
	loggerFromContext(ctx).Debug("using file store", "dir", dir)
	return store.NewFileStore(dir)
}
