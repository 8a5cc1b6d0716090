package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/penwyp/cloudwatcher/internal/config"
	"github.com/penwyp/cloudwatcher/internal/core/model"
	"github.com/penwyp/cloudwatcher/internal/data/source"
	"github.com/penwyp/cloudwatcher/internal/engine"
	"github.com/penwyp/cloudwatcher/internal/presentation"
	"github.com/penwyp/cloudwatcher/internal/util"
)

var (
	watchRefresh      string
	watchLookback     string
	watchStreamPrefix string
	watchTimezone     string
	watchOutput       string
	watchNoColor      bool
	watchTruncate     bool
	watchShowStream   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [group...]",
	Short: "Watch log groups and print new events until interrupted",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchRefresh, "refresh", "f", "",
		"Refresh interval (e.g. 5s, 1m; default 10s)")
	watchCmd.Flags().StringVar(&watchLookback, "lookback", "",
		"How far back the first fetch reaches (default 10m)")
	watchCmd.Flags().StringVar(&watchStreamPrefix, "stream-prefix", "",
		"Only watch streams whose name starts with this prefix")
	watchCmd.Flags().StringVar(&watchTimezone, "timezone", "",
		"Timezone for timestamps (e.g. UTC, Europe/London; default Local)")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "",
		"Output format (text, json)")
	watchCmd.Flags().BoolVar(&watchNoColor, "no-color", false,
		"Disable colored output")
	watchCmd.Flags().BoolVar(&watchTruncate, "truncate", false,
		"Truncate messages to the terminal width")
	watchCmd.Flags().BoolVar(&watchShowStream, "show-stream", false,
		"Show the log stream name on each line")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyWatchFlags(cfg)

	groups := args
	if len(groups) == 0 {
		groups = cfg.Groups
	}
	if len(groups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No log groups to watch")
		return nil
	}

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := newSource(ctx, cfg.Region)
	if err != nil {
		return err
	}
	if err := validateGroups(ctx, src, groups); err != nil {
		return err
	}

	targets := make([]model.LogGroupTarget, 0, len(groups))
	for _, g := range groups {
		targets = append(targets, model.LogGroupTarget{Name: g, StreamPrefix: cfg.StreamPrefix})
	}

	opts := presentation.TerminalOptions(cfg.Truncate)
	colorCapable := opts.Color
	if cfg.NoColor {
		opts.Color = false
	}
	opts.JSON = cfg.Output == "json"
	opts.ShowStream = watchShowStream || cfg.StreamPrefix != ""
	printer := presentation.NewPrinter(cmd.OutOrStdout(), opts)

	poller := engine.NewPoller(src, printer, engine.Config{
		Interval:     cfg.RefreshInterval(),
		Lookback:     cfg.LookbackWindow(),
		FetchTimeout: cfg.FetchTimeoutDuration(),
	})

	stopReload := watchConfigFile(poller, printer, colorCapable)
	defer stopReload()

	util.LogInfof("watching %d log groups every %s", len(targets), cfg.RefreshInterval())
	poller.Watch(ctx, targets)
	return nil
}

// applyWatchFlags overlays explicitly set flags onto the file config.
func applyWatchFlags(cfg *config.Config) {
	if watchRefresh != "" {
		cfg.Refresh = watchRefresh
	}
	if watchLookback != "" {
		cfg.Lookback = watchLookback
	}
	if watchStreamPrefix != "" {
		cfg.StreamPrefix = watchStreamPrefix
	}
	if watchTimezone != "" {
		cfg.Timezone = watchTimezone
	}
	if watchOutput != "" {
		cfg.Output = watchOutput
	}
	if watchNoColor {
		cfg.NoColor = true
	}
	if watchTruncate {
		cfg.Truncate = true
	}
}

// validateGroups fails fast when a named group does not exist, before the
// poll loop starts. Disappearance mid-run stays non-fatal.
func validateGroups(ctx context.Context, src source.Source, names []string) error {
	available, err := src.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("verify log groups: %w", err)
	}
	known := make(map[string]bool, len(available))
	for _, g := range available {
		known[g.Name] = true
	}
	for _, name := range names {
		if !known[name] {
			return fmt.Errorf("no such log group: %s", name)
		}
	}
	return nil
}

// applyReloadedConfig pushes the reloadable settings of a freshly read config
// onto the running watch: the refresh interval and the color toggle. Color
// only ever comes back on when stdout supported it at startup; the toggle is
// two-way so removing no_color from the file restores color.
func applyReloadedConfig(cfg *config.Config, poller *engine.Poller, printer *presentation.Printer, colorCapable bool) {
	poller.SetInterval(cfg.RefreshInterval())
	printer.SetColor(colorCapable && !cfg.NoColor)
}

// watchConfigFile reloads the config file on change and applies the refresh
// interval and color toggle to the running watch. Returns a stop function.
// Reload failures only log; the running watch keeps its current settings.
func watchConfigFile(poller *engine.Poller, printer *presentation.Printer, colorCapable bool) func() {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return func() {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		util.LogDebugf("config watch unavailable: %v", err)
		return func() {}
	}
	// Watch the directory: editors typically replace the file wholesale.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return func() {}
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				cfg, err := config.Load(path)
				if err != nil {
					util.LogWarnf("config reload failed: %v", err)
					continue
				}
				applyWatchFlags(cfg)
				applyReloadedConfig(cfg, poller, printer, colorCapable)
				util.LogInfof("config reloaded: refresh %s", cfg.RefreshInterval())
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return func() { watcher.Close() }
}
