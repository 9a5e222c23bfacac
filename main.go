package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/leonelquinteros/gotext"

	engineinput "harvestmap/pkg/engine/input"
	"harvestmap/pkg/game/assets"
	"harvestmap/pkg/game/config"
	"harvestmap/pkg/game/devtools"
	"harvestmap/pkg/game/filter"
	"harvestmap/pkg/game/gameplay"
	"harvestmap/pkg/game/harvest"
	"harvestmap/pkg/game/menu"
	"harvestmap/pkg/game/renderer"
	ebitenrenderer "harvestmap/pkg/game/renderer/ebiten"
	"harvestmap/pkg/game/renderer/tui"
	"harvestmap/pkg/game/view"
	"harvestmap/pkg/logger"
)

type options struct {
	dataPath    string
	assetsDir   string
	configPath  string
	scene       string
	filterMode  string
	snapshot    string
	snapshotDir string
	summary     bool
	interactive bool
	lang        string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.dataPath, "data", "", "harvest data file (API response or simplified format)")
	flag.StringVar(&o.assetsDir, "assets", ".", "asset root holding img/ and the item textures")
	flag.StringVar(&o.configPath, "config", "", "YAML file overriding the default tables")
	flag.StringVar(&o.scene, "scene", "", "scene key to show first (default: first scene)")
	flag.StringVar(&o.filterMode, "filter", string(filter.ModeAll), "filter mode: all, rare or custom")
	flag.StringVar(&o.snapshot, "snapshot", "", "write a PNG of the scene to this path and exit")
	flag.StringVar(&o.snapshotDir, "snapshot-dir", ".", "directory for snapshots and frame dumps taken from the viewer")
	flag.BoolVar(&o.summary, "summary", false, "print the item summary of the scene and exit")
	flag.BoolVar(&o.interactive, "interactive", false, "read commands from stdin instead of opening a window")
	flag.StringVar(&o.lang, "lang", "en_US", "locale for user-facing text")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()
	logger.Init()
	gotext.Configure("locales", o.lang, "default")

	if err := run(o); err != nil {
		logger.Log.WithError(err).Error("Exiting")
		os.Exit(1)
	}
}

func run(o options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	data, err := loadData(o.dataPath, cfg.Sites)
	if err != nil {
		return err
	}
	if err := menu.ApplyBindings(cfg.Bindings); err != nil {
		return err
	}
	mode, err := filter.ParseMode(o.filterMode)
	if err != nil {
		return err
	}

	v := view.New(cfg, view.FileImageLoader{Root: o.assetsDir})
	v.LoadData(data)

	sceneKey := o.scene
	if sceneKey == "" {
		sceneKey = cfg.SceneOrder[0]
	}
	if err := v.SelectScene(ctx, sceneKey); err != nil {
		return err
	}
	if err := v.SetFilterMode(mode); err != nil {
		return err
	}
	v.Flush()

	cache := assets.NewCache(os.DirFS(o.assetsDir))
	preloader := assets.NewPreloader(cache, cfg.PreloadBatchSize, cfg.PreloadBatchGap)
	priority := cfg.SceneTextures(v.Points(sceneKey))

	session := &gameplay.Session{View: v, Icons: cache, SnapshotDir: o.snapshotDir}

	switch {
	case o.snapshot != "" || o.summary:
		return runHeadless(ctx, o, session, preloader, priority)
	case o.interactive:
		preloader.Start(ctx, priority, cfg.AllTextures())
		return runTerminal(ctx, session, os.Stdin)
	}

	preloader.Start(ctx, priority, cfg.AllTextures())
	r := ebitenrenderer.New(session)
	renderer.SetRenderer(r)
	renderer.Init()
	return r.Run()
}

func loadData(path string, sites harvest.Sites) (harvest.Map, error) {
	if path == "" {
		logger.Log.Warn("No harvest data given, showing empty maps")
		return harvest.Map{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading harvest data: %w", err)
	}
	m, format, err := harvest.Decode(raw, sites)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Log.WithField("format", format).WithField("scenes", len(m)).Info("Harvest data decoded")
	return m, nil
}

// runHeadless writes the requested snapshot and summary without a window
func runHeadless(ctx context.Context, o options, s *gameplay.Session, p *assets.Preloader, priority []string) error {
	// The summary owns stdout, so logs go to stderr.
	logger.SetOutput(os.Stderr)

	f := s.View.Frame()
	if f == nil {
		return devtools.ErrNoFrame
	}
	if o.snapshot != "" {
		if _, err := p.Run(ctx, priority, nil); err != nil {
			return err
		}
		if err := devtools.WritePNG(o.snapshot, f, s.View.Background(), s.Icons, s.View.Config().Card); err != nil {
			return err
		}
		logger.Log.WithField("path", o.snapshot).Info("Snapshot written")
	}
	if o.summary {
		t := tui.New(os.Stdout, s.View.Config().Rarity)
		renderer.SetRenderer(t)
		renderer.Init()
		renderer.RenderFrame(f)
	}
	return nil
}

// runTerminal processes one command per input line until quit or EOF
func runTerminal(ctx context.Context, s *gameplay.Session, in io.Reader) error {
	logger.SetOutput(os.Stderr)

	t := tui.New(os.Stdout, s.View.Config().Rarity)
	renderer.SetRenderer(t)
	renderer.Init()
	renderer.RenderFrame(s.View.Frame())

	lines := engineinput.NewLineReader(in)
	for !s.Quit {
		if ctx.Err() != nil {
			return nil
		}
		raw, err := lines.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		before := s.View.Frame()
		if err := gameplay.ProcessCommand(ctx, s, raw); err != nil {
			logger.Log.WithError(err).WithField("command", raw.Code).Warn("Command failed")
		}
		s.View.Flush()
		if f := s.View.Frame(); f != nil && f != before {
			renderer.RenderFrame(f)
		}
	}
	return nil
}
