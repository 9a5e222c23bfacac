// Package view drives one map view: it owns the render state and runs the
// projection, dirty-region, raster and layout phases after every change.
package view

import (
	"context"
	"errors"
	"fmt"
	"image"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/vec"

	"harvestmap/pkg/engine/debounce"
	"harvestmap/pkg/engine/dirty"
	"harvestmap/pkg/engine/layout"
	"harvestmap/pkg/engine/projection"
	"harvestmap/pkg/game/config"
	"harvestmap/pkg/game/filter"
	"harvestmap/pkg/game/harvest"
	"harvestmap/pkg/game/rarity"
	"harvestmap/pkg/game/renderer"
	"harvestmap/pkg/game/state"
	"harvestmap/pkg/logger"
)

// ErrInvalidCalibration is returned for a non-positive grid width
var ErrInvalidCalibration = errors.New("view: invalid calibration")

// View is a single map view. It is not safe for concurrent use; drive it
// from one goroutine and call Tick from the frame loop.
type View struct {
	// Now is the clock used for debounce requests
	Now func() time.Time

	cfg    *config.Config
	loader ImageLoader
	st     *state.RenderState

	data      harvest.Map
	superRare map[string]bool

	background image.Image
	viewport   image.Point

	surface *renderer.Surface
	tracker *dirty.Tracker

	filterDebounce *debounce.Coalescer
	resizeDebounce *debounce.Coalescer

	frame *renderer.Frame
}

// New creates a view with no scene selected
func New(cfg *config.Config, loader ImageLoader) *View {
	return &View{
		Now:            time.Now,
		cfg:            cfg,
		loader:         loader,
		st:             state.New(),
		superRare:      make(map[string]bool),
		surface:        renderer.NewSurface(0, 0),
		tracker:        dirty.NewTracker(cfg.DirtyRadius),
		filterDebounce: debounce.New(cfg.FilterDebounce),
		resizeDebounce: debounce.New(cfg.ResizeDebounce),
	}
}

// State returns the render state. Callers must not mutate it directly.
func (v *View) State() *state.RenderState {
	return v.st
}

// Config returns the configuration the view was built with
func (v *View) Config() *config.Config {
	return v.cfg
}

// Background returns the loaded scene image, or nil before SelectScene
func (v *View) Background() image.Image {
	return v.background
}

// Frame returns the result of the latest render, or nil if nothing has
// been rendered yet
func (v *View) Frame() *renderer.Frame {
	return v.frame
}

// Canvas returns the displayed background size. The image is fitted into
// the viewport keeping its aspect ratio; without a viewport it is shown at
// natural size.
func (v *View) Canvas() projection.Canvas {
	if v.background == nil {
		return projection.Canvas{}
	}
	b := v.background.Bounds()
	nw, nh := float64(b.Dx()), float64(b.Dy())
	c := projection.Canvas{Width: nw, Height: nh, NaturalWidth: nw, NaturalHeight: nh}
	if v.viewport.X > 0 && v.viewport.Y > 0 && nw > 0 && nh > 0 {
		scale := math.Min(float64(v.viewport.X)/nw, float64(v.viewport.Y)/nh)
		c.Width = math.Round(nw * scale)
		c.Height = math.Round(nh * scale)
	}
	return c
}

// SelectScene loads the scene background and switches to it. On a failed
// load the previous scene stays active.
func (v *View) SelectScene(ctx context.Context, key string) error {
	scene, err := v.cfg.Scene(key)
	if err != nil {
		return err
	}
	img, err := v.loader.LoadImage(ctx, scene.ImagePath)
	if err != nil {
		return fmt.Errorf("select scene %s: %w", key, err)
	}

	v.background = img
	v.st.ApplyScene(key, scene)
	v.tracker.Invalidate()
	v.filterDebounce.Cancel()

	logger.Log.WithFields(logrus.Fields{
		"scene": key,
		"name":  v.cfg.SceneName(key),
	}).Info("Scene selected")
	v.st.AddMessage(fmt.Sprintf(gotext.Get("STATUS_SCENE_SELECTED"), v.cfg.SceneName(key)))

	v.render()
	return nil
}

// SetDirection changes the axis directions of the active scene
func (v *View) SetDirection(x projection.XDirection, y projection.YDirection) error {
	if _, err := projection.ParseXDirection(string(x)); err != nil {
		return err
	}
	if _, err := projection.ParseYDirection(string(y)); err != nil {
		return err
	}
	v.st.XDirection = x
	v.st.YDirection = y
	v.tracker.Invalidate()
	v.render()
	return nil
}

// SetCalibration replaces the grid width and origin offset
func (v *View) SetCalibration(c state.Calibration) error {
	if !(c.GridWidth > 0) {
		return fmt.Errorf("%w: grid width %v", ErrInvalidCalibration, c.GridWidth)
	}
	v.st.Calibration = c
	v.tracker.Invalidate()
	v.render()
	return nil
}

// SetGrid shows or hides the calibration grid
func (v *View) SetGrid(show bool) {
	if v.st.ShowGrid == show {
		return
	}
	v.st.ShowGrid = show
	v.tracker.Invalidate()
	v.render()
}

// SetFilterMode switches the filter. The render is deferred by the filter
// debounce delay.
func (v *View) SetFilterMode(mode filter.Mode) error {
	if _, err := filter.ParseMode(string(mode)); err != nil {
		return err
	}
	v.st.FilterMode = mode
	v.filterDebounce.Request(v.Now())
	return nil
}

// ToggleItem flips a category:itemId selection of the custom filter. The
// render is deferred by the filter debounce delay.
func (v *View) ToggleItem(key string) bool {
	selected := v.st.ToggleItem(key)
	v.filterDebounce.Request(v.Now())
	return selected
}

// Resize records the viewport size. The render is deferred by the resize
// debounce delay.
func (v *View) Resize(width, height int) {
	p := image.Pt(width, height)
	if p == v.viewport {
		return
	}
	v.viewport = p
	v.resizeDebounce.Request(v.Now())
}

// SetBadgeWidth installs the badge measure of the renderer's font so card
// sizes match the glyphs it draws, and lays the cards out again.
func (v *View) SetBadgeWidth(measure func(label string) float64) {
	v.cfg.Card.BadgeWidth = measure
	v.render()
}

// LoadData replaces the harvest data and re-renders the active scene
func (v *View) LoadData(m harvest.Map) {
	v.data = m
	v.superRare = make(map[string]bool)

	for _, key := range v.cfg.SceneOrder {
		points := m[v.cfg.SceneName(key)]
		if rarity.AnySuperRare(points, v.cfg.Rarity.SuperRare) {
			v.superRare[key] = true
			logger.Log.WithField("scene", key).Info("Super rare items found")
		}
		logger.Log.WithFields(logrus.Fields{
			"scene":  key,
			"points": len(points),
			"rare":   rarity.CountRare(points, v.cfg.Rarity.Rare),
		}).Debug("Scene data indexed")
	}
	logger.Log.WithField("scenes", len(m)).Info("Harvest data loaded")

	v.tracker.Invalidate()
	v.render()
}

// SceneSuperRare reports whether any point of the scene carries a
// super-rare reward
func (v *View) SceneSuperRare(key string) bool {
	return v.superRare[key]
}

// Points returns the harvest points of a scene key
func (v *View) Points(key string) []harvest.Point {
	return v.data[v.cfg.SceneName(key)]
}

// Tick runs deferred renders whose delay has passed. It reports whether a
// render happened.
func (v *View) Tick(now time.Time) bool {
	resized := v.resizeDebounce.Due(now)
	filtered := v.filterDebounce.Due(now)
	if !resized && !filtered {
		return false
	}
	if resized {
		v.tracker.Invalidate()
	}
	v.render()
	return true
}

// Flush runs any deferred render immediately
func (v *View) Flush() bool {
	resized := v.resizeDebounce.Flush()
	filtered := v.filterDebounce.Flush()
	if !resized && !filtered {
		return false
	}
	if resized {
		v.tracker.Invalidate()
	}
	v.render()
	return true
}

// Pending reports whether a deferred render is waiting
func (v *View) Pending() bool {
	return v.filterDebounce.Pending() || v.resizeDebounce.Pending()
}

func (v *View) render() {
	key := v.st.SceneKey
	if key == "" || v.background == nil {
		return
	}
	base, err := v.cfg.Scene(key)
	if err != nil {
		logger.Log.WithError(err).Warn("Render skipped")
		return
	}
	canvas := v.Canvas()
	tr, err := projection.NewTransform(v.st.Scene(base), nil, canvas)
	if err != nil {
		logger.Log.WithError(err).WithField("scene", key).Warn("Render skipped")
		return
	}

	w, h := int(canvas.Width), int(canvas.Height)
	if sw, sh := v.surface.Size(); sw != w || sh != h {
		v.surface.Resize(w, h)
		v.tracker.Invalidate()
	}
	v.surface.ShowGrid = v.st.ShowGrid

	name := v.cfg.SceneName(key)
	points, ok := v.data[name]
	if !ok {
		logger.Log.WithField("scene", name).Debug("Scene has no data")
	}

	f := v.st.Filter(v.cfg.Rarity.Rare)
	plan := renderer.BuildPlan(renderer.Input{
		Points:     points,
		Transform:  tr,
		Filter:     f,
		Rarity:     v.cfg.Rarity,
		Tables:     &v.cfg.Tables,
		Horizontal: v.st.ReverseXY,
	})

	locs := plan.Locations()
	redraw := v.tracker.Decide(locs, tr.Project)
	v.surface.Draw(plan, redraw)
	v.tracker.Commit(locs)
	v.st.LastRendered = slices.Clone(v.tracker.Last())

	opts := v.layoutOptions(len(points))
	cards, stats := plan.Layout(vec.Vec2{X: canvas.Width, Y: canvas.Height}, v.cfg.Card, opts)

	v.frame = &renderer.Frame{
		SceneKey:   key,
		SceneName:  name,
		Plan:       plan,
		Cards:      cards,
		Redraw:     redraw,
		Collisions: stats,
		Overlay:    v.surface.Image(),
		Summary:    v.ItemSummary(key, f.Predicate()),
		SuperRare:  maps.Clone(v.superRare),
	}

	logger.Log.WithFields(logrus.Fields{
		"scene":     key,
		"points":    len(points),
		"markers":   len(plan.Markers),
		"cards":     len(cards),
		"full":      redraw.FullRedraw,
		"regions":   len(redraw.Regions),
		"collision": stats.Strategy,
		"nudged":    stats.Nudged,
	}).Debug("Rendered")
	v.st.AddMessage(fmt.Sprintf(gotext.Get("STATUS_MARKED_FIXTURES"), len(plan.Markers)))
}

func (v *View) layoutOptions(points int) layout.Options {
	o := layout.DefaultOptions(v.st.ReverseXY)
	o.ToleranceX = v.cfg.ToleranceX
	o.ToleranceY = v.cfg.ToleranceY
	o.CellSize = v.cfg.CellSize
	o.BruteForceBelow = v.cfg.BruteForceBelow
	if limit := v.cfg.CollisionPointLimit; limit > 0 && points >= limit {
		o.SkipCollisions = true
	}
	return o
}

// ItemSummary totals the quantities of every entry of the scene that
// passes pred, ordered by category and numeric item id
func (v *View) ItemSummary(sceneKey string, pred filter.Predicate) []harvest.Entry {
	totals := make(map[string]harvest.Entry)
	for _, p := range v.Points(sceneKey) {
		for cat, items := range p.Reward {
			for id, q := range items {
				if pred != nil && !pred(cat, id) {
					continue
				}
				k := harvest.Key(cat, id)
				e := totals[k]
				e.Category, e.ItemID = cat, id
				e.Quantity += q
				totals[k] = e
			}
		}
	}
	out := slices.Collect(maps.Values(totals))
	slices.SortFunc(out, harvest.CompareEntries)
	return out
}
