package ebiten

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leonelquinteros/gotext"

	"harvestmap/pkg/game/renderer"
)

// RenderFrame uploads a finished frame for Draw. It must be called from
// Update (or before the game loop starts), never from Draw.
func (e *EbitenRenderer) RenderFrame(f *renderer.Frame) {
	if f == nil || f.Overlay == nil {
		return
	}
	v := e.session.View

	e.snapshotMutex.Lock()
	defer e.snapshotMutex.Unlock()

	if e.snapshot.overlay != nil {
		e.snapshot.overlay.Deallocate()
	}
	e.snapshot.overlay = ebiten.NewImageFromImage(f.Overlay)

	if bg := v.Background(); bg != nil && bg != e.snapshot.backgroundSrc {
		if e.snapshot.background != nil {
			e.snapshot.background.Deallocate()
		}
		e.snapshot.background = ebiten.NewImageFromImage(bg)
		e.snapshot.backgroundSrc = bg
	}

	e.snapshot.frame = f
	e.snapshot.status = e.statusLine(f)
	e.snapshot.superRare = e.superRareScenes(f)
	e.snapshot.valid = true
}

// statusLine describes the active scene, filter and axis directions
func (e *EbitenRenderer) statusLine(f *renderer.Frame) string {
	st := e.session.View.State()
	grid := gotext.Get("GRID_OFF")
	if st.ShowGrid {
		grid = gotext.Get("GRID_ON")
	}
	return fmt.Sprintf(gotext.Get("STATUS_LINE"),
		f.SceneName, st.FilterMode, st.XDirection, st.YDirection, grid, len(f.Plan.Markers))
}

// superRareScenes lists the names of scenes holding super-rare rewards, in
// menu order
func (e *EbitenRenderer) superRareScenes(f *renderer.Frame) []string {
	cfg := e.session.View.Config()
	var names []string
	for _, key := range cfg.SceneOrder {
		if f.SuperRare[key] {
			names = append(names, cfg.SceneName(key))
		}
	}
	return names
}

// superRareLine formats the super-rare scene list for the status bar
func superRareLine(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return fmt.Sprintf(gotext.Get("SUMMARY_SUPER_RARE"), strings.Join(names, ", "))
}
