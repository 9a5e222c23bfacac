package renderer

import (
	"image"

	"harvestmap/pkg/engine/dirty"
	"harvestmap/pkg/engine/layout"
	"harvestmap/pkg/game/harvest"
)

// Frame is the result of one render pass
type Frame struct {
	SceneKey   string
	SceneName  string
	Plan       Plan
	Cards      []layout.Card // laid out, indices match Plan.Cards
	Redraw     dirty.Result
	Collisions layout.Stats
	Overlay    *image.NRGBA
	Summary    []harvest.Entry // aggregated visible items of the scene
	SuperRare  map[string]bool // scene key -> any super-rare point
}

// Renderer defines the interface for frame presentation backends
// Implementations include the ebiten window and the terminal summary.
type Renderer interface {
	// Init prepares the backend (fonts, colours, window)
	Init()

	// RenderFrame presents a finished frame
	RenderFrame(f *Frame)

	// ShowMessage displays a status message to the user
	ShowMessage(msg string)

	// GetViewportSize returns the drawable size in the backend's units
	GetViewportSize() (width, height int)
}

// HelpPanel is implemented by backends that draw the key help as a panel
// instead of printing it line by line
type HelpPanel interface {
	// ShowHelp shows lines, or hides the panel when lines is empty
	ShowHelp(lines []string)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// RenderFrame presents a frame on the current renderer
func RenderFrame(f *Frame) {
	if Current != nil {
		Current.RenderFrame(f)
	}
}

// ShowMessage sends a status message to the current renderer
func ShowMessage(msg string) {
	if Current != nil {
		Current.ShowMessage(msg)
	}
}

// ShowHelp shows the key help on the current renderer. Backends without a
// help panel get one message per line.
func ShowHelp(lines []string) {
	if Current == nil {
		return
	}
	if p, ok := Current.(HelpPanel); ok {
		p.ShowHelp(lines)
		return
	}
	for _, l := range lines {
		Current.ShowMessage(l)
	}
}
