package state

import (
	"github.com/zyedidia/generic/mapset"
	"seehuhn.de/go/geom/vec"

	"harvestmap/pkg/engine/projection"
	"harvestmap/pkg/game/filter"
	"harvestmap/pkg/game/rarity"
)

// Calibration is the user-editable part of the projection
type Calibration struct {
	GridWidth float64  // world units per grid cell, in natural image pixels
	Offset    vec.Vec2 // screen offset of the world origin from the canvas centre
}

// RenderState is the mutable view state for one map view
type RenderState struct {
	SceneKey string

	XDirection projection.XDirection
	YDirection projection.YDirection
	ReverseXY  bool

	Calibration Calibration

	FilterMode filter.Mode
	Selected   *mapset.Set[string] // category:itemId keys for the custom filter

	ShowGrid bool

	// LastRendered holds the world locations drawn by the previous render
	LastRendered []vec.Vec2

	Messages []string
}

// New creates a render state with the all-items filter and no scene
func New() *RenderState {
	selected := mapset.New[string]()
	return &RenderState{
		FilterMode: filter.ModeAll,
		Selected:   &selected,
		Messages:   make([]string, 0),
	}
}

// ApplyScene switches to the scene and rewrites the direction flags and
// calibration from its configuration in one step
func (s *RenderState) ApplyScene(key string, scene projection.SceneConfig) {
	s.SceneKey = key
	s.XDirection = scene.XDirection
	s.YDirection = scene.YDirection
	s.ReverseXY = scene.ReverseXY
	s.Calibration = Calibration{
		GridWidth: scene.PhysicalGridWidth,
		Offset:    scene.Offset,
	}
	s.LastRendered = nil
}

// Scene returns base with the state's directions and calibration applied
func (s *RenderState) Scene(base projection.SceneConfig) projection.SceneConfig {
	base = base.WithDirections(s.XDirection, s.YDirection)
	base.ReverseXY = s.ReverseXY
	if s.Calibration.GridWidth > 0 {
		base.PhysicalGridWidth = s.Calibration.GridWidth
	}
	base.Offset = s.Calibration.Offset
	return base
}

// ToggleItem flips the selection of a category:itemId key and reports
// whether it is selected afterwards
func (s *RenderState) ToggleItem(key string) bool {
	if s.Selected.Has(key) {
		s.Selected.Remove(key)
		return false
	}
	s.Selected.Put(key)
	return true
}

// Filter builds the item filter for the current mode and selection
func (s *RenderState) Filter(rare rarity.Table) filter.Filter {
	return filter.Filter{
		Mode:     s.FilterMode,
		Rare:     rare,
		Selected: s.Selected,
	}
}

// AddMessage adds a status line to the message log
func (s *RenderState) AddMessage(msg string) {
	const maxMessages = 5
	s.Messages = append(s.Messages, msg)

	// Keep only the last maxMessages
	if len(s.Messages) > maxMessages {
		s.Messages = s.Messages[len(s.Messages)-maxMessages:]
	}
}
