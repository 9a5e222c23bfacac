// Package ebiten provides the Ebiten-based interactive map viewer.
package ebiten

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"harvestmap/pkg/game/gameplay"
	"harvestmap/pkg/game/renderer"
)

// messageEntry represents a message with timestamp for fade-out
type messageEntry struct {
	Text      string
	Timestamp int64 // Unix timestamp in milliseconds when message was added
}

// renderSnapshot holds a consistent snapshot of the view for Draw.
// Update replaces it as a whole, Draw only reads it.
type renderSnapshot struct {
	valid bool
	frame *renderer.Frame

	overlay       *ebiten.Image
	background    *ebiten.Image
	backgroundSrc image.Image // decoded image background was created from

	status    string   // scene, filter and direction line
	superRare []string // scene keys with super-rare rewards
}

// EbitenRenderer is the Ebiten-based map viewer
type EbitenRenderer struct {
	// Initial window dimensions
	windowWidth  int
	windowHeight int

	session *gameplay.Session

	// Font source for text rendering
	sansFontSource *text.GoTextFaceSource

	// Cached font faces
	cachedUIFontSize float64
	cachedSansFace   *text.GoTextFace
	cachedBadgeFace  *text.GoTextFace

	// Cached render snapshot for consistent drawing
	snapshot      renderSnapshot
	snapshotMutex sync.RWMutex

	// Outside size reported by Layout, applied to the view in Update
	layoutWidth  int
	layoutHeight int
	layoutMutex  sync.Mutex

	// Uploaded card icons, only touched from Draw
	iconImages map[string]*ebiten.Image

	// Messages to display with timestamps for fade-out
	trackedMessages []messageEntry
	helpLines       []string // key help panel, empty when hidden
	messagesMutex   sync.RWMutex

	// Flag to track if we've logged window opening
	windowOpenedLogged bool
}
