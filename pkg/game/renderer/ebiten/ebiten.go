package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leonelquinteros/gotext"

	"harvestmap/pkg/game/gameplay"
)

// New creates the viewer for a session
func New(s *gameplay.Session) *EbitenRenderer {
	return &EbitenRenderer{
		windowWidth:  defaultWindowWidth,
		windowHeight: defaultWindowHeight,
		session:      s,
		iconImages:   make(map[string]*ebiten.Image),
	}
}

// Init loads fonts and configures the window
func (e *EbitenRenderer) Init() {
	e.loadFonts()
	face := e.getBadgeFontFace()
	e.session.View.SetBadgeWidth(func(label string) float64 {
		return e.getTextWidthWithFace(label, face)
	})
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(gotext.Get("WINDOW_TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
}

// Run starts the Ebiten game loop and blocks until the window closes
func (e *EbitenRenderer) Run() error {
	if f := e.session.View.Frame(); f != nil {
		e.RenderFrame(f)
	}
	return ebiten.RunGame(e)
}

// ShowMessage adds a status message that fades out after a few seconds
func (e *EbitenRenderer) ShowMessage(msg string) {
	e.messagesMutex.Lock()
	defer e.messagesMutex.Unlock()

	const maxMessages = 3
	e.trackedMessages = append(e.trackedMessages, messageEntry{
		Text:      msg,
		Timestamp: time.Now().UnixMilli(),
	})
	if len(e.trackedMessages) > maxMessages {
		e.trackedMessages = e.trackedMessages[len(e.trackedMessages)-maxMessages:]
	}
}

// ShowHelp shows the key help panel, or hides it when lines is empty
func (e *EbitenRenderer) ShowHelp(lines []string) {
	e.messagesMutex.Lock()
	defer e.messagesMutex.Unlock()
	e.helpLines = lines
}

// GetViewportSize returns the map area in pixels
func (e *EbitenRenderer) GetViewportSize() (width, height int) {
	e.layoutMutex.Lock()
	defer e.layoutMutex.Unlock()
	if e.layoutWidth == 0 {
		return e.windowWidth, e.windowHeight - statusBarHeight
	}
	return e.layoutWidth, e.layoutHeight - statusBarHeight
}

// currentMessages returns the messages that have not faded out yet
func (e *EbitenRenderer) currentMessages(now int64) []string {
	e.messagesMutex.RLock()
	defer e.messagesMutex.RUnlock()

	var out []string
	for _, m := range e.trackedMessages {
		if now-m.Timestamp < messageLifetime {
			out = append(out, m.Text)
		}
	}
	return out
}
