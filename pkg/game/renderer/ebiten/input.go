package ebiten

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "harvestmap/pkg/engine/input"
	"harvestmap/pkg/game/gameplay"
	"harvestmap/pkg/logger"
)

// keyCodes maps Ebiten keys to the raw codes the bindings understand
var keyCodes = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyDigit1, "1"},
	{ebiten.KeyDigit2, "2"},
	{ebiten.KeyDigit3, "3"},
	{ebiten.KeyDigit4, "4"},
	{ebiten.KeyNumpad1, "1"},
	{ebiten.KeyNumpad2, "2"},
	{ebiten.KeyNumpad3, "3"},
	{ebiten.KeyNumpad4, "4"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyR, "r"},
	{ebiten.KeyC, "c"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyG, "g"},
	{ebiten.KeyP, "p"},
	{ebiten.KeyF8, "f8"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyF1, "f1"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyEscape, "escape"},
}

// Update handles input and drives the view (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		logger.Log.Infof("Main window opened successfully (%dx%d)", w, h)
	}

	v := e.session.View

	w, h := e.GetViewportSize()
	v.Resize(w, h)

	for _, k := range keyCodes {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		raw := engineinput.RawInput{Device: engineinput.DeviceKeyboard, Code: k.code}
		if err := gameplay.ProcessCommand(context.Background(), e.session, raw); err != nil {
			logger.Log.WithError(err).WithField("code", k.code).Warn("Command failed")
		}
		break
	}
	if e.session.Quit {
		return ebiten.Termination
	}

	v.Tick(time.Now())

	e.snapshotMutex.RLock()
	uploaded := e.snapshot.frame
	e.snapshotMutex.RUnlock()
	if f := v.Frame(); f != nil && f != uploaded {
		e.RenderFrame(f)
	}

	return nil
}

// Layout records the outside size and uses it as the logical screen size
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	e.layoutMutex.Lock()
	defer e.layoutMutex.Unlock()
	e.layoutWidth = outsideWidth
	e.layoutHeight = outsideHeight
	return outsideWidth, outsideHeight
}
