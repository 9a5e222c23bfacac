// Package gameplay turns viewer intents into view operations.
package gameplay

import (
	"context"
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"

	engineinput "harvestmap/pkg/engine/input"
	"harvestmap/pkg/engine/projection"
	"harvestmap/pkg/game/devtools"
	"harvestmap/pkg/game/filter"
	"harvestmap/pkg/game/menu"
	"harvestmap/pkg/game/renderer"
	"harvestmap/pkg/game/view"
	"harvestmap/pkg/logger"
)

// Session is the viewer a frontend drives
type Session struct {
	View        *view.View
	Icons       renderer.IconSource
	SnapshotDir string

	// ShowHelp is true while the key help is shown
	ShowHelp bool

	// Quit is set once the user asked to leave
	Quit bool
}

// ProcessCommand resolves a raw event and processes it. Terminal input of
// the form category:itemId toggles that item of the custom filter.
func ProcessCommand(ctx context.Context, s *Session, raw engineinput.RawInput) error {
	intent := engineinput.Resolve(raw)
	if intent.Action == engineinput.ActionNone && strings.Contains(raw.Code, ":") {
		key := strings.TrimSpace(raw.Code)
		if s.View.ToggleItem(key) {
			showMessage(s, fmt.Sprintf(gotext.Get("ITEM_SELECTED"), key))
		} else {
			showMessage(s, fmt.Sprintf(gotext.Get("ITEM_DESELECTED"), key))
		}
		return nil
	}
	return ProcessIntent(ctx, s, intent)
}

// ProcessIntent handles a high-level input intent from the tiered input system.
func ProcessIntent(ctx context.Context, s *Session, intent engineinput.Intent) error {
	v := s.View
	st := v.State()

	if i, ok := engineinput.SceneIndex(intent.Action); ok {
		order := v.Config().SceneOrder
		if i >= len(order) {
			return nil
		}
		if err := v.SelectScene(ctx, order[i]); err != nil {
			showMessage(s, fmt.Sprintf(gotext.Get("SCENE_LOAD_FAILED"), order[i]))
			return err
		}
		return nil
	}

	switch intent.Action {
	case engineinput.ActionNone:
		showMessage(s, gotext.Get("UNKNOWN_COMMAND"))
		return nil

	case engineinput.ActionFilterAll:
		return v.SetFilterMode(filter.ModeAll)
	case engineinput.ActionFilterRare:
		return v.SetFilterMode(filter.ModeRare)
	case engineinput.ActionFilterCustom:
		return v.SetFilterMode(filter.ModeCustom)

	case engineinput.ActionXPlus:
		return v.SetDirection(projection.XPlus, st.YDirection)
	case engineinput.ActionXMinus:
		return v.SetDirection(projection.XMinus, st.YDirection)
	case engineinput.ActionYPlus:
		return v.SetDirection(st.XDirection, projection.YPlus)
	case engineinput.ActionYMinus:
		return v.SetDirection(st.XDirection, projection.YMinus)

	case engineinput.ActionToggleGrid:
		v.SetGrid(!st.ShowGrid)
		return nil

	case engineinput.ActionSnapshot:
		v.Flush()
		path, err := devtools.SaveSnapshot(s.SnapshotDir, v.Frame(), v.Background(), s.Icons, v.Config().Card)
		if err != nil {
			showMessage(s, fmt.Sprintf(gotext.Get("SNAPSHOT_FAILED"), err))
			return err
		}
		showMessage(s, fmt.Sprintf(gotext.Get("SNAPSHOT_SAVED"), path))
		return nil

	case engineinput.ActionDump:
		v.Flush()
		path, err := devtools.DumpFrameToFile(s.SnapshotDir, v.Frame())
		if err != nil {
			showMessage(s, fmt.Sprintf(gotext.Get("DUMP_FAILED"), err))
			return err
		}
		showMessage(s, fmt.Sprintf(gotext.Get("DUMP_SAVED"), path))
		return nil

	case engineinput.ActionSummary:
		v.Flush()
		if f := v.Frame(); f != nil {
			renderer.RenderFrame(f)
		}
		return nil

	case engineinput.ActionHelp:
		s.ShowHelp = !s.ShowHelp
		var lines []string
		if s.ShowHelp {
			lines = menu.HelpLines()
		}
		renderer.ShowHelp(lines)
		return nil

	case engineinput.ActionQuit:
		s.Quit = true
		return nil
	}

	return nil
}

func showMessage(s *Session, msg string) {
	logger.Log.Info(msg)
	s.View.State().AddMessage(msg)
	renderer.ShowMessage(msg)
}
