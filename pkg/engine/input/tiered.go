package input

import (
	"sort"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high‑level intent of the viewer.
type Action int

const (
	ActionNone Action = iota

	// Scene selection
	ActionScene1
	ActionScene2
	ActionScene3
	ActionScene4

	// Filter modes
	ActionFilterAll
	ActionFilterRare
	ActionFilterCustom

	// Axis directions
	ActionXPlus
	ActionXMinus
	ActionYPlus
	ActionYMinus

	// Meta / UI
	ActionToggleGrid
	ActionSnapshot
	ActionDump
	ActionSummary
	ActionHelp
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the user wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "1", "arrow_up", "rare").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after deduplication.
// Ebiten's just-pressed edge and line-based terminal input already
// deliver one event per press, so this only normalises the code.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   strings.ToLower(strings.TrimSpace(raw.Code)),
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	"1":      ActionScene1,
	"scene1": ActionScene1,
	"2":      ActionScene2,
	"scene2": ActionScene2,
	"3":      ActionScene3,
	"scene3": ActionScene3,
	"4":      ActionScene4,
	"scene4": ActionScene4,

	"a":      ActionFilterAll,
	"all":    ActionFilterAll,
	"r":      ActionFilterRare,
	"rare":   ActionFilterRare,
	"c":      ActionFilterCustom,
	"custom": ActionFilterCustom,

	"arrow_right": ActionXPlus,
	"x+":          ActionXPlus,
	"arrow_left":  ActionXMinus,
	"x-":          ActionXMinus,
	"arrow_down":  ActionYPlus,
	"y+":          ActionYPlus,
	"arrow_up":    ActionYMinus,
	"y-":          ActionYMinus,

	"g":    ActionToggleGrid,
	"grid": ActionToggleGrid,

	"p":        ActionSnapshot,
	"snapshot": ActionSnapshot,
	"f8":       ActionDump,
	"dump":     ActionDump,
	"s":        ActionSummary,
	"summary":  ActionSummary,
	"f1":       ActionHelp,
	"help":     ActionHelp,
	"?":        ActionHelp,

	"q":      ActionQuit,
	"quit":   ActionQuit,
	"escape": ActionQuit,
}

// reserved codes cannot be rebound
var reserved = map[string]bool{
	"arrow_up":    true,
	"arrow_down":  true,
	"arrow_left":  true,
	"arrow_right": true,
	"escape":      true,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// Resolve runs a raw event through every layer
func Resolve(raw RawInput) Intent {
	return MapToIntent(NewDebouncedInput(raw))
}

// SceneIndex returns the 0-based scene slot of a scene action
func SceneIndex(a Action) (int, bool) {
	if a >= ActionScene1 && a <= ActionScene4 {
		return int(a - ActionScene1), true
	}
	return 0, false
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionScene1:
		return "Scene 1"
	case ActionScene2:
		return "Scene 2"
	case ActionScene3:
		return "Scene 3"
	case ActionScene4:
		return "Scene 4"
	case ActionFilterAll:
		return "Show All"
	case ActionFilterRare:
		return "Show Rare"
	case ActionFilterCustom:
		return "Show Selected"
	case ActionXPlus:
		return "X+"
	case ActionXMinus:
		return "X-"
	case ActionYPlus:
		return "Y+"
	case ActionYMinus:
		return "Y-"
	case ActionToggleGrid:
		return "Toggle Grid"
	case ActionSnapshot:
		return "Snapshot"
	case ActionDump:
		return "Dump Frame"
	case ActionSummary:
		return "Summary"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Ensure stable ordering of codes within each action so help text doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all non-reserved bindings for the given action
// with a single code.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}
