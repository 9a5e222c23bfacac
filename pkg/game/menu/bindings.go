// Package menu lists the viewer key bindings and applies configured
// rebindings.
package menu

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	engineinput "harvestmap/pkg/engine/input"
)

var (
	// ErrUnknownAction is returned for a binding whose action name is not known
	ErrUnknownAction = errors.New("menu: unknown action")

	// ErrFixedBinding is returned when a non-rebindable action is rebound
	ErrFixedBinding = errors.New("menu: binding cannot be changed")
)

// BindingItem is one line of the key help
type BindingItem struct {
	Action        engineinput.Action
	NonRebindable bool
}

// Label returns the display label for this binding
func (b BindingItem) Label() string {
	name := engineinput.ActionName(b.Action)
	codes := engineinput.GetBindingsByAction()[b.Action]
	codeText := strings.Join(codes, ", ")
	if codeText == "" {
		codeText = "(unbound)"
	}

	if b.NonRebindable {
		return fmt.Sprintf("%s: %s (fixed)", name, codeText)
	}
	return fmt.Sprintf("%s: %s", name, codeText)
}

// Items returns every bindable action in help order
func Items() []BindingItem {
	actions := []engineinput.Action{
		engineinput.ActionScene1,
		engineinput.ActionScene2,
		engineinput.ActionScene3,
		engineinput.ActionScene4,
		engineinput.ActionFilterAll,
		engineinput.ActionFilterRare,
		engineinput.ActionFilterCustom,
		engineinput.ActionXPlus,
		engineinput.ActionXMinus,
		engineinput.ActionYPlus,
		engineinput.ActionYMinus,
		engineinput.ActionToggleGrid,
		engineinput.ActionSnapshot,
		engineinput.ActionDump,
		engineinput.ActionSummary,
		engineinput.ActionHelp,
		engineinput.ActionQuit,
	}

	items := make([]BindingItem, len(actions))
	for i, a := range actions {
		items[i] = BindingItem{Action: a, NonRebindable: isNonRebindable(a)}
	}
	return items
}

// HelpLines returns one label per action
func HelpLines() []string {
	items := Items()
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = it.Label()
	}
	return lines
}

// ActionByName finds an action by its display name. Case, spaces,
// dashes and underscores are ignored, so "toggle_grid" finds "Toggle Grid".
func ActionByName(name string) (engineinput.Action, bool) {
	want := normalize(name)
	for _, it := range Items() {
		if normalize(engineinput.ActionName(it.Action)) == want {
			return it.Action, true
		}
	}
	return engineinput.ActionNone, false
}

// ApplyBindings rebinds each named action to a single key code. Actions are
// applied in name order so a code claimed twice ends on the last name.
func ApplyBindings(bindings map[string]string) error {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		action, ok := ActionByName(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAction, name)
		}
		if isNonRebindable(action) {
			return fmt.Errorf("%w: %s", ErrFixedBinding, engineinput.ActionName(action))
		}
		engineinput.SetSingleBinding(action, strings.ToLower(strings.TrimSpace(bindings[name])))
	}
	return nil
}

func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// isNonRebindable checks if an action cannot be rebound.
func isNonRebindable(action engineinput.Action) bool {
	return action == engineinput.ActionHelp
}
