// Package filter decides which reward entries are shown on the map.
package filter

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"harvestmap/pkg/game/harvest"
	"harvestmap/pkg/game/rarity"
)

// Mode selects the active filter
type Mode string

// Filter modes
const (
	ModeAll    Mode = "all"
	ModeRare   Mode = "rare"
	ModeCustom Mode = "custom"
)

// ErrUnknownMode is returned by ParseMode for anything but all/rare/custom
var ErrUnknownMode = errors.New("filter: unknown mode")

// ParseMode parses a filter mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAll, ModeRare, ModeCustom:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Predicate reports whether a reward entry is shown
type Predicate func(category, itemID string) bool

// Filter combines the mode with the data it needs
type Filter struct {
	Mode     Mode
	Rare     rarity.Table
	Selected *mapset.Set[string] // "category:itemId" keys, custom mode only
}

// Allows reports whether category/itemID passes the filter.
// In rare mode the entry must be in the rare table; in custom mode it must
// be selected. Unknown modes show everything.
func (f Filter) Allows(category, itemID string) bool {
	switch f.Mode {
	case ModeRare:
		return f.Rare.Contains(category, itemID)
	case ModeCustom:
		return f.Selected != nil && f.Selected.Has(harvest.Key(category, itemID))
	}
	return true
}

// Predicate returns Allows as a function value
func (f Filter) Predicate() Predicate {
	return f.Allows
}

// Visible returns the entries of reward that pass the filter, in display order
func (f Filter) Visible(reward harvest.Reward) []harvest.Entry {
	var out []harvest.Entry
	for _, e := range reward.Entries() {
		if f.Allows(e.Category, e.ItemID) {
			out = append(out, e)
		}
	}
	return out
}

// Gate reports whether a point with this reward is drawn at all. Outside
// ModeAll a point needs at least one visible entry.
func (f Filter) Gate(reward harvest.Reward) bool {
	if f.Mode == ModeAll {
		return true
	}
	for cat, items := range reward {
		for id := range items {
			if f.Allows(cat, id) {
				return true
			}
		}
	}
	return false
}
