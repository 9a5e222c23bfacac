// Package rarity classifies rewards against the rare and super-rare tables.
package rarity

import (
	"image/color"
	"slices"
	"strconv"

	"harvestmap/pkg/game/harvest"
)

// Table lists the rare item ids of each reward category
type Table map[string][]int

// Contains reports whether the table lists category/itemID. Item ids that
// are not integers never match.
func (t Table) Contains(category, itemID string) bool {
	ids, ok := t[category]
	if !ok {
		return false
	}
	id, err := strconv.Atoi(itemID)
	if err != nil {
		return false
	}
	return slices.Contains(ids, id)
}

// Classify reports whether any entry of reward is listed in table
func Classify(reward harvest.Reward, table Table) bool {
	for cat, items := range reward {
		if _, ok := table[cat]; !ok {
			continue
		}
		for id := range items {
			if table.Contains(cat, id) {
				return true
			}
		}
	}
	return false
}

// Tint is the background tint of a reward card
type Tint int

// Card tints
const (
	TintNone Tint = iota
	TintRare
	TintSuperRare
)

func (t Tint) String() string {
	switch t {
	case TintRare:
		return "rare"
	case TintSuperRare:
		return "super-rare"
	}
	return "none"
}

// Card background colours
var (
	RareColor      = color.NRGBA{R: 88, G: 83, B: 135, A: 242}
	SuperRareColor = color.NRGBA{R: 197, G: 100, B: 119, A: 242}
)

// Color returns the card background for the tint; ok is false for TintNone
func (t Tint) Color() (c color.NRGBA, ok bool) {
	switch t {
	case TintRare:
		return RareColor, true
	case TintSuperRare:
		return SuperRareColor, true
	}
	return color.NRGBA{}, false
}

// Tables bundles both tiers
type Tables struct {
	Rare      Table
	SuperRare Table
}

// TintFor picks the card tint for a full (unfiltered) reward. Only rewards
// that are rare or carry a music record are tinted; among those super-rare
// wins.
func TintFor(reward harvest.Reward, t Tables) Tint {
	if !Classify(reward, t.Rare) && !reward.Has(harvest.MusicRecordCategory) {
		return TintNone
	}
	if Classify(reward, t.SuperRare) {
		return TintSuperRare
	}
	return TintRare
}

// AnySuperRare reports whether any point of a scene holds a super-rare reward
func AnySuperRare(points []harvest.Point, table Table) bool {
	for _, p := range points {
		if Classify(p.Reward, table) {
			return true
		}
	}
	return false
}

// CountRare returns the number of points whose reward classifies against table
func CountRare(points []harvest.Point, table Table) int {
	n := 0
	for _, p := range points {
		if Classify(p.Reward, table) {
			n++
		}
	}
	return n
}
