package rarity

import (
	"testing"

	"harvestmap/pkg/game/harvest"
)

var testTables = Tables{
	Rare:      Table{"mysekai_material": {5, 12, 20, 24}, "mysekai_item": {7}},
	SuperRare: Table{"mysekai_material": {5, 12}},
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		reward harvest.Reward
		want   bool
	}{
		{"empty", harvest.Reward{}, false},
		{"common only", harvest.Reward{"mysekai_material": {"1": 3}}, false},
		{"rare material", harvest.Reward{"mysekai_material": {"1": 3, "20": 1}}, true},
		{"rare in other category", harvest.Reward{"mysekai_item": {"7": 1}}, true},
		{"id listed under another category", harvest.Reward{"mysekai_fixture": {"7": 1}}, false},
		{"non numeric id", harvest.Reward{"mysekai_material": {"abc": 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.reward, testTables.Rare); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.reward, got, tt.want)
			}
		})
	}
}

func TestTintFor(t *testing.T) {
	tests := []struct {
		name   string
		reward harvest.Reward
		want   Tint
	}{
		{"common", harvest.Reward{"mysekai_material": {"1": 1}}, TintNone},
		{"rare", harvest.Reward{"mysekai_material": {"20": 1}}, TintRare},
		{"super rare wins", harvest.Reward{"mysekai_material": {"20": 1, "5": 1}}, TintSuperRare},
		{"music record", harvest.Reward{"mysekai_music_record": {"352": 1}}, TintRare},
		{"music record and super rare", harvest.Reward{"mysekai_music_record": {"352": 1}, "mysekai_material": {"12": 1}}, TintSuperRare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TintFor(tt.reward, testTables); got != tt.want {
				t.Errorf("TintFor(%v) = %v, want %v", tt.reward, got, tt.want)
			}
		})
	}
}

func TestTint_Color(t *testing.T) {
	if _, ok := TintNone.Color(); ok {
		t.Error("TintNone.Color ok = true, want false")
	}
	if c, _ := TintSuperRare.Color(); c != SuperRareColor {
		t.Errorf("TintSuperRare.Color = %v, want %v", c, SuperRareColor)
	}
}

func TestAnySuperRare(t *testing.T) {
	points := []harvest.Point{
		{Reward: harvest.Reward{"mysekai_material": {"1": 1}}},
		{Reward: harvest.Reward{"mysekai_material": {"20": 1}}},
	}
	if AnySuperRare(points, testTables.SuperRare) {
		t.Error("AnySuperRare = true for rare-only scene")
	}
	points = append(points, harvest.Point{Reward: harvest.Reward{"mysekai_material": {"12": 2}}})
	if !AnySuperRare(points, testTables.SuperRare) {
		t.Error("AnySuperRare = false with a super-rare point")
	}
	if got := CountRare(points, testTables.Rare); got != 2 {
		t.Errorf("CountRare = %d, want 2", got)
	}
}
