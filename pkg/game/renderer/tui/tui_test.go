package tui

import (
	"bytes"
	"strings"
	"testing"

	"harvestmap/pkg/game/harvest"
	"harvestmap/pkg/game/rarity"
	"harvestmap/pkg/game/renderer"
)

func TestRenderFrame(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, rarity.Tables{
		Rare:      rarity.Table{"mysekai_material": {5}},
		SuperRare: rarity.Table{"mysekai_material": {5}},
	})
	r.Init()

	r.RenderFrame(&renderer.Frame{
		SceneKey:  "scene3",
		SceneName: "願いの砂浜",
		Summary: []harvest.Entry{
			{Category: "mysekai_item", ItemID: "7", Quantity: 1},
			{Category: "mysekai_material", ItemID: "1", Quantity: 4},
			{Category: "mysekai_material", ItemID: "5", Quantity: 2},
		},
		SuperRare: map[string]bool{"scene3": true, "scene1": false},
	})

	out := buf.String()
	for _, want := range []string{"item 7", "material 1", "material 5", "x4", "scene3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "scene1") {
		t.Errorf("scene1 listed as super rare:\n%s", out)
	}
	if i, j := strings.Index(out, "material 1"), strings.Index(out, "material 5"); i > j {
		t.Error("summary not in item order")
	}
}

func TestRenderFrame_Empty(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, rarity.Tables{})
	r.Init()
	r.RenderFrame(nil)
	if buf.Len() != 0 {
		t.Errorf("nil frame printed %q", buf.String())
	}

	r.RenderFrame(&renderer.Frame{SceneKey: "scene2"})
	if !strings.Contains(buf.String(), "SUMMARY_EMPTY") && buf.Len() == 0 {
		t.Error("empty summary printed nothing")
	}
}

func TestGetViewportSize(t *testing.T) {
	r := New(&bytes.Buffer{}, rarity.Tables{})
	if w, h := r.GetViewportSize(); w != 80 || h != 24 {
		t.Errorf("GetViewportSize = %dx%d, want 80x24", w, h)
	}
}
