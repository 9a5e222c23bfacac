package devtools

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/geom/vec"

	"harvestmap/pkg/engine/dirty"
	"harvestmap/pkg/engine/layout"
	"harvestmap/pkg/game/harvest"
	"harvestmap/pkg/game/renderer"
)

func testFrame() *renderer.Frame {
	s := renderer.NewSurface(100, 80)
	plan := renderer.Plan{
		Markers: []renderer.Marker{{
			Point:  0,
			World:  vec.Vec2{X: 1, Y: 2},
			Screen: vec.Vec2{X: 20.5, Y: 20.5},
			Color:  color.NRGBA{R: 0xda, G: 0x6d, B: 0x42, A: 0xff},
			Known:  true,
		}},
		Cards: []renderer.CardDescriptor{{
			Entries: []renderer.CardEntry{{
				Entry: harvest.Entry{Category: "mysekai_material", ItemID: "5", Quantity: 2},
				Badge: "2",
			}},
		}},
	}
	s.Draw(plan, dirty.Result{FullRedraw: true})
	return &renderer.Frame{
		SceneKey: "scene3",
		Plan:     plan,
		Cards:    []layout.Card{{ID: 0, Offset: vec.Vec2{X: 50, Y: 40}, Width: 32, Height: 32}},
		Redraw:   dirty.Result{FullRedraw: true},
		Overlay:  s.Image(),
	}
}

func TestCompose(t *testing.T) {
	bgImg := image.NewNRGBA(image.Rect(0, 0, 200, 160))
	draw.Draw(bgImg, bgImg.Bounds(), image.NewUniform(color.NRGBA{B: 255, A: 255}), image.Point{}, draw.Src)

	img, err := Compose(testFrame(), bgImg, nil, layout.DefaultMetrics())
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("bounds = %v, want 100x80", b)
	}
	if got := img.NRGBAAt(90, 5); got.B != 255 || got.A != 255 {
		t.Errorf("background pixel = %v, want blue", got)
	}
	if got := img.NRGBAAt(20, 20); got.R != 0xda {
		t.Errorf("marker pixel = %v, want wood", got)
	}
	if got := img.NRGBAAt(51, 41); got.R < 200 || got.G < 200 {
		t.Errorf("card pixel = %v, want white card", got)
	}
}

func TestCompose_NoFrame(t *testing.T) {
	if _, err := Compose(nil, nil, nil, layout.DefaultMetrics()); !errors.Is(err, ErrNoFrame) {
		t.Errorf("err = %v, want ErrNoFrame", err)
	}
}

func TestSaveSnapshot(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveSnapshot(dir, testFrame(), nil, nil, layout.DefaultMetrics())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(path), "snapshot-scene3-") {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("decoded bounds = %v", b)
	}
}

func TestWriteFrameDump(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrameDump(&buf, testFrame()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"scene_key: scene3",
		"full_redraw: true",
		"--- Markers (1) ---",
		"mysekai_material:5 x2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}
