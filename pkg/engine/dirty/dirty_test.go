package dirty

import (
	"image"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// scale10 projects world units to 10px cells around (100, 100)
func scale10(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: 100 + 10*p.X, Y: 100 + 10*p.Y}
}

func points(xs ...float64) []vec.Vec2 {
	out := make([]vec.Vec2, 0, len(xs)/2)
	for i := 0; i+1 < len(xs); i += 2 {
		out = append(out, vec.Vec2{X: xs[i], Y: xs[i+1]})
	}
	return out
}

func TestCompute_IdenticalLists(t *testing.T) {
	a := points(1, 1, 2, 2, 3, 3)
	b := points(1, 1, 2, 2, 3, 3)
	got := Compute(a, b, scale10, DefaultRadius)
	if got.FullRedraw {
		t.Error("FullRedraw = true, want false")
	}
	if len(got.Regions) != 0 {
		t.Errorf("len(Regions) = %d, want 0", len(got.Regions))
	}
}

func TestCompute_OneMoved(t *testing.T) {
	a := points(1, 1, 2, 2, 3, 3)
	b := points(1, 1, 2, 5, 3, 3)
	got := Compute(a, b, scale10, DefaultRadius)
	if got.FullRedraw {
		t.Error("FullRedraw = true, want false")
	}
	if len(got.Regions) != 1 {
		t.Fatalf("len(Regions) = %d, want 1", len(got.Regions))
	}
	r := got.Regions[0]
	// old marker at (120,120), new at (120,150)
	want := rect.Rect{LLx: 90, LLy: 90, URx: 150, URy: 180}
	if r != want {
		t.Errorf("region = %+v, want %+v", r, want)
	}
}

func TestCompute_LengthOnly(t *testing.T) {
	tests := []struct {
		name string
		prev []vec.Vec2
		cur  []vec.Vec2
	}{
		{"tail added", points(1, 1, 2, 2), points(1, 1, 2, 2, 3, 3)},
		{"tail removed", points(1, 1, 2, 2, 3, 3), points(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.prev, tt.cur, scale10, DefaultRadius)
			if !got.FullRedraw {
				t.Errorf("FullRedraw = false, want true (regions %v)", got.Regions)
			}
		})
	}
}

func TestCompute_MismatchAndTail(t *testing.T) {
	prev := points(1, 1, 2, 2)
	cur := points(1, 1, 4, 4, 6, 6)
	got := Compute(prev, cur, scale10, DefaultRadius)
	if got.FullRedraw {
		t.Fatal("FullRedraw = true, want partial")
	}
	if len(got.Regions) != 2 {
		t.Errorf("len(Regions) = %d, want 2", len(got.Regions))
	}
}

func TestCompute_ClampsToOrigin(t *testing.T) {
	identity := func(p vec.Vec2) vec.Vec2 { return p }
	got := Compute(points(5, 5), points(10, 5), identity, 30)
	if len(got.Regions) != 1 {
		t.Fatalf("len(Regions) = %d, want 1", len(got.Regions))
	}
	r := got.Regions[0]
	if r.LLx != 0 || r.LLy != 0 {
		t.Errorf("region origin = (%v, %v), want (0, 0)", r.LLx, r.LLy)
	}
	if r.URx-r.LLx != 60 || r.URy-r.LLy != 60 {
		t.Errorf("region size = %vx%v, want 60x60", r.URx-r.LLx, r.URy-r.LLy)
	}
}

func TestTracker_FirstRenderIsFull(t *testing.T) {
	tr := NewTracker(0)
	if got := tr.Decide(points(1, 1), scale10); !got.FullRedraw {
		t.Error("first Decide: FullRedraw = false, want true")
	}
	tr.Commit(points(1, 1))
	if got := tr.Decide(points(1, 1), scale10); got.FullRedraw {
		t.Error("Decide after Commit with same points: FullRedraw = true, want false")
	}
	tr.Invalidate()
	if got := tr.Decide(points(1, 1), scale10); !got.FullRedraw {
		t.Error("Decide after Invalidate: FullRedraw = false, want true")
	}
}

func TestTracker_CommitCopies(t *testing.T) {
	var tr Tracker
	cur := points(1, 1, 2, 2)
	tr.Commit(cur)
	cur[0] = vec.Vec2{X: 9, Y: 9}
	if tr.Last()[0] != (vec.Vec2{X: 1, Y: 1}) {
		t.Errorf("Last()[0] = %v, want snapshot unaffected by caller", tr.Last()[0])
	}
}

func TestPixels(t *testing.T) {
	got := Pixels(rect.Rect{LLx: 1.5, LLy: 2.2, URx: 10.1, URy: 20})
	want := image.Rect(1, 2, 11, 20)
	if got != want {
		t.Errorf("Pixels = %v, want %v", got, want)
	}
}
