package gameplay

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"seehuhn.de/go/geom/vec"

	engineinput "harvestmap/pkg/engine/input"
	"harvestmap/pkg/engine/projection"
	"harvestmap/pkg/game/config"
	"harvestmap/pkg/game/filter"
	"harvestmap/pkg/game/harvest"
	"harvestmap/pkg/game/menu"
	"harvestmap/pkg/game/renderer"
	"harvestmap/pkg/game/view"
)

type blankLoader struct{}

func (blankLoader) LoadImage(context.Context, string) (image.Image, error) {
	return image.NewNRGBA(image.Rect(0, 0, 400, 300)), nil
}

func newSession(t *testing.T) *Session {
	t.Helper()
	v := view.New(config.Default(), blankLoader{})
	v.LoadData(harvest.Map{
		"願いの砂浜": {{
			Location:  vec.Vec2{X: 1, Y: 1},
			FixtureID: 1001,
			Reward:    harvest.Reward{"mysekai_material": {"5": 1}},
		}},
	})
	return &Session{View: v, SnapshotDir: t.TempDir()}
}

func press(t *testing.T, s *Session, code string) {
	t.Helper()
	err := ProcessCommand(context.Background(), s, engineinput.RawInput{Device: engineinput.DeviceTerminal, Code: code})
	if err != nil {
		t.Fatalf("ProcessCommand(%q) = %v", code, err)
	}
}

func TestProcessIntent_SceneAndDirection(t *testing.T) {
	s := newSession(t)
	press(t, s, "3")
	if got := s.View.State().SceneKey; got != "scene3" {
		t.Fatalf("SceneKey = %q, want scene3", got)
	}

	press(t, s, "arrow_left")
	if got := s.View.State().XDirection; got != projection.XMinus {
		t.Errorf("XDirection = %s, want x-", got)
	}
	press(t, s, "arrow_down")
	if got := s.View.State().YDirection; got != projection.YPlus {
		t.Errorf("YDirection = %s, want y+", got)
	}
}

func TestProcessIntent_FilterAndToggle(t *testing.T) {
	s := newSession(t)
	press(t, s, "3")
	press(t, s, "custom")
	press(t, s, "mysekai_material:5")

	st := s.View.State()
	if st.FilterMode != filter.ModeCustom {
		t.Errorf("FilterMode = %s, want custom", st.FilterMode)
	}
	if !st.Selected.Has("mysekai_material:5") {
		t.Error("item not selected")
	}
	if !s.View.Tick(time.Now().Add(time.Second)) {
		t.Error("filter change did not render")
	}
	if n := len(s.View.Frame().Plan.Markers); n != 1 {
		t.Errorf("markers = %d, want 1", n)
	}
}

func TestProcessIntent_GridSnapshotDumpQuit(t *testing.T) {
	s := newSession(t)
	press(t, s, "3")

	press(t, s, "g")
	if !s.View.State().ShowGrid {
		t.Error("grid not shown")
	}

	press(t, s, "p")
	matches, err := filepath.Glob(filepath.Join(s.SnapshotDir, "snapshot-scene3-*.png"))
	if err != nil || len(matches) != 1 {
		t.Errorf("snapshots = %v, %v", matches, err)
	}

	press(t, s, "dump")
	if _, err := os.Stat(filepath.Join(s.SnapshotDir, "frame.txt")); err != nil {
		t.Errorf("frame dump: %v", err)
	}

	press(t, s, "q")
	if !s.Quit {
		t.Error("Quit not set")
	}
}

func TestProcessIntent_SnapshotWithoutFrame(t *testing.T) {
	s := newSession(t)
	err := ProcessIntent(context.Background(), s, engineinput.Intent{Action: engineinput.ActionSnapshot})
	if err == nil {
		t.Error("snapshot without a frame should fail")
	}
}

type recordingRenderer struct {
	messages []string
}

func (r *recordingRenderer) Init() {}
func (r *recordingRenderer) RenderFrame(*renderer.Frame) {}
func (r *recordingRenderer) ShowMessage(msg string) { r.messages = append(r.messages, msg) }
func (r *recordingRenderer) GetViewportSize() (width, height int) { return 80, 24 }

func TestProcessIntent_Help(t *testing.T) {
	rec := &recordingRenderer{}
	prev := renderer.Current
	renderer.SetRenderer(rec)
	t.Cleanup(func() { renderer.SetRenderer(prev) })

	s := newSession(t)
	press(t, s, "?")
	if !s.ShowHelp {
		t.Fatal("help not shown")
	}
	if len(rec.messages) != len(menu.HelpLines()) {
		t.Errorf("help printed %d lines, want %d", len(rec.messages), len(menu.HelpLines()))
	}

	press(t, s, "help")
	if s.ShowHelp {
		t.Error("help still shown after second press")
	}
}
