package input

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"1", ActionScene1},
		{"scene4", ActionScene4},
		{" Rare ", ActionFilterRare},
		{"arrow_left", ActionXMinus},
		{"y-", ActionYMinus},
		{"G", ActionToggleGrid},
		{"q", ActionQuit},
		{"dance", ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := Resolve(RawInput{Device: DeviceKeyboard, Code: tt.code})
			if got.Action != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.code, ActionName(got.Action), ActionName(tt.want))
			}
		})
	}
}

func TestSceneIndex(t *testing.T) {
	if i, ok := SceneIndex(ActionScene3); !ok || i != 2 {
		t.Errorf("SceneIndex(Scene3) = %d, %v, want 2, true", i, ok)
	}
	if _, ok := SceneIndex(ActionQuit); ok {
		t.Error("SceneIndex(Quit) should be false")
	}
}

func TestSetSingleBinding(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for k, v := range bindings {
		saved[k] = v
	}
	t.Cleanup(func() { bindings = saved })

	SetSingleBinding(ActionToggleGrid, "h")
	codes := GetBindingsByAction()[ActionToggleGrid]
	if len(codes) != 1 || codes[0] != "h" {
		t.Errorf("grid bindings = %v, want [h]", codes)
	}

	// arrows stay bound
	SetSingleBinding(ActionXPlus, "arrow_up")
	if MapToIntent(DebouncedInput{Code: "arrow_right"}).Action != ActionXPlus {
		t.Error("reserved arrow binding removed")
	}
	if MapToIntent(DebouncedInput{Code: "arrow_up"}).Action != ActionYMinus {
		t.Error("reserved arrow binding rebound")
	}
}

func TestLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("rare\n\n  2 \nquit"))
	var codes []string
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if ev.Device != DeviceTerminal {
			t.Errorf("Device = %v, want terminal", ev.Device)
		}
		codes = append(codes, ev.Code)
	}
	want := []string{"rare", "2", "quit"}
	if strings.Join(codes, ",") != strings.Join(want, ",") {
		t.Errorf("codes = %v, want %v", codes, want)
	}
}
