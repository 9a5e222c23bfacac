package menu

import (
	"errors"
	"strings"
	"testing"

	engineinput "harvestmap/pkg/engine/input"
)

func TestActionByName(t *testing.T) {
	tests := []struct {
		name string
		want engineinput.Action
		ok   bool
	}{
		{"Toggle Grid", engineinput.ActionToggleGrid, true},
		{"toggle_grid", engineinput.ActionToggleGrid, true},
		{"scene-3", engineinput.ActionScene3, true},
		{"X+", engineinput.ActionXPlus, true},
		{"x-", engineinput.ActionXMinus, true},
		{"show rare", engineinput.ActionFilterRare, true},
		{"teleport", engineinput.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ActionByName(tt.name)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ActionByName(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHelpLines(t *testing.T) {
	lines := HelpLines()
	if len(lines) != len(Items()) {
		t.Fatalf("len(HelpLines()) = %d, want %d", len(lines), len(Items()))
	}
	if lines[0] != "Scene 1: 1, scene1" {
		t.Errorf("lines[0] = %q, want %q", lines[0], "Scene 1: 1, scene1")
	}
	last := lines[len(lines)-2]
	if !strings.HasSuffix(last, "(fixed)") {
		t.Errorf("help line %q not marked fixed", last)
	}
}

func TestApplyBindings(t *testing.T) {
	t.Cleanup(func() { engineinput.SetSingleBinding(engineinput.ActionToggleGrid, "g") })

	if err := ApplyBindings(map[string]string{"toggle grid": " H "}); err != nil {
		t.Fatalf("ApplyBindings() = %v", err)
	}
	if got := engineinput.Resolve(engineinput.RawInput{Code: "h"}).Action; got != engineinput.ActionToggleGrid {
		t.Errorf("Resolve(h) = %s, want Toggle Grid", engineinput.ActionName(got))
	}
	if got := engineinput.Resolve(engineinput.RawInput{Code: "g"}).Action; got != engineinput.ActionNone {
		t.Errorf("Resolve(g) = %s, want None", engineinput.ActionName(got))
	}
}

func TestApplyBindings_Errors(t *testing.T) {
	if err := ApplyBindings(map[string]string{"fly": "f"}); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action: err = %v, want ErrUnknownAction", err)
	}
	if err := ApplyBindings(map[string]string{"help": "h"}); !errors.Is(err, ErrFixedBinding) {
		t.Errorf("help: err = %v, want ErrFixedBinding", err)
	}
}
