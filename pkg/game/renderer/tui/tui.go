package tui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"harvestmap/pkg/engine/terminal"
	"harvestmap/pkg/game/harvest"
	"harvestmap/pkg/game/rarity"
	"harvestmap/pkg/game/renderer"
)

// cellWidth is the width of one summary column, including its padding
const cellWidth = 34

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since category names are looked up as keys at runtime.
var dynamicGet = gotext.Get

// TUIRenderer prints frames as a text summary
type TUIRenderer struct {
	out    io.Writer
	rarity rarity.Tables

	colorHeading   color.Style
	colorSubtle    color.Style
	colorItem      color.Style
	colorRare      color.Style
	colorSuperRare color.Style
	colorMessage   color.Style
}

// New creates a TUI renderer writing to out
func New(out io.Writer, tables rarity.Tables) *TUIRenderer {
	return &TUIRenderer{out: out, rarity: tables}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorHeading = color.Style{color.FgMagenta, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray}
	t.colorItem = color.Style{color.FgBlue}
	t.colorRare = color.Style{color.FgMagenta}
	t.colorSuperRare = color.Style{color.FgRed, color.OpBold}
	t.colorMessage = color.Style{color.FgGray, color.OpBold}
}

// GetViewportSize returns the terminal size
func (t *TUIRenderer) GetViewportSize() (width, height int) {
	return terminal.Size(t.out)
}

// ShowMessage prints a status line
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.out, t.colorMessage.Sprint("» "+msg))
}

// RenderFrame prints the scene header, the super-rare scenes and the item
// summary of a frame
func (t *TUIRenderer) RenderFrame(f *renderer.Frame) {
	if f == nil {
		return
	}
	width := terminal.Width(t.out)

	fmt.Fprintln(t.out, t.colorHeading.Sprint(fmt.Sprintf(gotext.Get("SUMMARY_SCENE"), f.SceneName, f.SceneKey)))
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(fmt.Sprintf(gotext.Get("SUMMARY_COUNTS"),
		len(f.Plan.Markers), len(f.Cards), f.Collisions.Strategy, f.Collisions.Nudged)))

	if scenes := superRareScenes(f.SuperRare); len(scenes) > 0 {
		fmt.Fprintln(t.out, t.colorSuperRare.Sprint(fmt.Sprintf(gotext.Get("SUMMARY_SUPER_RARE"), strings.Join(scenes, ", "))))
	}

	if len(f.Summary) == 0 {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint(gotext.Get("SUMMARY_EMPTY")))
		return
	}

	cols := max(1, width/cellWidth)
	lastCategory := ""
	col := 0
	for _, e := range f.Summary {
		if e.Category != lastCategory {
			if col > 0 {
				fmt.Fprintln(t.out)
				col = 0
			}
			fmt.Fprintln(t.out, t.colorHeading.Sprint(dynamicGet(e.Category)))
			lastCategory = e.Category
		}
		fmt.Fprint(t.out, t.styleFor(e).Sprint(t.cell(e)))
		col++
		if col == cols {
			fmt.Fprintln(t.out)
			col = 0
		}
	}
	if col > 0 {
		fmt.Fprintln(t.out)
	}
}

func (t *TUIRenderer) cell(e harvest.Entry) string {
	s := fmt.Sprintf("  %-20s x%-6d", e.Category[strings.LastIndex(e.Category, "_")+1:]+" "+e.ItemID, e.Quantity)
	if len(s) < cellWidth {
		s += strings.Repeat(" ", cellWidth-len(s))
	}
	return s
}

func (t *TUIRenderer) styleFor(e harvest.Entry) color.Style {
	switch {
	case t.rarity.SuperRare.Contains(e.Category, e.ItemID):
		return t.colorSuperRare
	case t.rarity.Rare.Contains(e.Category, e.ItemID):
		return t.colorRare
	}
	return t.colorItem
}

func superRareScenes(m map[string]bool) []string {
	var out []string
	for k, ok := range m {
		if ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
