package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"harvestmap/pkg/game/renderer"
)

const frameDumpFilename = "frame.txt"

// WriteFrameDump writes a plain-text debug dump of a frame: metadata, the
// redraw decision, markers, and laid-out cards.
func WriteFrameDump(w io.Writer, f *renderer.Frame) error {
	if f == nil {
		return ErrNoFrame
	}
	var b strings.Builder

	// --- Metadata ---
	fmt.Fprintln(&b, "=== FRAME DUMP ===")
	fmt.Fprintln(&b, "")
	fmt.Fprintln(&b, "--- Metadata ---")
	fmt.Fprintf(&b, "scene_key: %s\n", f.SceneKey)
	fmt.Fprintf(&b, "scene_name: %s\n", f.SceneName)
	if f.Overlay != nil {
		fmt.Fprintf(&b, "overlay: %dx%d\n", f.Overlay.Bounds().Dx(), f.Overlay.Bounds().Dy())
	}
	fmt.Fprintf(&b, "grid_px: %.3f\n", f.Plan.GridPx)
	fmt.Fprintf(&b, "origin: %.3f,%.3f\n", f.Plan.Origin.X, f.Plan.Origin.Y)
	fmt.Fprintf(&b, "full_redraw: %v\n", f.Redraw.FullRedraw)
	fmt.Fprintf(&b, "dirty_regions: %d\n", len(f.Redraw.Regions))
	for _, r := range f.Redraw.Regions {
		fmt.Fprintf(&b, "  region: %.1f,%.1f %.1f,%.1f\n", r.LLx, r.LLy, r.URx, r.URy)
	}
	fmt.Fprintf(&b, "collision_strategy: %s\n", f.Collisions.Strategy)
	fmt.Fprintf(&b, "collision_checked: %d\n", f.Collisions.Checked)
	fmt.Fprintf(&b, "collision_nudged: %d\n", f.Collisions.Nudged)
	fmt.Fprintln(&b, "")

	// --- Markers ---
	fmt.Fprintf(&b, "--- Markers (%d) ---\n", len(f.Plan.Markers))
	for i, m := range f.Plan.Markers {
		fmt.Fprintf(&b, "%d: point=%d world=%.3f,%.3f screen=%.1f,%.1f known=%v rare=%v\n",
			i, m.Point, m.World.X, m.World.Y, m.Screen.X, m.Screen.Y, m.Known, m.Rare)
	}
	fmt.Fprintln(&b, "")

	// --- Cards ---
	fmt.Fprintf(&b, "--- Cards (%d) ---\n", len(f.Cards))
	for _, c := range f.Cards {
		if c.ID < 0 || c.ID >= len(f.Plan.Cards) {
			continue
		}
		desc := f.Plan.Cards[c.ID]
		items := make([]string, len(desc.Entries))
		for i, e := range desc.Entries {
			items[i] = fmt.Sprintf("%s x%d", e.Key(), e.Quantity)
		}
		fmt.Fprintf(&b, "%d: marker=%d tint=%s rect=%.1f,%.1f %.0fx%.0f items=[%s]\n",
			c.ID, desc.Marker, desc.Tint, c.Offset.X, c.Offset.Y, c.Width, c.Height, strings.Join(items, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// DumpFrameToFile writes the frame dump to frame.txt in dir and returns
// the absolute path
func DumpFrameToFile(dir string, f *renderer.Frame) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, frameDumpFilename))
	if err != nil {
		return "", err
	}

	out, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	if err := WriteFrameDump(out, f); err != nil {
		out.Close()
		return "", err
	}
	return absPath, out.Close()
}
