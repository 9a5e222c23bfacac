// Package config holds the static tables and tunables of the map viewer.
// Defaults are Go literals; Load overlays a YAML file on top of them.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"path"
	"slices"
	"time"

	"seehuhn.de/go/geom/vec"

	"harvestmap/pkg/engine/layout"
	"harvestmap/pkg/engine/projection"
	"harvestmap/pkg/game/harvest"
	"harvestmap/pkg/game/rarity"
)

// ErrUnknownScene is returned for scene keys missing from the table
var ErrUnknownScene = errors.New("config: unknown scene")

// Texture locations, relative to the asset root
const (
	TextureDir         = "icon/Texture2D"
	MissingTexture     = "icon/missing.png"
	MusicRecordTexture = TextureDir + "/item_surplus_music_record.png"
)

// Tables is the static lookup data
type Tables struct {
	Scenes        map[string]projection.SceneConfig
	SceneOrder    []string          // keys in menu order
	SceneNames    map[string]string // scene key -> display name used by harvest data
	FixtureColors map[int]color.NRGBA
	ItemTextures  map[string]map[string]string // category -> itemId -> texture path
	Rarity        rarity.Tables
	Sites         harvest.Sites
}

// Tunables are the timing and geometry knobs of the render pipeline
type Tunables struct {
	FilterDebounce      time.Duration
	ResizeDebounce      time.Duration
	DirtyRadius         float64
	ToleranceX          float64
	ToleranceY          float64
	CellSize            float64
	BruteForceBelow     int
	CollisionPointLimit int // skip collision resolution at this many points or more; 0 means never skip
	Card                layout.Metrics
	PreloadBatchSize    int
	PreloadBatchGap     time.Duration
}

// Config is everything the viewer is configured with
type Config struct {
	Tables
	Tunables

	// Bindings rebinds viewer actions, action name -> key code
	Bindings map[string]string
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Tables: Tables{
			Scenes:        defaultScenes(),
			SceneOrder:    []string{"scene1", "scene2", "scene3", "scene4"},
			SceneNames:    defaultSceneNames(),
			FixtureColors: defaultFixtureColors(),
			ItemTextures:  defaultItemTextures(),
			Rarity: rarity.Tables{
				Rare: rarity.Table{
					"mysekai_material":     {5, 12, 20, 24, 32, 33, 61, 62, 63, 64, 65},
					"mysekai_item":         {7},
					"mysekai_music_record": {},
					"mysekai_fixture":      {118, 119, 120, 121},
				},
				SuperRare: rarity.Table{
					"mysekai_material":     {5, 12, 20, 24},
					"mysekai_item":         {},
					"mysekai_fixture":      {},
					"mysekai_music_record": {},
				},
			},
			Sites: harvest.Sites{
				ByID: map[int]string{
					1: "マイホーム",
					2: "1F",
					3: "2F",
					4: "3F",
					5: "さいしょの原っぱ",
					6: "願いの砂浜",
					7: "彩りの花畑",
					8: "忘れ去られた場所",
				},
				ByLabel: map[string]string{
					"Site: 初始空地": "さいしょの原っぱ",
					"Site: 心愿沙滩": "願いの砂浜",
					"Site: 烂漫花田": "彩りの花畑",
					"Site: 忘却之所": "忘れ去られた場所",
				},
			},
		},
		Tunables: Tunables{
			FilterDebounce:   150 * time.Millisecond,
			ResizeDebounce:   400 * time.Millisecond,
			DirtyRadius:      30,
			ToleranceX:       layout.DefaultTolerance,
			ToleranceY:       layout.DefaultTolerance,
			CellSize:         layout.DefaultCellSize,
			BruteForceBelow:  layout.DefaultBruteForceBelow,
			Card:             layout.DefaultMetrics(),
			PreloadBatchSize: 15,
			PreloadBatchGap:  50 * time.Millisecond,
		},
	}
}

func defaultScenes() map[string]projection.SceneConfig {
	return map[string]projection.SceneConfig{
		"scene1": {
			PhysicalGridWidth: 33.333,
			Offset:            vec.Vec2{X: 0, Y: -40},
			ImagePath:         "img/grassland.png",
			XDirection:        projection.XMinus,
			YDirection:        projection.YMinus,
			ReverseXY:         true,
		},
		"scene2": {
			PhysicalGridWidth: 24.806,
			Offset:            vec.Vec2{X: -62.015, Y: 20.672},
			ImagePath:         "img/flowergarden.png",
			XDirection:        projection.XMinus,
			YDirection:        projection.YMinus,
			ReverseXY:         true,
		},
		"scene3": {
			PhysicalGridWidth: 20.513,
			Offset:            vec.Vec2{X: 0, Y: 80},
			ImagePath:         "img/beach.png",
			XDirection:        projection.XPlus,
			YDirection:        projection.YMinus,
		},
		"scene4": {
			PhysicalGridWidth: 21.333,
			Offset:            vec.Vec2{X: 0, Y: -106.667},
			ImagePath:         "img/memorialplace.png",
			XDirection:        projection.XPlus,
			YDirection:        projection.YMinus,
		},
	}
}

func defaultSceneNames() map[string]string {
	return map[string]string{
		"scene1": "さいしょの原っぱ",
		"scene2": "彩りの花畑",
		"scene3": "願いの砂浜",
		"scene4": "忘れ去られた場所",
	}
}

func defaultFixtureColors() map[int]color.NRGBA {
	colors := map[int]string{
		112:  "#f9f9f9",
		2001: "#878685", // iron
		2002: "#d5750a", // copper
		2003: "#d5d5d5", // stone
		2004: "#a7c7cb",
		2005: "#9933cc",
		3001: "#c95a49",
		6001: "#6f4e37",
		7001: "#a5d9ff",
	}
	for id := 1001; id <= 1004; id++ {
		colors[id] = "#da6d42" // wood
	}
	for id := 4001; id <= 4020; id++ {
		colors[id] = "#f8729a" // flowers, cotton
	}
	for _, base := range []int{5000, 5100} {
		for id := base + 1; id <= base+4; id++ {
			colors[id] = "#f6f5f2"
		}
	}

	out := make(map[int]color.NRGBA, len(colors))
	for id, hex := range colors {
		c, err := ParseHexColor(hex)
		if err != nil {
			panic(err)
		}
		out[id] = c
	}
	return out
}

func texture(name string) string {
	return path.Join(TextureDir, name+".png")
}

func defaultItemTextures() map[string]map[string]string {
	material := map[string]string{
		"24": texture("item_tone_8"),
		"32": texture("item_junk_8"),
		"33": texture("item_mineral_8"),
		"34": texture("item_junk_9"),
		"61": texture("item_junk_10"),
		"62": texture("item_junk_11"),
		"63": texture("item_junk_12"),
		"64": texture("item_mineral_9"),
		"65": texture("item_mineral_10"),
	}
	series := []struct {
		first, count int
		prefix       string
	}{
		{1, 5, "item_wood_"},
		{6, 7, "item_mineral_"},
		{13, 7, "item_junk_"},
		{20, 4, "item_plant_"},
	}
	for _, s := range series {
		for i := 0; i < s.count; i++ {
			material[fmt.Sprint(s.first+i)] = texture(fmt.Sprintf("%s%d", s.prefix, i+1))
		}
	}

	fixture := map[string]string{}
	for id := 118; id <= 121; id++ {
		fixture[fmt.Sprint(id)] = texture(fmt.Sprintf("mdl_non1001_before_sapling1_%d", id))
	}
	for _, rng := range [][2]int{{126, 130}, {474, 483}} {
		for id := rng[0]; id <= rng[1]; id++ {
			fixture[fmt.Sprint(id)] = texture(fmt.Sprintf("mdl_non1001_before_sprout1_%d", id))
		}
	}

	return map[string]map[string]string{
		"mysekai_material":     material,
		"mysekai_item":         {"7": texture("item_blueprint_fragment")},
		"mysekai_fixture":      fixture,
		"mysekai_music_record": {"352": MusicRecordTexture},
	}
}

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque colour
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid length %d", len(s))
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("config: colour %q: %w", s, err)
	}
	return c, nil
}

// Scene returns the scene parameters for key
func (t *Tables) Scene(key string) (projection.SceneConfig, error) {
	s, ok := t.Scenes[key]
	if !ok {
		return projection.SceneConfig{}, fmt.Errorf("%w %q", ErrUnknownScene, key)
	}
	return s, nil
}

// SceneName returns the display name harvest data uses for a scene key
func (t *Tables) SceneName(key string) string {
	return t.SceneNames[key]
}

// SceneKey returns the key of the scene with the given display name
func (t *Tables) SceneKey(name string) (string, bool) {
	for _, k := range t.SceneOrder {
		if t.SceneNames[k] == name {
			return k, true
		}
	}
	return "", false
}

// FixtureColor returns the marker colour of a fixture type
func (t *Tables) FixtureColor(id int) (color.NRGBA, bool) {
	c, ok := t.FixtureColors[id]
	return c, ok
}

// TexturePath resolves the icon of a reward entry. Music records always
// use the generic record icon; unknown entries fall back to MissingTexture.
func (t *Tables) TexturePath(category, itemID string) string {
	if category == harvest.MusicRecordCategory {
		return MusicRecordTexture
	}
	if p, ok := t.ItemTextures[category][itemID]; ok {
		return p
	}
	return MissingTexture
}

// AllTextures returns every known texture path, sorted and de-duplicated
func (t *Tables) AllTextures() []string {
	var out []string
	for _, items := range t.ItemTextures {
		for _, p := range items {
			out = append(out, p)
		}
	}
	out = append(out, MissingTexture)
	slices.Sort(out)
	return slices.Compact(out)
}

// SceneTextures returns the textures needed to draw the given points,
// sorted and de-duplicated.
func (t *Tables) SceneTextures(points []harvest.Point) []string {
	var out []string
	for _, p := range points {
		for cat, items := range p.Reward {
			for id := range items {
				out = append(out, t.TexturePath(cat, id))
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Validate checks the tables for values the pipeline cannot use
func (c *Config) Validate() error {
	for _, k := range c.SceneOrder {
		s, ok := c.Scenes[k]
		if !ok {
			return fmt.Errorf("%w %q in scene order", ErrUnknownScene, k)
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("scene %s: %w", k, err)
		}
	}
	if c.PreloadBatchSize <= 0 {
		return fmt.Errorf("config: preload batch size %d", c.PreloadBatchSize)
	}
	return nil
}
