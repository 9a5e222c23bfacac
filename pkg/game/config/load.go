package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"harvestmap/pkg/engine/projection"
)

// sceneOverride is the YAML shape of one scene. Absent fields keep the
// default; a scene key not in the defaults must set every field.
type sceneOverride struct {
	Name          string   `yaml:"name"`
	PhysicalWidth *float64 `yaml:"physicalWidth"`
	OffsetX       *float64 `yaml:"offsetX"`
	OffsetY       *float64 `yaml:"offsetY"`
	ImagePath     *string  `yaml:"imagePath"`
	XDirection    *string  `yaml:"xDirection"`
	YDirection    *string  `yaml:"yDirection"`
	ReverseXY     *bool    `yaml:"reverseXY"`
}

type tunablesOverride struct {
	FilterDebounce      *time.Duration `yaml:"filterDebounce"`
	ResizeDebounce      *time.Duration `yaml:"resizeDebounce"`
	DirtyRadius         *float64       `yaml:"dirtyRadius"`
	ToleranceX          *float64       `yaml:"toleranceX"`
	ToleranceY          *float64       `yaml:"toleranceY"`
	CellSize            *float64       `yaml:"cellSize"`
	BruteForceBelow     *int           `yaml:"bruteForceBelow"`
	CollisionPointLimit *int           `yaml:"collisionPointLimit"`
	IconSize            *float64       `yaml:"iconSize"`
	CardPadding         *float64       `yaml:"cardPadding"`
	PreloadBatchSize    *int           `yaml:"preloadBatchSize"`
	PreloadBatchGap     *time.Duration `yaml:"preloadBatchGap"`
}

type fileConfig struct {
	Scenes        map[string]sceneOverride     `yaml:"scenes"`
	FixtureColors map[int]string               `yaml:"fixtureColors"`
	ItemTextures  map[string]map[string]string `yaml:"itemTextures"`
	Rare          map[string][]int             `yaml:"rare"`
	SuperRare     map[string][]int             `yaml:"superRare"`
	Sites         map[int]string               `yaml:"sites"`
	SiteLabels    map[string]string            `yaml:"siteLabels"`
	Tunables      tunablesOverride             `yaml:"tunables"`
	Bindings      map[string]string            `yaml:"bindings"`
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse overlays YAML data on the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := Default()
	if err := cfg.apply(&f); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(f *fileConfig) error {
	keys := make([]string, 0, len(f.Scenes))
	for k := range f.Scenes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, key := range keys {
		o := f.Scenes[key]
		s, known := c.Scenes[key]
		if err := o.applyTo(&s); err != nil {
			return fmt.Errorf("scene %s: %w", key, err)
		}
		c.Scenes[key] = s
		if !known {
			c.SceneOrder = append(c.SceneOrder, key)
		}
		if o.Name != "" {
			c.SceneNames[key] = o.Name
		}
	}

	for id, hex := range f.FixtureColors {
		col, err := ParseHexColor(hex)
		if err != nil {
			return fmt.Errorf("fixture %d: %w", id, err)
		}
		c.FixtureColors[id] = col
	}

	for cat, items := range f.ItemTextures {
		if c.ItemTextures[cat] == nil {
			c.ItemTextures[cat] = make(map[string]string)
		}
		for id, p := range items {
			c.ItemTextures[cat][id] = p
		}
	}

	for cat, ids := range f.Rare {
		c.Rarity.Rare[cat] = ids
	}
	for cat, ids := range f.SuperRare {
		c.Rarity.SuperRare[cat] = ids
	}
	for id, name := range f.Sites {
		c.Sites.ByID[id] = name
	}
	for label, name := range f.SiteLabels {
		c.Sites.ByLabel[label] = name
	}

	f.Tunables.applyTo(&c.Tunables)

	if len(f.Bindings) > 0 {
		c.Bindings = make(map[string]string, len(f.Bindings))
		for action, code := range f.Bindings {
			c.Bindings[action] = code
		}
	}
	return nil
}

func (o sceneOverride) applyTo(s *projection.SceneConfig) error {
	if o.PhysicalWidth != nil {
		s.PhysicalGridWidth = *o.PhysicalWidth
	}
	if o.OffsetX != nil {
		s.Offset.X = *o.OffsetX
	}
	if o.OffsetY != nil {
		s.Offset.Y = *o.OffsetY
	}
	if o.ImagePath != nil {
		s.ImagePath = *o.ImagePath
	}
	if o.XDirection != nil {
		x, err := projection.ParseXDirection(*o.XDirection)
		if err != nil {
			return err
		}
		s.XDirection = x
	}
	if o.YDirection != nil {
		y, err := projection.ParseYDirection(*o.YDirection)
		if err != nil {
			return err
		}
		s.YDirection = y
	}
	if o.ReverseXY != nil {
		s.ReverseXY = *o.ReverseXY
	}
	return s.Validate()
}

func (o tunablesOverride) applyTo(t *Tunables) {
	setIf(&t.FilterDebounce, o.FilterDebounce)
	setIf(&t.ResizeDebounce, o.ResizeDebounce)
	setIf(&t.DirtyRadius, o.DirtyRadius)
	setIf(&t.ToleranceX, o.ToleranceX)
	setIf(&t.ToleranceY, o.ToleranceY)
	setIf(&t.CellSize, o.CellSize)
	setIf(&t.BruteForceBelow, o.BruteForceBelow)
	setIf(&t.CollisionPointLimit, o.CollisionPointLimit)
	setIf(&t.Card.IconSize, o.IconSize)
	setIf(&t.Card.Padding, o.CardPadding)
	setIf(&t.PreloadBatchSize, o.PreloadBatchSize)
	setIf(&t.PreloadBatchGap, o.PreloadBatchGap)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
