package harvest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/vec"

	"harvestmap/pkg/logger"
)

// Format is a detected input format
type Format string

// Input formats
const (
	FormatStandard   Format = "standard"   // game API response
	FormatSimplified Format = "simplified" // "Site: <name>" keyed fixture arrays
	FormatUnknown    Format = "unknown"
)

// SpawnedStatus is the fixture status kept from standard dumps
const SpawnedStatus = "spawned"

// ErrUnknownFormat is returned when input matches none of the known formats
var ErrUnknownFormat = errors.New("harvest: unknown data format")

// Sites resolves the site identifiers of both formats to scene display names
type Sites struct {
	ByID    map[int]string    // mysekaiSiteId, standard format
	ByLabel map[string]string // "Site: ..." key, simplified format
}

// Decode parses a data dump in any supported format. Input that is not a
// JSON object is retried as the line-based form, where a "Site: ..." line is
// followed by a line holding that site's JSON fixture array.
func Decode(data []byte, sites Sites) (Map, Format, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		top = ParseLines(string(data))
		if top == nil {
			return nil, FormatUnknown, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		logger.Log.Info("Parsed site lines format")
	}

	format := DetectFormat(top)
	switch format {
	case FormatStandard:
		logger.Log.Info("Detected standard format (API response)")
		m, err := decodeStandard(top, sites)
		return m, format, err
	case FormatSimplified:
		logger.Log.Info("Detected simplified format (site-indexed)")
		return decodeSimplified(top, sites), format, nil
	}
	return nil, FormatUnknown, ErrUnknownFormat
}

// DetectFormat inspects the top-level keys of a dump
func DetectFormat(top map[string]json.RawMessage) Format {
	if raw, ok := top["updatedResources"]; ok && !isNull(raw) {
		return FormatStandard
	}
	for k := range top {
		if strings.HasPrefix(k, "Site:") {
			return FormatSimplified
		}
	}
	return FormatUnknown
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// ParseLines extracts "Site: ..." / JSON array line pairs. Pairs whose
// second line is not a JSON array are skipped; nil means nothing was found.
func ParseLines(content string) map[string]json.RawMessage {
	lines := strings.Split(content, "\n")
	out := make(map[string]json.RawMessage)
	for i := 0; i+1 < len(lines); i++ {
		label := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(label, "Site:") {
			continue
		}
		next := strings.TrimSpace(lines[i+1])
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(next), &arr); err != nil {
			continue
		}
		out[label] = json.RawMessage(next)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type standardFixture struct {
	PositionX float64 `json:"positionX"`
	PositionZ float64 `json:"positionZ"`
	FixtureID int     `json:"mysekaiSiteHarvestFixtureId"`
	Status    string  `json:"userMysekaiSiteHarvestFixtureStatus"`
}

type standardDrop struct {
	PositionX    float64 `json:"positionX"`
	PositionZ    float64 `json:"positionZ"`
	ResourceType string  `json:"resourceType"`
	ResourceID   int     `json:"resourceId"`
	Quantity     int     `json:"quantity"`
}

type standardSite struct {
	SiteID   int               `json:"mysekaiSiteId"`
	Fixtures []json.RawMessage `json:"userMysekaiSiteHarvestFixtures"`
	Drops    []json.RawMessage `json:"userMysekaiSiteHarvestResourceDrops"`
}

type standardResources struct {
	HarvestMaps []json.RawMessage `json:"userMysekaiHarvestMaps"`
}

// decodeStandard decodes the API response site by site. A malformed site,
// fixture or drop is logged and skipped; the rest of the dump is kept.
func decodeStandard(top map[string]json.RawMessage, sites Sites) (Map, error) {
	var res standardResources
	if err := json.Unmarshal(top["updatedResources"], &res); err != nil {
		return nil, fmt.Errorf("decoding updatedResources: %w", err)
	}
	if res.HarvestMaps == nil {
		logger.Log.Warn("userMysekaiHarvestMaps not found")
		return Map{}, nil
	}
	logger.Log.Infof("Found %d scenes", len(res.HarvestMaps))

	m := make(Map, len(res.HarvestMaps))
	for i, raw := range res.HarvestMaps {
		var site standardSite
		if err := json.Unmarshal(raw, &site); err != nil {
			logger.Log.WithError(err).WithField("index", i).Warn("Skipping malformed site")
			continue
		}
		name, ok := sites.ByID[site.SiteID]
		if !ok {
			name = fmt.Sprintf("Unknown Site %d", site.SiteID)
		}

		points := decodeStandardFixtures(site.Fixtures, name)
		addStandardDrops(points, site.Drops, name)

		m[name] = points
		logger.Log.WithField("scene", name).Infof("Scene loaded: %d fixtures", len(points))
	}
	return m, nil
}

func decodeStandardFixtures(fixtures []json.RawMessage, scene string) []Point {
	var points []Point
	for _, raw := range fixtures {
		var f standardFixture
		if err := json.Unmarshal(raw, &f); err != nil {
			logger.Log.WithError(err).WithField("scene", scene).Debug("Skipping malformed fixture")
			continue
		}
		if f.Status != SpawnedStatus {
			continue
		}
		points = append(points, Point{
			Location:  vec.Vec2{X: f.PositionX, Y: f.PositionZ},
			FixtureID: f.FixtureID,
			Reward:    Reward{},
		})
	}
	return points
}

// addStandardDrops merges each drop into the point at its exact position
func addStandardDrops(points []Point, drops []json.RawMessage, scene string) {
	for _, raw := range drops {
		var d standardDrop
		if err := json.Unmarshal(raw, &d); err != nil || d.Quantity < 0 {
			logger.Log.WithField("scene", scene).Debug("Skipping malformed drop")
			continue
		}
		i := indexAt(points, vec.Vec2{X: d.PositionX, Y: d.PositionZ})
		if i < 0 {
			continue
		}
		items := points[i].Reward[d.ResourceType]
		if items == nil {
			items = make(map[string]int)
			points[i].Reward[d.ResourceType] = items
		}
		items[fmt.Sprint(d.ResourceID)] += d.Quantity
	}
}

// indexAt returns the first point exactly at pos, or -1
func indexAt(points []Point, pos vec.Vec2) int {
	for i, p := range points {
		if p.Location == pos {
			return i
		}
	}
	return -1
}

type simplifiedFixture struct {
	Location  []float64                             `json:"location"`
	FixtureID int                                   `json:"fixtureId"`
	Reward    map[string]map[string]json.RawMessage `json:"reward"`
}

func decodeSimplified(top map[string]json.RawMessage, sites Sites) Map {
	m := make(Map)
	for label, raw := range top {
		name, ok := sites.ByLabel[label]
		if !ok {
			logger.Log.WithField("site", label).Warn("Unknown site format")
			continue
		}

		var fixtures []json.RawMessage
		if err := json.Unmarshal(raw, &fixtures); err != nil {
			logger.Log.WithField("site", label).Warn("Site data is not an array")
			continue
		}

		points := make([]Point, 0, len(fixtures))
		for _, fr := range fixtures {
			p, ok := decodeSimplifiedPoint(fr)
			if !ok {
				continue
			}
			points = append(points, p)
		}

		m[name] = points
		logger.Log.WithField("scene", name).Infof("Scene loaded: %d fixtures", len(points))
	}

	if len(m) == 0 {
		logger.Log.Warn("No valid scenes found in simplified format")
	} else {
		logger.Log.Infof("Found %d scenes in simplified format", len(m))
	}
	return m
}

func decodeSimplifiedPoint(raw json.RawMessage) (Point, bool) {
	var f simplifiedFixture
	if err := json.Unmarshal(raw, &f); err != nil {
		logger.Log.WithError(err).Debug("Skipping malformed fixture")
		return Point{}, false
	}
	if len(f.Location) < 2 || f.FixtureID == 0 {
		return Point{}, false
	}

	reward := Reward{}
	for cat, items := range f.Reward {
		for id, rq := range items {
			var q float64
			if err := json.Unmarshal(rq, &q); err != nil || q < 0 {
				logger.Log.WithFields(logrus.Fields{"category": cat, "item": id}).Debug("Skipping bad reward entry")
				continue
			}
			if reward[cat] == nil {
				reward[cat] = make(map[string]int)
			}
			reward[cat][id] = int(q)
		}
	}

	return Point{
		Location:  vec.Vec2{X: f.Location[0], Y: f.Location[1]},
		FixtureID: f.FixtureID,
		Reward:    reward,
	}, true
}
