package harvest

import (
	"encoding/json"
	"errors"
	"testing"

	"seehuhn.de/go/geom/vec"
)

var testSites = Sites{
	ByID:    map[int]string{5: "さいしょの原っぱ", 6: "願いの砂浜"},
	ByLabel: map[string]string{"Site: 初始空地": "さいしょの原っぱ", "Site: 心愿沙滩": "願いの砂浜"},
}

const standardDump = `{
  "updatedResources": {
    "userMysekaiHarvestMaps": [
      {
        "mysekaiSiteId": 5,
        "userMysekaiSiteHarvestFixtures": [
          {"positionX": 1.5, "positionZ": -2, "mysekaiSiteHarvestFixtureId": 1001, "userMysekaiSiteHarvestFixtureStatus": "spawned"},
          {"positionX": 3, "positionZ": 4, "mysekaiSiteHarvestFixtureId": 2001, "userMysekaiSiteHarvestFixtureStatus": "harvested"},
          {"positionX": 7, "positionZ": 8, "mysekaiSiteHarvestFixtureId": 112, "userMysekaiSiteHarvestFixtureStatus": "spawned"}
        ],
        "userMysekaiSiteHarvestResourceDrops": [
          {"positionX": 1.5, "positionZ": -2, "resourceType": "mysekai_material", "resourceId": 1, "quantity": 2},
          {"positionX": 1.5, "positionZ": -2, "resourceType": "mysekai_material", "resourceId": 1, "quantity": 3},
          {"positionX": 1.5, "positionZ": -2, "resourceType": "mysekai_material", "resourceId": 5, "quantity": 1},
          {"positionX": 3, "positionZ": 4, "resourceType": "mysekai_material", "resourceId": 6, "quantity": 1},
          {"positionX": 99, "positionZ": 99, "resourceType": "mysekai_item", "resourceId": 7, "quantity": 1}
        ]
      },
      {"mysekaiSiteId": 42}
    ]
  }
}`

func TestDecode_Standard(t *testing.T) {
	m, format, err := Decode([]byte(standardDump), testSites)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if format != FormatStandard {
		t.Errorf("format = %v, want %v", format, FormatStandard)
	}

	points := m["さいしょの原っぱ"]
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2 spawned fixtures", len(points))
	}
	first := points[0]
	if first.Location != (vec.Vec2{X: 1.5, Y: -2}) || first.FixtureID != 1001 {
		t.Errorf("first point = %+v", first)
	}
	if got := first.Reward["mysekai_material"]["1"]; got != 5 {
		t.Errorf("merged quantity of item 1 = %d, want 5", got)
	}
	if got := first.Reward["mysekai_material"]["5"]; got != 1 {
		t.Errorf("quantity of item 5 = %d, want 1", got)
	}
	if len(points[1].Reward) != 0 {
		t.Errorf("second point reward = %v, want empty", points[1].Reward)
	}

	if _, ok := m["Unknown Site 42"]; !ok {
		t.Errorf("scenes = %v, want an Unknown Site 42 entry", m.Scenes())
	}
}

func TestDecode_StandardSkipsMalformedEntries(t *testing.T) {
	data := `{
  "updatedResources": {
    "userMysekaiHarvestMaps": [
      {
        "mysekaiSiteId": 5,
        "userMysekaiSiteHarvestFixtures": [
          {"positionX": "bad", "positionZ": 1, "mysekaiSiteHarvestFixtureId": 1001, "userMysekaiSiteHarvestFixtureStatus": "spawned"},
          {"positionX": 2, "positionZ": 3, "mysekaiSiteHarvestFixtureId": 1002, "userMysekaiSiteHarvestFixtureStatus": "spawned"}
        ],
        "userMysekaiSiteHarvestResourceDrops": [
          {"positionX": 2, "positionZ": 3, "resourceType": "mysekai_material", "resourceId": "x", "quantity": 1},
          {"positionX": 2, "positionZ": 3, "resourceType": "mysekai_material", "resourceId": 5, "quantity": 4}
        ]
      },
      {"mysekaiSiteId": "six"},
      {
        "mysekaiSiteId": 6,
        "userMysekaiSiteHarvestFixtures": [
          {"positionX": 0, "positionZ": 0, "mysekaiSiteHarvestFixtureId": 1001, "userMysekaiSiteHarvestFixtureStatus": "spawned"}
        ]
      }
    ]
  }
}`
	m, _, err := Decode([]byte(data), testSites)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(m) != 2 {
		t.Errorf("scenes = %v, want 2 valid sites", m.Scenes())
	}

	a := m["さいしょの原っぱ"]
	if len(a) != 1 || a[0].FixtureID != 1002 {
		t.Fatalf("site 5 points = %+v, want only fixture 1002", a)
	}
	if got := a[0].Reward["mysekai_material"]["5"]; got != 4 {
		t.Errorf("quantity of item 5 = %d, want 4", got)
	}
	if len(a[0].Reward["mysekai_material"]) != 1 {
		t.Errorf("reward = %v, want the malformed drop skipped", a[0].Reward)
	}

	if b := m["願いの砂浜"]; len(b) != 1 {
		t.Errorf("site 6 points = %d, want 1", len(b))
	}
}

func TestDecode_Simplified(t *testing.T) {
	data := `{
  "Site: 初始空地": [
    {"location": [1, 2], "fixtureId": 1001, "reward": {"mysekai_material": {"1": 3, "5": 1}}},
    {"location": [3, 4], "fixtureId": 2001},
    {"location": [5, 6]},
    {"fixtureId": 3001},
    {"location": [7, 8], "fixtureId": 4001, "reward": {"mysekai_material": {"2": -1, "3": "x", "4": 2}}}
  ],
  "Site: 心愿沙滩": "not an array",
  "Site: unknown": []
}`
	m, format, err := Decode([]byte(data), testSites)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if format != FormatSimplified {
		t.Errorf("format = %v, want %v", format, FormatSimplified)
	}
	if len(m) != 1 {
		t.Errorf("scenes = %v, want only さいしょの原っぱ", m.Scenes())
	}

	points := m["さいしょの原っぱ"]
	if len(points) != 3 {
		t.Fatalf("len(points) = %d, want 3", len(points))
	}
	if points[1].Reward == nil || len(points[1].Reward) != 0 {
		t.Errorf("missing reward = %v, want empty map", points[1].Reward)
	}
	got := points[2].Reward["mysekai_material"]
	if len(got) != 1 || got["4"] != 2 {
		t.Errorf("reward with bad entries = %v, want only item 4", got)
	}
}

func TestDecode_Lines(t *testing.T) {
	data := "some header\nSite: 初始空地\n[{\"location\":[1,2],\"fixtureId\":1001}]\nSite: 心愿沙滩\nnot json\n"
	m, format, err := Decode([]byte(data), testSites)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if format != FormatSimplified {
		t.Errorf("format = %v, want simplified", format)
	}
	if len(m["さいしょの原っぱ"]) != 1 {
		t.Errorf("points = %v, want one", m["さいしょの原っぱ"])
	}
}

func TestDecode_Unknown(t *testing.T) {
	for _, data := range []string{`{"foo": 1}`, `garbage`, `{"updatedResources": null}`} {
		_, format, err := Decode([]byte(data), testSites)
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Decode(%q) err = %v, want ErrUnknownFormat", data, err)
		}
		if format != FormatUnknown {
			t.Errorf("Decode(%q) format = %v, want unknown", data, format)
		}
	}
}

func TestDecode_StandardWithoutMaps(t *testing.T) {
	m, _, err := Decode([]byte(`{"updatedResources": {}}`), testSites)
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if len(m) != 0 {
		t.Errorf("len(m) = %d, want 0", len(m))
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		top  map[string]json.RawMessage
		want Format
	}{
		{"standard", map[string]json.RawMessage{"updatedResources": json.RawMessage(`{}`)}, FormatStandard},
		{"simplified", map[string]json.RawMessage{"Site: x": json.RawMessage(`[]`)}, FormatSimplified},
		{"empty", map[string]json.RawMessage{}, FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.top); got != tt.want {
				t.Errorf("DetectFormat = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReward_EntriesOrder(t *testing.T) {
	r := Reward{
		"mysekai_material": {"10": 1, "2": 1, "33": 1},
		"mysekai_item":     {"7": 2},
	}
	got := r.Entries()
	want := []string{"mysekai_item:7", "mysekai_material:2", "mysekai_material:10", "mysekai_material:33"}
	if len(got) != len(want) {
		t.Fatalf("len(Entries) = %d, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Key() != want[i] {
			t.Errorf("Entries[%d] = %s, want %s", i, e.Key(), want[i])
		}
	}
}

func TestLocations(t *testing.T) {
	pts := []Point{{Location: vec.Vec2{X: 1, Y: 2}}, {Location: vec.Vec2{X: 3, Y: 4}}}
	got := Locations(pts)
	if len(got) != 2 || got[1] != (vec.Vec2{X: 3, Y: 4}) {
		t.Errorf("Locations = %v", got)
	}
}
