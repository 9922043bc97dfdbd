package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/san-kum/cheddar/internal/galaxy"
	"github.com/san-kum/cheddar/internal/journey"
)

func TestGalaxyJSON(t *testing.T) {
	l := galaxy.Place(galaxy.Default(), 1200, 800)
	var buf bytes.Buffer
	if err := GalaxyJSON(&buf, l, "music"); err != nil {
		t.Fatal(err)
	}
	var got GalaxyData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got.Nodes) != len(l.Nodes) {
		t.Errorf("nodes = %d, want %d", len(got.Nodes), len(l.Nodes))
	}
	if len(got.Edges) != len(l.Edges()) {
		t.Errorf("edges = %d, want %d", len(got.Edges), len(l.Edges()))
	}
	if len(got.Highlight) == 0 {
		t.Error("music should light at least one edge")
	}
	for _, e := range got.Highlight {
		if e[0] != "music" && e[1] != "music" {
			t.Errorf("edge %v does not touch music", e)
		}
	}
}

func TestJourneyJSON(t *testing.T) {
	j := journey.New(journey.Default())
	j.SetProgress(1)
	var buf bytes.Buffer
	if err := JourneyJSON(&buf, j); err != nil {
		t.Fatal(err)
	}
	var got JourneyData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Progress != 1 {
		t.Errorf("progress = %v", got.Progress)
	}
	if len(got.Stops) != got.Cities {
		t.Errorf("stops = %d, cities = %d", len(got.Stops), got.Cities)
	}
	for i := 1; i < len(got.Stops); i++ {
		if got.Stops[i-1].ID > got.Stops[i].ID {
			t.Error("stops not sorted by id")
		}
	}
}
