package export

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/san-kum/cheddar/internal/galaxy"
	"github.com/san-kum/cheddar/internal/journey"
)

type GalaxyNode struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Size     string  `json:"size"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	R        float64 `json:"r"`
	Fallback bool    `json:"fallback"`
}

type GalaxyData struct {
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Device    string       `json:"device"`
	Selected  string       `json:"selected,omitempty"`
	Nodes     []GalaxyNode `json:"nodes"`
	Edges     [][2]string  `json:"edges"`
	Highlight [][2]string  `json:"highlight,omitempty"`
}

// GalaxyJSON writes the placed layout, with the edges lit for selected.
func GalaxyJSON(w io.Writer, l *galaxy.Layout, selected string) error {
	data := GalaxyData{
		Width:    l.Width,
		Height:   l.Height,
		Device:   l.Device.String(),
		Selected: selected,
		Nodes:    make([]GalaxyNode, len(l.Nodes)),
		Edges:    make([][2]string, 0),
	}
	for i, n := range l.Nodes {
		data.Nodes[i] = GalaxyNode{
			ID:       n.ID,
			Label:    n.Label,
			Size:     string(n.Size),
			X:        n.X,
			Y:        n.Y,
			R:        n.R,
			Fallback: n.Fallback,
		}
	}
	for _, e := range l.Edges() {
		data.Edges = append(data.Edges, [2]string{e.From, e.To})
		if selected != "" && e.Touches(selected) {
			data.Highlight = append(data.Highlight, [2]string{e.From, e.To})
		}
	}
	return encode(w, data)
}

type JourneyStop struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type JourneyData struct {
	Progress    float64       `json:"progress"`
	Label       string        `json:"label"`
	Step        int           `json:"step"`
	VehicleX    float64       `json:"vehicle_x"`
	VehicleY    float64       `json:"vehicle_y"`
	Heading     float64       `json:"heading"`
	Driving     bool          `json:"driving"`
	Stops       []JourneyStop `json:"stops"`
	Cities      int           `json:"cities"`
	Miles       float64       `json:"miles"`
	Experiences int           `json:"experiences"`
}

// JourneyJSON writes the journey state at its current scroll position.
func JourneyJSON(w io.Writer, j *journey.Journey) error {
	d := j.Data()
	idx, _ := j.Step()
	v := j.Vehicle()
	st := d.Stats()
	data := JourneyData{
		Progress:    j.Progress(),
		Label:       j.Label(),
		Step:        idx,
		VehicleX:    v.Pos.X,
		VehicleY:    v.Pos.Y,
		Heading:     v.Angle,
		Driving:     v.Driving,
		Stops:       make([]JourneyStop, 0, len(d.Locations)),
		Cities:      st.Cities,
		Miles:       st.Miles,
		Experiences: st.Experiences,
	}
	for _, id := range sortedKeys(d.Locations) {
		p, err := d.Position(id)
		if err != nil {
			return err
		}
		data.Stops = append(data.Stops, JourneyStop{ID: id, Name: d.Locations[id].Name, X: p.X, Y: p.Y})
	}
	return encode(w, data)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sortedKeys(m map[string]journey.Location) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
