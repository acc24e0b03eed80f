// README: Itinerary and profile shapes exchanged with the LLM and the HTTP client.
package itinerary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Profile is the user-supplied trip preference set used to build the prompt.
type Profile struct {
	Travelers   string   `json:"travelers"`
	Budget      float64  `json:"budget"`
	Vibe        []string `json:"vibe"`
	Destination string   `json:"destination,omitempty"`
	Dates       string   `json:"dates,omitempty"`
}

// UnmarshalJSON accepts budget as a number or a string ("$4,800") and vibe as
// an array or a comma separated string.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	aux := struct {
		*plain
		Budget json.RawMessage `json:"budget"`
		Vibe   json.RawMessage `json:"vibe"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	budget, err := decodeBudget(aux.Budget)
	if err != nil {
		return err
	}
	vibe, err := decodeVibe(aux.Vibe)
	if err != nil {
		return err
	}
	p.Budget = budget
	p.Vibe = vibe
	return nil
}

func decodeBudget(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("budget: want number or string, got %s", raw)
	}
	return parseAmount(s), nil
}

// parseAmount keeps digits and the decimal point ("$4,800.50" -> 4800.5).
// Text without a number yields 0.
func parseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}

func decodeVibe(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("vibe: want array or string, got %s", raw)
	}
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

type CostBreakdown struct {
	Flights             float64 `json:"flights"`
	Accommodation       float64 `json:"accommodation"`
	FoodDrinks          float64 `json:"food_drinks"`
	ActivitiesTransport float64 `json:"activities_transport"`
	Buffer              float64 `json:"buffer"`
	GrandTotal          float64 `json:"grand_total"`
}

type Flights struct {
	Outbound string `json:"outbound"`
	Return   string `json:"return"`
}

type Accommodation struct {
	Nights      string  `json:"nights"`
	Name        string  `json:"name"`
	PriceTotal  float64 `json:"price_total"`
	BookingLink string  `json:"booking_link"`
	Why         string  `json:"why"`
}

type DayPlan struct {
	Day       int    `json:"day"`
	Date      string `json:"date"`
	Title     string `json:"title"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
	Dinner    string `json:"dinner"`
	Stay      string `json:"stay"`
}

// Itinerary is the schema the model is asked to follow. Provider output is
// passed through as raw JSON; this type backs the mock and field lookups.
type Itinerary struct {
	TripTitle          string          `json:"trip_title"`
	Overview           string          `json:"overview"`
	TotalCostBreakdown CostBreakdown   `json:"total_cost_breakdown"`
	Flights            Flights         `json:"flights"`
	Accommodations     []Accommodation `json:"accommodations"`
	Itinerary          []DayPlan       `json:"itinerary"`
	PackingList        []string        `json:"packing_list"`
	ProTips            []string        `json:"pro_tips"`
}

// Clone returns a deep copy so callers can modify slices freely.
func (it *Itinerary) Clone() *Itinerary {
	if it == nil {
		return nil
	}
	cp := *it
	cp.Accommodations = append([]Accommodation(nil), it.Accommodations...)
	cp.Itinerary = append([]DayPlan(nil), it.Itinerary...)
	cp.PackingList = append([]string(nil), it.PackingList...)
	cp.ProTips = append([]string(nil), it.ProTips...)
	return &cp
}

// ProviderMock names the static fallback in results and usage records.
const ProviderMock = "mock"

// Kind distinguishes the two generation flows.
type Kind string

const (
	KindGenerate Kind = "generate"
	KindRefine   Kind = "refine"
)

// Result is what a generation run produced and who produced it.
type Result struct {
	// Itinerary is the provider's JSON exactly as returned, after fence stripping.
	Itinerary json.RawMessage
	// Provider is the name of the provider whose output was used, or ProviderMock.
	Provider string
	// Attempts counts provider calls made, successful or not.
	Attempts int
}

// Outcome is reported to a Recorder after every run.
type Outcome struct {
	Kind       Kind
	Provider   string
	Attempts   int
	Failed     []string
	Fallback   bool
	DurationMs int64
}

// TripTitle reads trip_title from an itinerary document. It returns "" when
// the field is absent or not a string.
func TripTitle(doc json.RawMessage) string {
	var head struct {
		TripTitle json.RawMessage `json:"trip_title"`
	}
	if err := json.Unmarshal(doc, &head); err != nil {
		return ""
	}
	var title string
	if err := json.Unmarshal(head.TripTitle, &title); err != nil {
		return ""
	}
	return title
}

// DemoProfile is the fixed profile behind the diagnostic test endpoint.
func DemoProfile() Profile {
	return Profile{
		Travelers:   "Couple",
		Budget:      5000,
		Destination: "Japan",
		Vibe:        []string{"Food", "Culture", "Nature"},
		Dates:       "5 days",
	}
}
