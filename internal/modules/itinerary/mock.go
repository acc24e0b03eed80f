package itinerary

import (
	"encoding/json"
	"fmt"
)

var mockItinerary = Itinerary{
	TripTitle: "Romantic Bali Escape",
	Overview:  "A magical 8-day journey through Bali's cultural heart and coastal gems. From the rice terraces of Ubud to the cliffside sunsets of Uluwatu, this trip balances relaxation with authentic local experiences.",
	TotalCostBreakdown: CostBreakdown{
		Flights:             1200,
		Accommodation:       1400,
		FoodDrinks:          800,
		ActivitiesTransport: 500,
		Buffer:              300,
		GrandTotal:          4200,
	},
	Flights: Flights{
		Outbound: "Singapore Airlines, 18h, $600/pp, [Book Now](#)",
		Return:   "Singapore Airlines, 19h, $600/pp, [Book Now](#)",
	},
	Accommodations: []Accommodation{
		{
			Nights:      "1-4",
			Name:        "Komaneka at Bisma (Ubud)",
			PriceTotal:  800,
			BookingLink: "#",
			Why:         "Hidden gem in the jungle but close to town. Infinity pool overlooks the river valley.",
		},
		{
			Nights:      "5-8",
			Name:        "Mick's Place (Bingin Beach)",
			PriceTotal:  600,
			BookingLink: "#",
			Why:         "Boutique cliffside bungalows with the best sunset view in Bali. Very private.",
		},
	},
	Itinerary: []DayPlan{
		{
			Day:       1,
			Date:      "2026-03-15",
			Title:     "Arrival & Jungle Vibes",
			Morning:   "Land at DPS, private transfer to Ubud (1.5h). Check in and decompress.",
			Afternoon: "Light lunch at Kafe Ubud. Walk the Campuhan Ridge Walk for sunset views.",
			Evening:   "Relaxing massage at the hotel spa.",
			Dinner:    "Hujan Locale - modern Indonesian cuisine (Reservation booked).",
			Stay:      "Komaneka at Bisma",
		},
		{
			Day:       2,
			Date:      "2026-03-16",
			Title:     "Water Temples & Rice Terraces",
			Morning:   "Early start (7am) to Tegalalang Rice Terrace before the crowds.",
			Afternoon: "Visit Tirta Empul for a purification ritual. Lunch at a local warung.",
			Evening:   "Return to hotel for pool time.",
			Dinner:    "Locavore (Splurge dinner) - 7-course tasting menu.",
			Stay:      "Komaneka at Bisma",
		},
		{
			Day:       3,
			Date:      "2026-03-17",
			Title:     "Hidden Waterfalls",
			Morning:   "Trek to Kanto Lampo Waterfall (less touristy than others).",
			Afternoon: "Cooking class at a local organic farm.",
			Evening:   "Free time to explore Ubud market.",
			Dinner:    "Street food night market tour.",
			Stay:      "Komaneka at Bisma",
		},
	},
	PackingList: []string{
		"Lightweight rain jacket (tropical showers)",
		"Reef-safe sunscreen",
		"Sarong (for temple visits)",
		"Comfortable walking sandals",
		"Universal power adapter",
		"Mosquito repellent",
		"Swimwear (2-3 sets)",
		"Light linen clothes",
		"Camera/GoPro",
		"Dry bag for water activities",
	},
	ProTips: []string{
		"Download GoJek app for cheap local transport and food delivery.",
		"Don't drink tap water, even for brushing teeth.",
		"Cash is king in smaller warungs, keep IDR handy.",
	},
}

// MockItinerary returns a fresh copy of the static fallback plan.
func MockItinerary() *Itinerary {
	return mockItinerary.Clone()
}

// mockDocument is the fallback plan as a JSON document.
func mockDocument() (json.RawMessage, error) {
	return json.Marshal(mockItinerary)
}

// mockRefinement applies an instruction without a model: the title is tagged
// and the overview replaced with the request. Other fields, including ones
// outside the schema, are kept as they are.
func mockRefinement(current json.RawMessage, instruction string) (json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(current, &doc); err != nil {
		return nil, fmt.Errorf("decode current itinerary: %w", err)
	}
	title, err := json.Marshal(TripTitle(current) + " (Refined)")
	if err != nil {
		return nil, err
	}
	overview, err := json.Marshal("Updated based on your request: " + instruction)
	if err != nil {
		return nil, err
	}
	doc["trip_title"] = title
	doc["overview"] = overview
	return json.Marshal(doc)
}
