package itinerary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"voyage/internal/maps"
)

// SystemPrompt is sent as the system message to every provider.
const SystemPrompt = "You are an expert travel planner. Always respond with valid JSON matching the exact schema provided."

const schema = `{
    "trip_title": "string",
    "overview": "string",
    "total_cost_breakdown": {
        "flights": number,
        "accommodation": number,
        "food_drinks": number,
        "activities_transport": number,
        "buffer": number,
        "grand_total": number
    },
    "flights": {
        "outbound": "string",
        "return": "string"
    },
    "accommodations": [
        {
            "nights": "string",
            "name": "string",
            "price_total": number,
            "booking_link": "string",
            "why": "string"
        }
    ],
    "itinerary": [
        {
            "day": number,
            "date": "string (YYYY-MM-DD)",
            "title": "string",
            "morning": "string",
            "afternoon": "string",
            "evening": "string",
            "dinner": "string",
            "stay": "string"
        }
    ],
    "packing_list": ["string"],
    "pro_tips": ["string"]
}`

// BuildPrompt renders the generation prompt for a profile. Highlights, when
// present, are offered to the model as candidate stops.
func BuildPrompt(profile Profile, highlights []maps.Place) string {
	var b strings.Builder
	b.WriteString("You are an expert travel planner. Create a detailed, personalized travel itinerary based on the following user profile:\n")
	b.WriteString(indentJSON(profile))
	b.WriteString("\n\nThe output must be a valid JSON object matching this schema:\n")
	b.WriteString(schema)
	b.WriteString("\n\nBe specific, creative, and practical. Ensure the total cost matches the user's budget.")

	if len(highlights) > 0 {
		b.WriteString("\n\nConsider including these highly rated places at the destination:\n")
		for _, p := range highlights {
			fmt.Fprintf(&b, "- %s (%.1f stars", p.Name, p.Rating)
			if p.Address != "" {
				fmt.Fprintf(&b, ", %s", p.Address)
			}
			b.WriteString(")\n")
		}
	}
	return strings.TrimSpace(b.String())
}

// BuildRefinePrompt asks the model to rewrite an existing itinerary.
func BuildRefinePrompt(current json.RawMessage, instruction string) string {
	return strings.TrimSpace(fmt.Sprintf(`You are an expert travel planner. Update the following itinerary based on this user instruction: %q

Current Itinerary:
%s

Return the fully updated JSON object with the same schema.`, instruction, indentRaw(current)))
}

func indentRaw(doc json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return string(doc)
	}
	return buf.String()
}

func indentJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(out)
}
