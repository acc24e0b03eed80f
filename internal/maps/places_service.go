package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// DefaultHighlightLimit caps how many places are fed into a prompt.
const DefaultHighlightLimit = 5

// minRating filters out low quality results.
const minRating = 4.0

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// textSearcher is the subset of *maps.Client used here.
type textSearcher interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client textSearcher
	limit  int
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, limit: DefaultHighlightLimit}, nil
}

// Highlights returns well-rated places at the destination that match the
// trip vibe. An empty destination yields no places and no error.
func (s *PlacesService) Highlights(ctx context.Context, destination string, vibe []string) ([]Place, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, nil
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    highlightQuery(destination, vibe),
		Language: "en",
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	seen := make(map[string]bool)
	var results []Place
	for _, result := range resp.Results {
		if result.Rating < minRating || seen[result.PlaceID] {
			continue
		}
		seen[result.PlaceID] = true
		results = append(results, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if len(results) >= s.limit {
			break
		}
	}
	return results, nil
}

// highlightQuery builds e.g. "food and culture highlights in Japan".
func highlightQuery(destination string, vibe []string) string {
	var terms []string
	for _, v := range vibe {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			terms = append(terms, v)
		}
	}
	if len(terms) == 0 {
		return "top attractions in " + destination
	}
	return strings.Join(terms, " and ") + " highlights in " + destination
}
