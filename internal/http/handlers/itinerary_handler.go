// README: Itinerary handlers (generate, refine, test-ai diagnostic).
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyage/internal/modules/itinerary"
)

// Itineraries is the part of itinerary.Service the handlers use.
type Itineraries interface {
	Generate(ctx context.Context, profile itinerary.Profile) (*itinerary.Result, error)
	Refine(ctx context.Context, current json.RawMessage, instruction string) (*itinerary.Result, error)
	Providers() []string
}

type ItineraryHandler struct {
	svc     Itineraries
	logger  *zap.Logger
	timeout time.Duration
}

func NewItineraryHandler(svc Itineraries, logger *zap.Logger, timeout time.Duration) *ItineraryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItineraryHandler{svc: svc, logger: logger, timeout: timeout}
}

// Generate handles POST /api/generate-itinerary.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var profile itinerary.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.logger.Warn("decode profile", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	res, err := h.svc.Generate(ctx, profile)
	if err != nil {
		h.logger.Error("generate itinerary", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}
	writeItinerary(c, res.Provider, res.Itinerary)
}

type refineReq struct {
	Itinerary   json.RawMessage `json:"itinerary"`
	Instruction string          `json:"instruction"`
}

// Refine handles POST /api/refine-itinerary.
func (h *ItineraryHandler) Refine(c *gin.Context) {
	var req refineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	res, err := h.svc.Refine(ctx, req.Itinerary, req.Instruction)
	if err != nil {
		switch {
		case errors.Is(err, itinerary.ErrMissingItinerary),
			errors.Is(err, itinerary.ErrInvalidItinerary),
			errors.Is(err, itinerary.ErrEmptyInstruction):
			writeError(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("refine itinerary", zap.Error(err))
			writeError(c, http.StatusInternalServerError, "Failed to refine itinerary")
		}
		return
	}
	writeItinerary(c, res.Provider, res.Itinerary)
}

// TestAI handles GET /api/test-ai. It runs a generation with the demo profile
// and answers exactly like Generate.
func (h *ItineraryHandler) TestAI(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	res, err := h.svc.Generate(ctx, itinerary.DemoProfile())
	if err != nil {
		h.logger.Error("test ai", zap.Error(err))
		writeJSON(c, http.StatusInternalServerError, errorResponse{Error: "Failed to generate itinerary", Details: err.Error()})
		return
	}
	writeItinerary(c, res.Provider, res.Itinerary)
}
