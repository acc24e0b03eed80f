// README: Chat intake handler; walks the four questions and triggers generation/refinement.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyage/internal/modules/intake"
	"voyage/internal/modules/itinerary"
)

const (
	generateFailedReply = "Sorry, I encountered an error generating your itinerary. Please try again."
	refineFailedReply   = "Sorry, I couldn't update your itinerary. Please try again."
	refinedReply        = "Done! I've updated your itinerary based on your request."
	untitledTrip        = "new trip"
)

type ChatHandler struct {
	svc     Itineraries
	logger  *zap.Logger
	timeout time.Duration
}

func NewChatHandler(svc Itineraries, logger *zap.Logger, timeout time.Duration) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{svc: svc, logger: logger, timeout: timeout}
}

type chatReq struct {
	Step      intake.Step     `json:"step"`
	Answers   intake.Answers  `json:"answers"`
	Message   string          `json:"message"`
	Itinerary json.RawMessage `json:"itinerary,omitempty"`
}

type chatResp struct {
	intake.Turn
	Itinerary json.RawMessage `json:"itinerary,omitempty"`
	Provider  string          `json:"provider,omitempty"`
}

// Welcome handles GET /api/chat/welcome.
func (h *ChatHandler) Welcome(c *gin.Context) {
	writeJSON(c, http.StatusOK, chatResp{Turn: intake.Welcome()})
}

// Message handles POST /api/chat.
func (h *ChatHandler) Message(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	turn, err := intake.Advance(req.Step, req.Answers, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrEmptyMessage), errors.Is(err, intake.ErrUnknownStep):
			writeError(c, http.StatusBadRequest, err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	resp := chatResp{Turn: turn}
	switch {
	case turn.Complete:
		h.generate(c, &resp)
	case turn.Refinement:
		if err := h.refine(c, &resp, req.Itinerary, req.Message); err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	writeJSON(c, http.StatusOK, resp)
}

func (h *ChatHandler) generate(c *gin.Context, resp *chatResp) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	res, err := h.svc.Generate(ctx, intake.ToProfile(resp.Answers))
	if err != nil {
		h.logger.Error("chat generate", zap.Error(err))
		resp.Reply = generateFailedReply
		return
	}
	resp.Itinerary = res.Itinerary
	resp.Provider = res.Provider
	title := itinerary.TripTitle(res.Itinerary)
	if title == "" {
		title = untitledTrip
	}
	resp.Reply = fmt.Sprintf("I've planned a %s for you! Check it out on the right.", title)
}

// refine returns an error only when the client sent no usable itinerary;
// other failures become the apology reply.
func (h *ChatHandler) refine(c *gin.Context, resp *chatResp, current json.RawMessage, instruction string) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	res, err := h.svc.Refine(ctx, current, instruction)
	switch {
	case errors.Is(err, itinerary.ErrMissingItinerary), errors.Is(err, itinerary.ErrInvalidItinerary):
		return err
	case err != nil:
		h.logger.Error("chat refine", zap.Error(err))
		resp.Reply = refineFailedReply
		return nil
	}
	resp.Itinerary = res.Itinerary
	resp.Provider = res.Provider
	resp.Reply = refinedReply
	return nil
}
