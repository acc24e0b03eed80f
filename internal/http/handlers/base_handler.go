// README: Base handler utilities (JSON helpers, request-scoped timeouts).
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ProviderHeader names the provider that produced the returned itinerary.
const ProviderHeader = "X-Itinerary-Provider"

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

// writeItinerary sends a provider document as-is and names its source.
func writeItinerary(c *gin.Context, provider string, doc json.RawMessage) {
	c.Header(ProviderHeader, provider)
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// requestContext bounds the request context when timeout is positive.
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
