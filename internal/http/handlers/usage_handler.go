// README: Generation usage handler (recent ledger rows and provider counters).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyage/internal/modules/aiusage"
	"voyage/internal/modules/itinerary"
)

const maxUsageLimit = 100

// Usage is the part of aiusage.Service the handler uses.
type Usage interface {
	Summary(ctx context.Context, limit int, providers []string) (*aiusage.Summary, error)
}

type UsageHandler struct {
	usage     Usage
	providers []string
	logger    *zap.Logger
}

// NewUsageHandler reports counters for providers plus the mock fallback.
func NewUsageHandler(usage Usage, providers []string, logger *zap.Logger) *UsageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	names := append([]string{}, providers...)
	names = append(names, itinerary.ProviderMock)
	return &UsageHandler{usage: usage, providers: names, logger: logger}
}

// Summary handles GET /api/usage?limit=N.
func (h *UsageHandler) Summary(c *gin.Context) {
	limit := aiusage.DefaultRecentLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxUsageLimit {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	sum, err := h.usage.Summary(c.Request.Context(), limit, h.providers)
	if err != nil {
		if errors.Is(err, aiusage.ErrDisabled) {
			writeError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		h.logger.Error("usage summary", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, sum)
}
