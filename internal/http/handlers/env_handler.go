// README: Environment diagnostic; reports key presence and length only.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/config"
)

type EnvHandler struct {
	cfg config.AIConfig
}

func NewEnvHandler(cfg config.AIConfig) *EnvHandler {
	return &EnvHandler{cfg: cfg}
}

// CheckEnv handles GET /api/check-env.
func (h *EnvHandler) CheckEnv(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.cfg.Report())
}
