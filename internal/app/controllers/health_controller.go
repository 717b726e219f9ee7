package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidesk/internal/app/models/dto"
)

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status      string         `json:"status"`
	Backend     string         `json:"backend"`
	Collections map[string]int `json:"collections"`
	Watchers    int            `json:"watchers"`
}

// HealthController reports liveness and the size of each collection
type HealthController struct {
	backend  string
	counts   func() map[string]int
	watchers func() int
}

// NewHealthController creates a new HealthController
func NewHealthController(backend string, counts func() map[string]int, watchers func() int) *HealthController {
	return &HealthController{
		backend:  backend,
		counts:   counts,
		watchers: watchers,
	}
}

// Health handles GET /health
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(HealthStatus{
		Status:      "ok",
		Backend:     c.backend,
		Collections: c.counts(),
		Watchers:    c.watchers(),
	}))
}
