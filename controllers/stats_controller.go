package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsguard/vpn-portal/storage"
	"github.com/parsguard/vpn-portal/utils"
)

// StatsController reports entity counts for the admin dashboard.
type StatsController struct {
	store *storage.Storage
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(store *storage.Storage) *StatsController {
	return &StatsController{store: store}
}

// Overview returns row counts per entity.
func (s *StatsController) Overview(ctx *gin.Context) {
	counts, err := s.store.EntityCounts(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	utils.OK(ctx, counts)
}
