package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsguard/vpn-portal/models"
	"github.com/parsguard/vpn-portal/storage"
	"github.com/parsguard/vpn-portal/utils"
)

// PlatformController manages CRUD operations for platforms.
type PlatformController struct {
	store *storage.Storage
}

// NewPlatformController creates a new PlatformController instance.
func NewPlatformController(store *storage.Storage) *PlatformController {
	return &PlatformController{store: store}
}

// List returns all platforms sorted by (order, id).
func (p *PlatformController) List(ctx *gin.Context) {
	const cacheKey = "cache:platforms:list"
	if respondCached(ctx, cacheKey) {
		return
	}
	platforms, err := p.store.Platforms(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch platforms")
		return
	}
	cacheAndRespond(ctx, cacheKey, platforms)
}

// Get returns a single platform.
func (p *PlatformController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	cacheKey := fmt.Sprintf("cache:platforms:detail:%d", id)
	if respondCached(ctx, cacheKey) {
		return
	}
	platform, err := p.store.PlatformByID(ctx.Request.Context(), id)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch platform")
		return
	}
	if platform == nil {
		utils.Error(ctx, http.StatusNotFound, "Platform not found")
		return
	}
	cacheAndRespond(ctx, cacheKey, platform)
}

// Create adds a new platform. Order defaults to 0 when omitted.
func (p *PlatformController) Create(ctx *gin.Context) {
	var req struct {
		NameEn string `json:"nameEn" binding:"required"`
		NameFa string `json:"nameFa" binding:"required"`
		Icon   string `json:"icon" binding:"required"`
		Order  *int   `json:"order"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	platform := models.Platform{
		NameEn: req.NameEn,
		NameFa: req.NameFa,
		Icon:   req.Icon,
	}
	if req.Order != nil {
		platform.Order = *req.Order
	}

	if err := p.store.CreatePlatform(ctx.Request.Context(), &platform); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create platform")
		return
	}
	utils.InvalidateByPrefix("cache:platforms:")
	utils.Created(ctx, platform)
}

// Update applies a partial update to a platform.
func (p *PlatformController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req struct {
		NameEn *string `json:"nameEn" binding:"omitempty,min=1"`
		NameFa *string `json:"nameFa" binding:"omitempty,min=1"`
		Icon   *string `json:"icon" binding:"omitempty,min=1"`
		Order  *int    `json:"order"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	fields := map[string]any{}
	if req.NameEn != nil {
		fields["name_en"] = *req.NameEn
	}
	if req.NameFa != nil {
		fields["name_fa"] = *req.NameFa
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if req.Order != nil {
		fields["sort_order"] = *req.Order
	}

	platform, err := p.store.UpdatePlatform(ctx.Request.Context(), id, fields)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update platform")
		return
	}
	if platform == nil {
		utils.Error(ctx, http.StatusNotFound, "Platform not found")
		return
	}
	utils.InvalidateByPrefix("cache:platforms:")
	utils.OK(ctx, platform)
}

// Delete removes a platform, its applications, and clears tutorial references.
// Deleting an unknown id succeeds.
func (p *PlatformController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := p.store.DeletePlatform(ctx.Request.Context(), id); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to delete platform")
		return
	}
	// The cascade touches applications and tutorials as well.
	utils.InvalidateByPrefix("cache:platforms:")
	utils.InvalidateByPrefix("cache:applications:")
	utils.InvalidateByPrefix("cache:tutorials:")
	utils.OK(ctx, gin.H{"success": true})
}
