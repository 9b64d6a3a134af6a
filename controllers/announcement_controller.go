package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsguard/vpn-portal/models"
	"github.com/parsguard/vpn-portal/storage"
	"github.com/parsguard/vpn-portal/utils"
)

// AnnouncementController manages CRUD operations for announcements.
type AnnouncementController struct {
	store *storage.Storage
}

// NewAnnouncementController creates a new AnnouncementController instance.
func NewAnnouncementController(store *storage.Storage) *AnnouncementController {
	return &AnnouncementController{store: store}
}

// List returns announcements newest first. Passing active=true keeps only
// active ones.
func (a *AnnouncementController) List(ctx *gin.Context) {
	activeOnly := ctx.Query("active") == "true"
	cacheKey := "cache:announcements:list"
	if activeOnly {
		cacheKey = "cache:announcements:list:active"
	}
	if respondCached(ctx, cacheKey) {
		return
	}
	announcements, err := a.store.Announcements(ctx.Request.Context(), activeOnly)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch announcements")
		return
	}
	cacheAndRespond(ctx, cacheKey, announcements)
}

// Get returns a single announcement.
func (a *AnnouncementController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	cacheKey := fmt.Sprintf("cache:announcements:detail:%d", id)
	if respondCached(ctx, cacheKey) {
		return
	}
	announcement, err := a.store.AnnouncementByID(ctx.Request.Context(), id)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch announcement")
		return
	}
	if announcement == nil {
		utils.Error(ctx, http.StatusNotFound, "Announcement not found")
		return
	}
	cacheAndRespond(ctx, cacheKey, announcement)
}

// Create adds a new announcement. isActive defaults to true when omitted.
func (a *AnnouncementController) Create(ctx *gin.Context) {
	var req struct {
		TitleEn   string `json:"titleEn" binding:"required"`
		TitleFa   string `json:"titleFa" binding:"required"`
		ContentEn string `json:"contentEn" binding:"required"`
		ContentFa string `json:"contentFa" binding:"required"`
		IsActive  *bool  `json:"isActive"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	announcement := models.Announcement{
		TitleEn:   req.TitleEn,
		TitleFa:   req.TitleFa,
		ContentEn: utils.Sanitize(req.ContentEn),
		ContentFa: utils.Sanitize(req.ContentFa),
		IsActive:  true,
	}
	if req.IsActive != nil {
		announcement.IsActive = *req.IsActive
	}

	if err := a.store.CreateAnnouncement(ctx.Request.Context(), &announcement); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create announcement")
		return
	}
	utils.InvalidateByPrefix("cache:announcements:")
	utils.Created(ctx, announcement)
}

// Update applies a partial update to an announcement.
func (a *AnnouncementController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req struct {
		TitleEn   *string `json:"titleEn" binding:"omitempty,min=1"`
		TitleFa   *string `json:"titleFa" binding:"omitempty,min=1"`
		ContentEn *string `json:"contentEn" binding:"omitempty,min=1"`
		ContentFa *string `json:"contentFa" binding:"omitempty,min=1"`
		IsActive  *bool   `json:"isActive"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	fields := map[string]any{}
	if req.TitleEn != nil {
		fields["title_en"] = *req.TitleEn
	}
	if req.TitleFa != nil {
		fields["title_fa"] = *req.TitleFa
	}
	if req.ContentEn != nil {
		fields["content_en"] = utils.Sanitize(*req.ContentEn)
	}
	if req.ContentFa != nil {
		fields["content_fa"] = utils.Sanitize(*req.ContentFa)
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	announcement, err := a.store.UpdateAnnouncement(ctx.Request.Context(), id, fields)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update announcement")
		return
	}
	if announcement == nil {
		utils.Error(ctx, http.StatusNotFound, "Announcement not found")
		return
	}
	utils.InvalidateByPrefix("cache:announcements:")
	utils.OK(ctx, announcement)
}

// Delete removes an announcement. Deleting an unknown id succeeds.
func (a *AnnouncementController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := a.store.DeleteAnnouncement(ctx.Request.Context(), id); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to delete announcement")
		return
	}
	utils.InvalidateByPrefix("cache:announcements:")
	utils.OK(ctx, gin.H{"success": true})
}
