package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parsguard/vpn-portal/models"
	"github.com/parsguard/vpn-portal/storage"
	"github.com/parsguard/vpn-portal/utils"
)

// ApplicationController manages CRUD operations for VPN client applications.
type ApplicationController struct {
	store *storage.Storage
}

// NewApplicationController creates a new ApplicationController instance.
func NewApplicationController(store *storage.Storage) *ApplicationController {
	return &ApplicationController{store: store}
}

// List returns applications sorted by (order, id), optionally filtered by the
// platformId query parameter.
func (a *ApplicationController) List(ctx *gin.Context) {
	rawPlatformID := strings.TrimSpace(ctx.Query("platformId"))

	var (
		apps []models.Application
		err  error
	)
	cacheKey := "cache:applications:list"
	if rawPlatformID != "" {
		platformID, perr := strconv.ParseUint(rawPlatformID, 10, 32)
		if perr != nil {
			utils.Error(ctx, http.StatusBadRequest, "invalid platformId")
			return
		}
		cacheKey = fmt.Sprintf("cache:applications:list:platform=%d", platformID)
		if respondCached(ctx, cacheKey) {
			return
		}
		apps, err = a.store.ApplicationsByPlatform(ctx.Request.Context(), uint(platformID))
	} else {
		if respondCached(ctx, cacheKey) {
			return
		}
		apps, err = a.store.Applications(ctx.Request.Context())
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}
	cacheAndRespond(ctx, cacheKey, apps)
}

// Get returns a single application.
func (a *ApplicationController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	cacheKey := fmt.Sprintf("cache:applications:detail:%d", id)
	if respondCached(ctx, cacheKey) {
		return
	}
	app, err := a.store.ApplicationByID(ctx.Request.Context(), id)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch application")
		return
	}
	if app == nil {
		utils.Error(ctx, http.StatusNotFound, "Application not found")
		return
	}
	cacheAndRespond(ctx, cacheKey, app)
}

// Create adds a new application under an existing platform.
func (a *ApplicationController) Create(ctx *gin.Context) {
	var req struct {
		PlatformID    uint    `json:"platformId" binding:"required"`
		NameEn        string  `json:"nameEn" binding:"required"`
		NameFa        string  `json:"nameFa" binding:"required"`
		DescriptionEn *string `json:"descriptionEn"`
		DescriptionFa *string `json:"descriptionFa"`
		DownloadLink  string  `json:"downloadLink" binding:"required"`
		Version       *string `json:"version"`
		Order         *int    `json:"order"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	platform, err := a.store.PlatformByID(ctx.Request.Context(), req.PlatformID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create application")
		return
	}
	if platform == nil {
		utils.FieldErrors(ctx, []utils.FieldError{{Field: "platformId", Message: "referenced platform does not exist"}})
		return
	}

	app := models.Application{
		PlatformID:    req.PlatformID,
		NameEn:        req.NameEn,
		NameFa:        req.NameFa,
		DescriptionEn: req.DescriptionEn,
		DescriptionFa: req.DescriptionFa,
		DownloadLink:  req.DownloadLink,
		Version:       req.Version,
	}
	if req.Order != nil {
		app.Order = *req.Order
	}

	if err := a.store.CreateApplication(ctx.Request.Context(), &app); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create application")
		return
	}
	utils.InvalidateByPrefix("cache:applications:")
	utils.Created(ctx, app)
}

// Update applies a partial update to an application.
func (a *ApplicationController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req struct {
		PlatformID    *uint   `json:"platformId"`
		NameEn        *string `json:"nameEn" binding:"omitempty,min=1"`
		NameFa        *string `json:"nameFa" binding:"omitempty,min=1"`
		DescriptionEn *string `json:"descriptionEn"`
		DescriptionFa *string `json:"descriptionFa"`
		DownloadLink  *string `json:"downloadLink" binding:"omitempty,min=1"`
		Version       *string `json:"version"`
		Order         *int    `json:"order"`
	}
	present, ok := bindPatch(ctx, &req)
	if !ok {
		return
	}

	if req.PlatformID != nil {
		platform, err := a.store.PlatformByID(ctx.Request.Context(), *req.PlatformID)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, "Failed to update application")
			return
		}
		if platform == nil {
			utils.FieldErrors(ctx, []utils.FieldError{{Field: "platformId", Message: "referenced platform does not exist"}})
			return
		}
	}

	// Nullable columns distinguish an explicit null (clear) from an omitted
	// field (keep).
	fields := map[string]any{}
	if req.PlatformID != nil {
		fields["platform_id"] = *req.PlatformID
	}
	if req.NameEn != nil {
		fields["name_en"] = *req.NameEn
	}
	if req.NameFa != nil {
		fields["name_fa"] = *req.NameFa
	}
	if req.DescriptionEn != nil {
		fields["description_en"] = *req.DescriptionEn
	} else if sentNull(present, "descriptionEn") {
		fields["description_en"] = nil
	}
	if req.DescriptionFa != nil {
		fields["description_fa"] = *req.DescriptionFa
	} else if sentNull(present, "descriptionFa") {
		fields["description_fa"] = nil
	}
	if req.DownloadLink != nil {
		fields["download_link"] = *req.DownloadLink
	}
	if req.Version != nil {
		fields["version"] = *req.Version
	} else if sentNull(present, "version") {
		fields["version"] = nil
	}
	if req.Order != nil {
		fields["sort_order"] = *req.Order
	}

	app, err := a.store.UpdateApplication(ctx.Request.Context(), id, fields)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update application")
		return
	}
	if app == nil {
		utils.Error(ctx, http.StatusNotFound, "Application not found")
		return
	}
	utils.InvalidateByPrefix("cache:applications:")
	utils.OK(ctx, app)
}

// Delete removes an application and clears tutorial references to it.
// Deleting an unknown id succeeds.
func (a *ApplicationController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := a.store.DeleteApplication(ctx.Request.Context(), id); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to delete application")
		return
	}
	utils.InvalidateByPrefix("cache:applications:")
	utils.InvalidateByPrefix("cache:tutorials:")
	utils.OK(ctx, gin.H{"success": true})
}
