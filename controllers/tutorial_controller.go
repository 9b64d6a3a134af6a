package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/parsguard/vpn-portal/models"
	"github.com/parsguard/vpn-portal/storage"
	"github.com/parsguard/vpn-portal/utils"
)

var tutorialCategories = map[string]bool{
	models.TutorialCategoryGeneral:         true,
	models.TutorialCategoryBot:             true,
	models.TutorialCategoryTroubleshooting: true,
}

// TutorialController manages CRUD operations for tutorials.
type TutorialController struct {
	store *storage.Storage
}

// NewTutorialController creates a new TutorialController instance.
func NewTutorialController(store *storage.Storage) *TutorialController {
	return &TutorialController{store: store}
}

// List returns tutorials sorted by (order, id). The category and platformId
// query parameters each narrow the listing; when both are present the category
// filter wins.
func (t *TutorialController) List(ctx *gin.Context) {
	filter, cacheKey, ok := t.resolveFilter(ctx)
	if !ok {
		return
	}
	if respondCached(ctx, cacheKey) {
		return
	}
	tutorials, err := t.store.Tutorials(ctx.Request.Context(), filter)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch tutorials")
		return
	}
	cacheAndRespond(ctx, cacheKey, tutorials)
}

func (t *TutorialController) resolveFilter(ctx *gin.Context) (storage.TutorialFilter, string, bool) {
	category := strings.TrimSpace(ctx.Query("category"))
	rawPlatformID := strings.TrimSpace(ctx.Query("platformId"))

	if category != "" {
		if !tutorialCategories[category] {
			utils.Error(ctx, http.StatusBadRequest, "invalid category")
			return storage.TutorialFilter{}, "", false
		}
		return storage.TutorialFilter{Scope: storage.TutorialsByCategory, Category: category},
			"cache:tutorials:list:category=" + category, true
	}
	if rawPlatformID != "" {
		platformID, err := strconv.ParseUint(rawPlatformID, 10, 32)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, "invalid platformId")
			return storage.TutorialFilter{}, "", false
		}
		return storage.TutorialFilter{Scope: storage.TutorialsByPlatform, PlatformID: uint(platformID)},
			fmt.Sprintf("cache:tutorials:list:platform=%d", platformID), true
	}
	return storage.TutorialFilter{Scope: storage.TutorialsAll}, "cache:tutorials:list", true
}

// Get returns a single tutorial.
func (t *TutorialController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	cacheKey := fmt.Sprintf("cache:tutorials:detail:%d", id)
	if respondCached(ctx, cacheKey) {
		return
	}
	tutorial, err := t.store.TutorialByID(ctx.Request.Context(), id)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch tutorial")
		return
	}
	if tutorial == nil {
		utils.Error(ctx, http.StatusNotFound, "Tutorial not found")
		return
	}
	cacheAndRespond(ctx, cacheKey, tutorial)
}

// Create adds a new tutorial. HTML in the content fields is sanitized before
// persisting.
func (t *TutorialController) Create(ctx *gin.Context) {
	var req struct {
		Type       string   `json:"type" binding:"required,oneof=text video"`
		Category   string   `json:"category" binding:"required,oneof=general bot troubleshooting"`
		TitleEn    string   `json:"titleEn" binding:"required"`
		TitleFa    string   `json:"titleFa" binding:"required"`
		ContentEn  *string  `json:"contentEn"`
		ContentFa  *string  `json:"contentFa"`
		VideoURL   *string  `json:"videoUrl"`
		Images     []string `json:"images"`
		PlatformID *uint    `json:"platformId"`
		AppID      *uint    `json:"appId"`
		Order      *int     `json:"order"`
	}
	if !bindJSON(ctx, &req) {
		return
	}
	if !t.validateReferences(ctx, req.PlatformID, req.AppID, "Failed to create tutorial") {
		return
	}

	tutorial := models.Tutorial{
		Type:       req.Type,
		Category:   req.Category,
		TitleEn:    req.TitleEn,
		TitleFa:    req.TitleFa,
		ContentEn:  sanitizeContent(req.ContentEn),
		ContentFa:  sanitizeContent(req.ContentFa),
		VideoURL:   req.VideoURL,
		PlatformID: req.PlatformID,
		AppID:      req.AppID,
	}
	if req.Images != nil {
		tutorial.Images = datatypes.JSONSlice[string](req.Images)
	}
	if req.Order != nil {
		tutorial.Order = *req.Order
	}

	if err := t.store.CreateTutorial(ctx.Request.Context(), &tutorial); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create tutorial")
		return
	}
	utils.InvalidateByPrefix("cache:tutorials:")
	utils.Created(ctx, tutorial)
}

// Update applies a partial update to a tutorial.
func (t *TutorialController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req struct {
		Type       *string  `json:"type" binding:"omitempty,oneof=text video"`
		Category   *string  `json:"category" binding:"omitempty,oneof=general bot troubleshooting"`
		TitleEn    *string  `json:"titleEn" binding:"omitempty,min=1"`
		TitleFa    *string  `json:"titleFa" binding:"omitempty,min=1"`
		ContentEn  *string  `json:"contentEn"`
		ContentFa  *string  `json:"contentFa"`
		VideoURL   *string  `json:"videoUrl"`
		Images     []string `json:"images"`
		PlatformID *uint    `json:"platformId"`
		AppID      *uint    `json:"appId"`
		Order      *int     `json:"order"`
	}
	present, ok := bindPatch(ctx, &req)
	if !ok {
		return
	}
	if !t.validateReferences(ctx, req.PlatformID, req.AppID, "Failed to update tutorial") {
		return
	}

	// Nullable columns distinguish an explicit null (clear) from an omitted
	// field (keep).
	fields := map[string]any{}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.TitleEn != nil {
		fields["title_en"] = *req.TitleEn
	}
	if req.TitleFa != nil {
		fields["title_fa"] = *req.TitleFa
	}
	if req.ContentEn != nil {
		fields["content_en"] = utils.Sanitize(*req.ContentEn)
	} else if sentNull(present, "contentEn") {
		fields["content_en"] = nil
	}
	if req.ContentFa != nil {
		fields["content_fa"] = utils.Sanitize(*req.ContentFa)
	} else if sentNull(present, "contentFa") {
		fields["content_fa"] = nil
	}
	if req.VideoURL != nil {
		fields["video_url"] = *req.VideoURL
	} else if sentNull(present, "videoUrl") {
		fields["video_url"] = nil
	}
	if req.Images != nil {
		fields["images"] = datatypes.JSONSlice[string](req.Images)
	} else if sentNull(present, "images") {
		fields["images"] = nil
	}
	if req.PlatformID != nil {
		fields["platform_id"] = *req.PlatformID
	} else if sentNull(present, "platformId") {
		fields["platform_id"] = nil
	}
	if req.AppID != nil {
		fields["app_id"] = *req.AppID
	} else if sentNull(present, "appId") {
		fields["app_id"] = nil
	}
	if req.Order != nil {
		fields["sort_order"] = *req.Order
	}

	tutorial, err := t.store.UpdateTutorial(ctx.Request.Context(), id, fields)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update tutorial")
		return
	}
	if tutorial == nil {
		utils.Error(ctx, http.StatusNotFound, "Tutorial not found")
		return
	}
	utils.InvalidateByPrefix("cache:tutorials:")
	utils.OK(ctx, tutorial)
}

// Delete removes a tutorial. Deleting an unknown id succeeds.
func (t *TutorialController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := t.store.DeleteTutorial(ctx.Request.Context(), id); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to delete tutorial")
		return
	}
	utils.InvalidateByPrefix("cache:tutorials:")
	utils.OK(ctx, gin.H{"success": true})
}

// validateReferences checks that any supplied platform or application id
// points at an existing row. On failure it writes the response and returns
// false.
func (t *TutorialController) validateReferences(ctx *gin.Context, platformID, appID *uint, failMessage string) bool {
	if platformID != nil {
		platform, err := t.store.PlatformByID(ctx.Request.Context(), *platformID)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, failMessage)
			return false
		}
		if platform == nil {
			utils.FieldErrors(ctx, []utils.FieldError{{Field: "platformId", Message: "referenced platform does not exist"}})
			return false
		}
	}
	if appID != nil {
		app, err := t.store.ApplicationByID(ctx.Request.Context(), *appID)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, failMessage)
			return false
		}
		if app == nil {
			utils.FieldErrors(ctx, []utils.FieldError{{Field: "appId", Message: "referenced application does not exist"}})
			return false
		}
	}
	return true
}

func sanitizeContent(content *string) *string {
	if content == nil {
		return nil
	}
	clean := utils.Sanitize(*content)
	return &clean
}
