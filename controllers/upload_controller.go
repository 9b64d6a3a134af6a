package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsguard/vpn-portal/config"
	"github.com/parsguard/vpn-portal/utils"
)

// UploadController stores and removes admin-uploaded images.
type UploadController struct{}

// NewUploadController creates a new UploadController instance.
func NewUploadController() *UploadController {
	return &UploadController{}
}

// Image accepts a multipart upload under the "image" field and returns the
// public URL of the stored file.
func (u *UploadController) Image(ctx *gin.Context) {
	fh, err := ctx.FormFile("image")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "no image uploaded")
		return
	}

	cfg := config.Get()
	name, err := utils.SaveImage(fh, cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		var reject *utils.RejectError
		if errors.As(err, &reject) {
			utils.Error(ctx, http.StatusBadRequest, reject.Reason)
			return
		}
		utils.Sugar.Errorf("failed to store upload: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to store image")
		return
	}

	utils.OK(ctx, gin.H{"url": "/uploads/" + name})
}

// Delete removes a stored image by filename. Deleting a missing file succeeds
// with deleted=false.
func (u *UploadController) Delete(ctx *gin.Context) {
	removed, err := utils.DeleteUpload(config.Get().UploadDir, ctx.Param("filename"))
	if err != nil {
		utils.Sugar.Errorf("failed to delete upload: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to delete image")
		return
	}
	utils.OK(ctx, gin.H{"deleted": removed})
}
