package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parsguard/vpn-portal/config"
	"github.com/parsguard/vpn-portal/storage"
	"github.com/parsguard/vpn-portal/utils"
)

// invalidCredentials is shared by the unknown-user and wrong-password paths so
// responses never reveal whether a username exists.
const invalidCredentials = "Invalid credentials"

// AuthController handles admin login, logout, identity and credential changes.
type AuthController struct {
	store    *storage.Storage
	sessions utils.SessionStore
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(store *storage.Storage, sessions utils.SessionStore) *AuthController {
	return &AuthController{store: store, sessions: sessions}
}

func sessionTTL() time.Duration {
	return time.Duration(config.Get().SessionTTLHours) * time.Hour
}

// Login verifies a username/password pair and establishes a session.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	admin, err := a.store.AdminByUsername(ctx.Request.Context(), req.Username)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Login failed")
		return
	}
	if admin == nil || !utils.CheckPassword(admin.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, invalidCredentials)
		return
	}

	sid := utils.NewSessionID()
	ttl := sessionTTL()
	if err := a.sessions.Set(ctx.Request.Context(), sid, admin.ID, ttl); err != nil {
		utils.Sugar.Errorf("failed to establish session: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Login failed")
		return
	}
	utils.SetSessionCookie(ctx, sid, ttl)

	utils.OK(ctx, gin.H{"id": admin.ID, "username": admin.Username})
}

// Logout destroys the server-side session. It is idempotent and public: an
// anonymous caller gets the same success response.
func (a *AuthController) Logout(ctx *gin.Context) {
	if raw, err := ctx.Cookie(utils.SessionCookieName); err == nil && raw != "" {
		if sid, ok := utils.ParseSessionCookie(raw, config.Get().SessionSecret); ok {
			_ = a.sessions.Destroy(ctx.Request.Context(), sid)
		}
	}
	utils.ClearSessionCookie(ctx)
	utils.OK(ctx, gin.H{"success": true})
}

// Me returns the current admin identity, or 401 when anonymous.
func (a *AuthController) Me(ctx *gin.Context) {
	adminID, ok := a.resolveSession(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Not authenticated")
		return
	}
	admin, err := a.store.AdminByID(ctx.Request.Context(), adminID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to load identity")
		return
	}
	if admin == nil {
		utils.Error(ctx, http.StatusUnauthorized, "Not authenticated")
		return
	}
	utils.OK(ctx, gin.H{"id": admin.ID, "username": admin.Username})
}

// UpdateUsername renames the authenticated admin after confirming the current
// password.
func (a *AuthController) UpdateUsername(ctx *gin.Context) {
	var req struct {
		Username        string `json:"username" binding:"required,min=3,max=64"`
		CurrentPassword string `json:"currentPassword" binding:"required"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	adminID, ok := currentAdminID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}
	admin, err := a.store.AdminByID(ctx.Request.Context(), adminID)
	if err != nil || admin == nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update username")
		return
	}
	if !utils.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		utils.Error(ctx, http.StatusUnauthorized, invalidCredentials)
		return
	}

	if existing, err := a.store.AdminByUsername(ctx.Request.Context(), req.Username); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update username")
		return
	} else if existing != nil && existing.ID != admin.ID {
		utils.Error(ctx, http.StatusBadRequest, "Username is already taken")
		return
	}

	updated, err := a.store.UpdateAdminUsername(ctx.Request.Context(), adminID, req.Username)
	if err != nil || updated == nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update username")
		return
	}
	utils.OK(ctx, gin.H{"id": updated.ID, "username": updated.Username})
}

// UpdatePassword re-hashes and persists a new password after confirming the
// current one. Existing sessions stay valid.
func (a *AuthController) UpdatePassword(ctx *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	adminID, ok := currentAdminID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}
	admin, err := a.store.AdminByID(ctx.Request.Context(), adminID)
	if err != nil || admin == nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update password")
		return
	}
	if !utils.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		utils.Error(ctx, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update password")
		return
	}
	if err := a.store.UpdateAdminPassword(ctx.Request.Context(), adminID, hash); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update password")
		return
	}
	utils.OK(ctx, gin.H{"success": true})
}

// resolveSession validates the session cookie outside the auth guard (used by
// Me, which is a public route that answers 401 for anonymous callers).
func (a *AuthController) resolveSession(ctx *gin.Context) (uint, bool) {
	raw, err := ctx.Cookie(utils.SessionCookieName)
	if err != nil || raw == "" {
		return 0, false
	}
	sid, ok := utils.ParseSessionCookie(raw, config.Get().SessionSecret)
	if !ok {
		return 0, false
	}
	adminID, found, err := a.sessions.Get(ctx.Request.Context(), sid)
	if err != nil || !found {
		return 0, false
	}
	return adminID, true
}
