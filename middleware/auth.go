package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parsguard/vpn-portal/config"
	"github.com/parsguard/vpn-portal/utils"
)

const (
	// ContextAdminIDKey is the key used to store the authenticated admin id in Gin context.
	ContextAdminIDKey = "admin_id"
	// ContextSessionIDKey stores the verified session id inside Gin context.
	ContextSessionIDKey = "session_id"
)

// AuthRequired ensures the request carries a valid signed session cookie
// backed by a live server-side session. The response never reveals whether
// the target resource exists. Valid sessions get their expiry slid forward.
func AuthRequired(sessions utils.SessionStore) gin.HandlerFunc {
	cfg := config.Get()
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour

	return func(ctx *gin.Context) {
		raw, err := ctx.Cookie(utils.SessionCookieName)
		if err != nil || raw == "" {
			utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
			ctx.Abort()
			return
		}

		sid, ok := utils.ParseSessionCookie(raw, cfg.SessionSecret)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
			ctx.Abort()
			return
		}

		adminID, found, err := sessions.Get(ctx.Request.Context(), sid)
		if err != nil || !found {
			utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
			ctx.Abort()
			return
		}

		// 24h sliding window: refresh both the server-side TTL and the cookie.
		_ = sessions.Refresh(ctx.Request.Context(), sid, ttl)
		utils.SetSessionCookie(ctx, sid, ttl)

		ctx.Set(ContextAdminIDKey, adminID)
		ctx.Set(ContextSessionIDKey, sid)
		ctx.Next()
	}
}
