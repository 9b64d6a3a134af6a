package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parsguard/vpn-portal/config"
)

// SessionCookieName is the cookie carrying the signed session id.
const SessionCookieName = "portal_session"

// SignSessionID returns "<sid>.<hmac>" so the cookie cannot be forged without
// the session secret.
func SignSessionID(sid, secret string) string {
	return sid + "." + sessionMAC(sid, secret)
}

// ParseSessionCookie verifies the signature of a cookie value and returns the
// embedded session id.
func ParseSessionCookie(value, secret string) (string, bool) {
	idx := strings.LastIndexByte(value, '.')
	if idx <= 0 || idx == len(value)-1 {
		return "", false
	}
	sid, sig := value[:idx], value[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(sessionMAC(sid, secret))) {
		return "", false
	}
	return sid, true
}

func sessionMAC(sid, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sid))
	return hex.EncodeToString(mac.Sum(nil))
}

// SetSessionCookie writes the signed session cookie. HttpOnly and
// SameSite=Lax always; Secure only in release mode so local development and
// tests work over plain HTTP.
func SetSessionCookie(ctx *gin.Context, sid string, ttl time.Duration) {
	cfg := config.Get()
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, SignSessionID(sid, cfg.SessionSecret),
		int(ttl.Seconds()), "/", "", cfg.GinMode == "release", true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(ctx *gin.Context) {
	cfg := config.Get()
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, "", -1, "/", "", cfg.GinMode == "release", true)
}
