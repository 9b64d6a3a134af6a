package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parsguard/vpn-portal/config"
	"github.com/parsguard/vpn-portal/controllers"
	"github.com/parsguard/vpn-portal/middleware"
	"github.com/parsguard/vpn-portal/storage"
	"github.com/parsguard/vpn-portal/utils"
)

// SetupRouter wires middlewares, static serving and all API routes.
func SetupRouter(db *gorm.DB, sessions utils.SessionStore) *gin.Engine {
	cfg := config.Get()

	switch cfg.GinMode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Access log goes to its own rotated file, separate from the app log.
	if accessLogger, err := utils.NewRollingFileLogger(
		cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress,
	); err == nil {
		router.Use(utils.Ginzap(accessLogger, time.RFC3339, true))
		router.Use(utils.RecoveryWithZap(accessLogger, true))
	} else {
		utils.Sugar.Errorf("access logger unavailable, falling back to gin defaults: %v", err)
		router.Use(gin.Logger(), gin.Recovery())
	}

	router.Use(corsMiddleware(cfg.AllowedOrigins))

	store := storage.New(db)
	auth := controllers.NewAuthController(store, sessions)
	platforms := controllers.NewPlatformController(store)
	applications := controllers.NewApplicationController(store)
	tutorials := controllers.NewTutorialController(store)
	announcements := controllers.NewAnnouncementController(store)
	uploads := controllers.NewUploadController()
	stats := controllers.NewStatsController(store)

	guard := middleware.AuthRequired(sessions)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.Static("/uploads", cfg.UploadDir)
	registerSPA(router)

	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth", middleware.RateLimitMiddleware())
		{
			authGroup.POST("/login", auth.Login)
			authGroup.POST("/logout", auth.Logout)
			authGroup.GET("/me", auth.Me)
			authGroup.PATCH("/username", guard, auth.UpdateUsername)
			authGroup.PATCH("/password", guard, auth.UpdatePassword)
		}

		api.GET("/platforms", platforms.List)
		api.GET("/platforms/:id", platforms.Get)
		api.POST("/platforms", guard, platforms.Create)
		api.PATCH("/platforms/:id", guard, platforms.Update)
		api.DELETE("/platforms/:id", guard, platforms.Delete)

		api.GET("/applications", applications.List)
		api.GET("/applications/:id", applications.Get)
		api.POST("/applications", guard, applications.Create)
		api.PATCH("/applications/:id", guard, applications.Update)
		api.DELETE("/applications/:id", guard, applications.Delete)

		api.GET("/tutorials", tutorials.List)
		api.GET("/tutorials/:id", tutorials.Get)
		api.POST("/tutorials", guard, tutorials.Create)
		api.PATCH("/tutorials/:id", guard, tutorials.Update)
		api.DELETE("/tutorials/:id", guard, tutorials.Delete)

		api.GET("/announcements", announcements.List)
		api.GET("/announcements/:id", announcements.Get)
		api.POST("/announcements", guard, announcements.Create)
		api.PATCH("/announcements/:id", guard, announcements.Update)
		api.DELETE("/announcements/:id", guard, announcements.Delete)

		api.POST("/upload/image", guard, uploads.Image)
		api.DELETE("/upload/image/:filename", guard, uploads.Delete)

		api.GET("/stats", guard, stats.Overview)
	}

	return router
}

// corsMiddleware allows credentials only for an explicit origin list. With a
// wildcard the cors package forbids credentialed requests, so the two modes
// are configured separately.
func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: true,
	}
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
			break
		}
	}
	if wildcard {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

// registerSPA serves the built admin frontend from ./static when it exists.
// Unknown non-API paths fall back to index.html so client-side routing works.
func registerSPA(router *gin.Engine) {
	const staticDir = "./static"
	index := filepath.Join(staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		router.NoRoute(func(ctx *gin.Context) {
			utils.Error(ctx, http.StatusNotFound, "Not found")
		})
		return
	}

	router.Static("/assets", filepath.Join(staticDir, "assets"))
	router.StaticFile("/", index)
	router.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") || strings.HasPrefix(ctx.Request.URL.Path, "/uploads/") {
			utils.Error(ctx, http.StatusNotFound, "Not found")
			return
		}
		ctx.File(index)
	})
}
