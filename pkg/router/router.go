package router

import (
	"net/http"

	"character-studio/backend/internal/api"
	"character-studio/backend/pkg/config"
	"character-studio/backend/pkg/di"
	"character-studio/backend/pkg/errors"
	"character-studio/backend/pkg/logger"
	"character-studio/backend/pkg/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	logger.SetGlobal(container.Logger)

	cfg := config.Get()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Logger middleware first so every request gets a scoped logger
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware(r.Config.Security.AllowedOrigins))
	r.Engine.Use(bodySizeLimit(r.Config.Security.MaxBodySize))

	characterHandler := api.NewCharacterHandler(r.Container.CharacterService)
	folderHandler := api.NewFolderHandler(r.Container.FolderService)
	relationshipHandler := api.NewRelationshipHandler(r.Container.RelationshipStore, r.Container.CharacterStore)
	ratingHandler := api.NewRatingHandler(r.Container.RatingService)
	shareHandler := api.NewShareHandler(r.Container.CharacterService)
	templateHandler := api.NewTemplateHandler(r.Container.TemplateService)
	statsHandler := api.NewStatsHandler(r.Container.StatsService, r.Container.BackupService)
	feedbackHandler := api.NewFeedbackHandler(r.Container.FeedbackService)
	adminHandler := api.NewAdminHandler(r.Container.CompactService)

	// The rating and feedback relays are throttled; everything else is not.
	limiterOpts := middleware.DefaultRateLimiterOptions()
	limiterOpts.Limit = rate.Limit(r.Config.Security.RateLimit)
	limiterOpts.Burst = r.Config.Security.RateLimitBurst
	throttled := middleware.NewRateLimiter(r.Logger, limiterOpts).Middleware()

	r.setupHealthRoutes()

	v1 := r.Engine.Group("/api/v1")
	{
		characters := v1.Group("/characters")
		{
			characters.POST("", characterHandler.CreateCharacter)
			characters.GET("", characterHandler.ListCharacters)
			characters.GET("/:id", characterHandler.GetCharacter)
			characters.PUT("/:id", characterHandler.UpdateCharacter)
			characters.DELETE("/:id", characterHandler.DeleteCharacter)

			characters.GET("/:id/versions", characterHandler.ListVersions)
			characters.GET("/:id/versions/:versionId", characterHandler.GetVersion)
			characters.POST("/:id/versions/:versionId/restore", characterHandler.RestoreVersion)

			characters.GET("/:id/export", characterHandler.ExportCharacter)
			characters.POST("/:id/rate", throttled, ratingHandler.RateCharacter)
			characters.POST("/:id/share", shareHandler.ShareCharacter)
		}

		v1.GET("/shared/:id", shareHandler.GetShared)

		folders := v1.Group("/folders")
		{
			folders.POST("", folderHandler.CreateFolder)
			folders.GET("", folderHandler.ListFolders)
			folders.PUT("/:id", folderHandler.RenameFolder)
			folders.DELETE("/:id", folderHandler.DeleteFolder)
			folders.POST("/:id/characters", folderHandler.AddCharacter)
			folders.DELETE("/:id/characters/:characterId", folderHandler.RemoveCharacter)
			folders.POST("/:id/reorder", folderHandler.ReorderFolder)
			folders.POST("/:id/resync", folderHandler.ResyncFolder)
			folders.POST("/move", folderHandler.MoveCharacter)
		}

		relationships := v1.Group("/relationships")
		{
			relationships.PUT("", relationshipHandler.SetRelationship)
			relationships.DELETE("", relationshipHandler.RemoveRelationship)
			relationships.GET("", relationshipHandler.GetRelationships)
			relationships.GET("/graph", relationshipHandler.GetGraph)
			relationships.DELETE("/characters/:id", relationshipHandler.RemoveAllForCharacter)
		}

		v1.GET("/templates", templateHandler.ListTemplates)
		v1.POST("/import/bracket", templateHandler.ImportBracket)
		v1.GET("/export/backup", statsHandler.DownloadBackup)
		v1.GET("/stats", statsHandler.GetStats)
		v1.POST("/feedback", throttled, feedbackHandler.PostFeedback)
		v1.POST("/admin/compact", adminHandler.RunCompact)
	}
}

// corsMiddleware allows the browser frontend to call the API directly.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case origin == "":
			origin = "*"
		case !allowAll && !allowed[origin]:
			c.Next()
			return
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, X-CSRF-Token, Origin, X-Request-ID, X-Client-ID")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// bodySizeLimit caps request bodies; oversized payloads fail at bind time.
func bodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
