package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vinay0094k/myteamda-withroles-mobile/config"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/api/handler"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/api/middleware"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/jwt"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/response"
)

// Setup builds the gin engine. limiter may be nil when Redis is disabled.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, limiter middleware.RateLimiter, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return nil, err
		}
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.BodyLimit > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	v1.Use(middleware.RateLimit(limiter, cfg.Server.RateLimit.Limit, cfg.Server.RateLimit.Window))
	{
		reviewers := middleware.RoleAuth(model.RoleAdmin, model.RoleHR, model.RoleManager)

		timesheets := v1.Group("/timesheets")
		{
			timesheets.GET("", h.Timesheet.ListEntries)
			timesheets.POST("", h.Timesheet.CreateEntry)
			timesheets.PUT("/:id", h.Timesheet.UpdateEntry)
			timesheets.DELETE("/:id", h.Timesheet.DeleteEntry)
			timesheets.POST("/submit", h.Timesheet.SubmitEntries)
			timesheets.GET("/summary", h.Timesheet.GetSummary)
			timesheets.GET("/weekly", reviewers, h.Timesheet.GetWeeklyReport)
			timesheets.GET("/export", reviewers, h.Export.ExportWorkbook)
			timesheets.GET("/export.ics", h.Export.ExportCalendar)
		}

		v1.GET("/projects", h.Project.ListProjects)
	}

	return r, nil
}
