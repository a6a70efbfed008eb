package routes

import (
	"stickyflow-backend/internal/config"
	"stickyflow-backend/internal/handlers"
	"stickyflow-backend/internal/middleware"
	"stickyflow-backend/internal/services"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Frontend.BaseURL))
	router.Use(middleware.RateLimitMiddleware(60))

	ipResolver := services.NewIPLookupClient(cfg.IPLookup.URL, time.Duration(cfg.IPLookup.TimeoutSeconds)*time.Second)
	collector := services.NewVisitorCollector(ipResolver)
	consentService := services.NewConsentService(services.NewGormConsentStore(db))

	noteService := services.NewNoteService(db)
	helpService := services.NewHelpService(db)
	visitorService := services.NewVisitorService(db, collector, consentService)
	uploadService := services.NewUploadService(cfg)

	noteHandler := handlers.NewNoteHandler(noteService)
	helpHandler := handlers.NewHelpHandler(helpService)
	visitorHandler := handlers.NewVisitorHandler(visitorService, consentService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	adminHandler := handlers.NewAdminHandler(cfg)

	api := router.Group("/api")

	public := api.Group("")
	{
		notes := public.Group("/notes")
		{
			notes.GET("", noteHandler.GetNotes)
			notes.GET("/stream", noteHandler.StreamNotes)
		}

		help := public.Group("/help")
		{
			help.GET("", helpHandler.GetHelp)
			help.GET("/stream", helpHandler.StreamHelp)
		}

		visitors := public.Group("/visitors")
		{
			visitors.POST("", visitorHandler.Register)
			visitors.GET("/consent/:clientId", visitorHandler.GetConsent)
			visitors.DELETE("/consent/:clientId", visitorHandler.ClearConsent)
		}

		public.POST("/admin/login", adminHandler.Login)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminMiddleware(cfg))
	{
		admin.POST("/notes", noteHandler.CreateNote)
		admin.DELETE("/notes/:id", noteHandler.DeleteNote)

		admin.PUT("/help", helpHandler.UpdateHelp)

		admin.GET("/visitors", visitorHandler.GetVisitors)
		admin.GET("/visitors/stream", visitorHandler.StreamVisitors)
		admin.DELETE("/visitors/:id", visitorHandler.DeleteVisitor)

		admin.POST("/uploads", uploadHandler.UploadImage)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "服务运行正常",
		})
	})

	return router
}
