package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/onthi-app/onthi-backend/internal/config"
	"github.com/onthi-app/onthi-backend/internal/handler"
	"github.com/onthi-app/onthi-backend/internal/middleware"
	"github.com/onthi-app/onthi-backend/internal/model"
	"github.com/onthi-app/onthi-backend/internal/response"
	"github.com/onthi-app/onthi-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	RefData      *handler.RefDataHandler
	Exam         *handler.ExamHandler
	Notification *handler.NotificationHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/google/mobile", handlers.Auth.GoogleLogin)
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
	}

	// ─── 2. Public Catalog Group (No Auth) ─────────────────────────────
	// Reference data and the exam catalog are readable without a token so
	// the app works before login.
	public := router.Group("/api/v1")
	{
		public.GET("/subjects", handlers.RefData.List(model.CollectionSubjects))
		public.GET("/subjects/active", handlers.RefData.ListActive(model.CollectionSubjects))
		public.GET("/grade-levels", handlers.RefData.List(model.CollectionGradeLevels))
		public.GET("/grade-levels/active", handlers.RefData.ListActive(model.CollectionGradeLevels))
		public.GET("/exam-types", handlers.RefData.List(model.CollectionExamTypes))
		public.GET("/exam-types/active", handlers.RefData.ListActive(model.CollectionExamTypes))

		public.GET("/exams", handlers.Exam.List)
		public.GET("/exams/:id", handlers.Exam.Get)
	}

	// ─── 3. User Group (JWT + Session) ─────────────────────────────────
	userAPI := router.Group("/api/v1")
	userAPI.Use(
		middleware.RequireAuth(authService),
		middleware.CheckSession(authService),
	)
	{
		userAPI.GET("/users/me", handlers.User.Me)
		userAPI.PUT("/users/me", handlers.User.UpdateProfile)

		userAPI.POST("/exams", handlers.Exam.Create)
		userAPI.DELETE("/exams/:id", handlers.Exam.Delete)
		userAPI.GET("/exams/:id/export/pdf", handlers.Exam.ExportPDF)
		userAPI.GET("/exams/:id/export/xlsx", handlers.Exam.ExportXLSX)

		userAPI.GET("/notifications", handlers.Notification.List)
		userAPI.GET("/notifications/unread-count", handlers.Notification.UnreadCount)
		userAPI.PUT("/notifications/read-all", handlers.Notification.MarkAllRead)
		userAPI.PUT("/notifications/:id/read", handlers.Notification.MarkRead)
	}

	// ─── 4. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/notifications", handlers.WS.NotificationStream)
	}

	// ─── 5. Admin Group (JWT + admin role) ─────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdmin(authService))
	{
		refRoutes := []struct {
			path string
			coll model.RefCollection
		}{
			{"/subjects", model.CollectionSubjects},
			{"/grade-levels", model.CollectionGradeLevels},
			{"/exam-types", model.CollectionExamTypes},
		}
		for _, r := range refRoutes {
			adminAPI.POST(r.path, handlers.RefData.Create(r.coll))
			adminAPI.PUT(r.path+"/:id", handlers.RefData.Update(r.coll))
			adminAPI.DELETE(r.path+"/:id", handlers.RefData.Delete(r.coll))
		}

		adminAPI.POST("/notifications", handlers.Notification.Publish)
	}

	return router
}
