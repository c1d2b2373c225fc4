package handlers

import (
	"net/http"

	"smartq/internal/auth"
	"smartq/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter собирает gin-движок со всеми маршрутами API.
func NewRouter(h *Handler, allowOrigins []string) *gin.Engine {
	r := gin.Default()

	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := auth.AuthMiddleware(h.Tokens)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.RefreshToken)
		authGroup.POST("/logout", h.Logout)
	}

	queues := r.Group("/api/queues")
	{
		queues.GET("", h.ListQueuesHandler)
		queues.GET("/:id/status", h.GetQueueStatusHandler)
		queues.GET("/:id/ws", h.QueueWebSocketHandler)
		queues.POST("/:id/refresh", requireAuth, h.RefreshQueueHandler)
		queues.POST("/:id/entries/:entryId/emergency", requireAuth, h.RequestEmergencyHandler)
	}

	r.POST("/api/bookings", requireAuth, h.ConfirmBookingHandler)

	wl := r.Group("/api/waitlist", requireAuth)
	{
		wl.GET("", h.ListWaitlistHandler)
		wl.POST("", h.JoinWaitlistHandler)
		wl.DELETE("/:id", h.CancelWaitlistHandler)
		wl.PATCH("/:id/auto-book", h.SetAutoBookHandler)
	}
	r.GET("/api/catalog/:collection", h.GetCatalogHandler)

	profile := r.Group("/profile", requireAuth)
	{
		profile.GET("/queues", h.GetUserQueuesHandler)
		profile.GET("/preferences", h.GetPreferencesHandler)
		profile.PUT("/preferences", h.PutPreferencesHandler)
	}

	admin := r.Group("/api/admin", requireAuth, auth.RequireRole(models.RoleAdmin))
	{
		admin.POST("/queues", h.CreateQueueHandler)
		admin.PATCH("/queues/:id/entries/:entryId/status", h.UpdateEntryStatusHandler)
		admin.POST("/queues/:id/entries/:entryId/emergency/approve", h.ApproveEmergencyHandler)
		admin.POST("/queues/:id/entries/:entryId/emergency/deny", h.DenyEmergencyHandler)
		admin.GET("/queues/:id/stats", h.QueueStatsHandler)
		admin.POST("/tick", h.TriggerTickHandler)
	}

	return r
}
