package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"

	"agency-support-chat/internal/auth"
	"agency-support-chat/internal/config"
	"agency-support-chat/internal/queue"
	"agency-support-chat/internal/session"
	"agency-support-chat/internal/vectorstore"
	"agency-support-chat/middleware"
	"agency-support-chat/models"
	"agency-support-chat/utils"
)

// SetupAdminRoutes mounts the operator surface: login plus corpus
// management. Only mounted when an admin password hash is configured.
func SetupAdminRoutes(router *gin.Engine, cfg *config.Config, store vectorstore.Store, sessions *session.Store, asynqClient *asynq.Client, authMiddleware *middleware.AuthMiddleware) {
	router.POST("/api/admin/login", func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		if req.Username != cfg.AdminUsername ||
			bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(req.Password)) != nil {
			utils.RespondWithUnauthorized(c, "Invalid credentials")
			return
		}

		token, err := auth.IssueToken(req.Username, cfg.JWTSecret, cfg.JWTExpiresIn)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to issue token", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"expires_in": cfg.JWTExpiresIn,
		})
	})

	admin := router.Group("/api/admin")
	admin.Use(authMiddleware.RequireAdmin())

	// Re-embedding runs on the worker, off the request path.
	admin.POST("/reindex", func(c *gin.Context) {
		force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))

		task, err := queue.NewReindexTask(force)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to create reindex task", nil)
			return
		}
		info, err := asynqClient.Enqueue(task)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to enqueue reindex task", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"task_id": info.ID,
			"queue":   info.Queue,
			"force":   force,
		})
	})

	admin.GET("/corpus", func(c *gin.Context) {
		records, err := store.All(c.Request.Context())
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to list corpus", gin.H{"error": err.Error()})
			return
		}

		indexed := 0
		for _, rec := range records {
			if len(rec.Embedding) > 0 {
				indexed++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"chunks":  records,
			"total":   len(records),
			"indexed": indexed,
		})
	})

	admin.GET("/stats", func(c *gin.Context) {
		populated, err := store.IsPopulated(c.Request.Context())
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to query store", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"store_populated": populated,
			"live_sessions":   sessions.Len(),
		})
	})
}
