package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agency-support-chat/internal/chat"
	"agency-support-chat/internal/session"
	"agency-support-chat/models"
	"agency-support-chat/utils"
)

const maxMessageLength = 1000

func SetupChatRoutes(router *gin.Engine, engine *chat.Engine, sessions *session.Store) {
	api := router.Group("/api/chat")

	api.POST("/send", func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		message := strings.TrimSpace(req.Message)
		if message == "" {
			utils.RespondWithBadRequest(c, "Message must not be empty", nil)
			return
		}
		if len(message) > maxMessageLength {
			utils.RespondWithBadRequest(c, "Message exceeds maximum length", gin.H{
				"max_length": maxMessageLength,
				"length":     len(message),
			})
			return
		}
		if req.SessionID != "" {
			if _, err := uuid.Parse(req.SessionID); err != nil {
				utils.RespondWithBadRequest(c, "Invalid session id", nil)
				return
			}
		}

		result := engine.HandleTurn(c.Request.Context(), message, req.SessionID)

		c.JSON(http.StatusOK, models.ChatResponse{
			Success:     true,
			Message:     result.Message,
			SessionID:   result.SessionID,
			Intent:      string(result.Intent),
			ContextUsed: result.ContextUsed,
		})
	})

	api.GET("/session/:session_id", func(c *gin.Context) {
		sess := sessions.History(c.Param("session_id"))
		if sess == nil {
			utils.RespondWithNotFound(c, "Session not found")
			return
		}

		c.JSON(http.StatusOK, models.SessionHistoryResponse{
			ID:           sess.ID,
			Messages:     sess.Messages,
			CreatedAt:    sess.CreatedAt.Format(time.RFC3339),
			LastActivity: sess.LastActivity.Format(time.RFC3339),
		})
	})

	api.DELETE("/session/:session_id", func(c *gin.Context) {
		deleted := sessions.Delete(c.Param("session_id"))
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"deleted": deleted,
		})
	})
}
