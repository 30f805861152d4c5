package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetConversationMessages resolves the conversation between the caller and
// the user in the path (creating it if this is their first contact) and
// returns its full history oldest-first. This is the reconciliation source
// for clients that were offline for any of the live events.
func (h *Handler) GetConversationMessages(c *gin.Context) {
	me := currentUserID(c)
	other := c.Param("userId")
	if other == "" || other == me {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user"})
		return
	}

	convo, err := h.Storage.GetOrCreateConversation(me, other)
	if err != nil {
		h.Log.Error("resolving conversation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	msgs, err := h.Storage.GetMessages(convo.ID)
	if err != nil {
		h.Log.Error("loading messages", zap.String("conversation_id", convo.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversationId": convo.ID,
		"messages":       msgs,
	})
}
