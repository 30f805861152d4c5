package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"pingme/backend/internal/models"
)

// ListUsers returns every other user decorated with their online flag from
// the presence registry.
func (h *Handler) ListUsers(c *gin.Context) {
	me := currentUserID(c)

	users, err := h.Storage.ListUsersExcept(me)
	if err != nil {
		h.Log.Error("listing users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	decorated := lo.Map(users, func(u models.User, _ int) models.UserWithPresence {
		return models.UserWithPresence{
			ID:       u.ID,
			Username: u.Username,
			LastSeen: u.LastSeen,
			Online:   h.Hub.Presence.IsOnline(u.ID),
		}
	})

	c.JSON(http.StatusOK, decorated)
}
