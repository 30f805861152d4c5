package handler

import (
	"go.uber.org/zap"

	"pingme/backend/internal/auth"
	"pingme/backend/internal/chathub"
	"pingme/backend/internal/storage"
)

// Handler carries the dependencies shared by every HTTP endpoint.
type Handler struct {
	Hub     *chathub.Manager
	Storage storage.Storage
	Tokens  *auth.TokenService
	Log     *zap.Logger
}

func NewHandler(hub *chathub.Manager, s storage.Storage, tokens *auth.TokenService, log *zap.Logger) *Handler {
	return &Handler{Hub: hub, Storage: s, Tokens: tokens, Log: log}
}
