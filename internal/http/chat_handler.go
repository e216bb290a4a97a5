package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pawsitive-coach/internal/domain"
	"pawsitive-coach/internal/repository"
	"pawsitive-coach/internal/service"
)

// ChatHandler mantiene dependencias para los endpoints del chat del coach.
type ChatHandler struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
	chatServ *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	chatServ *service.ChatService,
) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		sessions: sessions,
		chatServ: chatServ,
	}
}

// CreateSession maneja POST /session.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	var req struct {
		AnimalID string `json:"animal_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create session request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    claims.UserID,
		AnimalID:  req.AnimalID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}

	if err := h.sessions.Create(c.Request.Context(), session); err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// PostMessage maneja POST /message.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		AnimalID  string `json:"animal_id"`
		Content   string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	animalID := req.AnimalID
	if animalID == "" && req.SessionID != "" && h.sessions != nil {
		// La sesion puede traer el perro asociado.
		if session, err := h.sessions.GetByID(c.Request.Context(), req.SessionID); err == nil && session.UserID == claims.UserID {
			animalID = session.AnimalID
		}
	}

	reply, err := h.chatServ.Chat(c.Request.Context(), claims.UserID, req.SessionID, animalID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrMessageInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.logger.Error("coach response failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate coach response"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"coach_message": reply.Message,
		"plan_created":  reply.PlanCreated,
		"plan_id":       reply.PlanID,
	})
}
