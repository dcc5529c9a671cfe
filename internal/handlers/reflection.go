package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/requestdata"
	"github.com/teamtempo/engage-backend/internal/services"
)

type ReflectionHandler struct {
	reflectionService services.ReflectionService
	authzService      services.AuthzService
}

func NewReflectionHandler(reflectionService services.ReflectionService, authzService services.AuthzService) *ReflectionHandler {
	return &ReflectionHandler{reflectionService: reflectionService, authzService: authzService}
}

func (h *ReflectionHandler) CreateReflection(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.authzService.Allow(ctx, services.CapReflect); err != nil {
		RespondServiceError(c, err)
		return
	}
	rd := requestdata.GetRequestData(ctx)

	var req struct {
		SessionID   uuid.UUID `json:"session_id" binding:"required"`
		QuestionID  uuid.UUID `json:"question_id" binding:"required"`
		Description string    `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reflection, err := h.reflectionService.CreateReflection(ctx, rd.UserID, req.SessionID, req.QuestionID, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reflection)
}
