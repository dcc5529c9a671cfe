package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/requestdata"
	"github.com/teamtempo/engage-backend/internal/services"
	"github.com/teamtempo/engage-backend/internal/types"
)

type SessionHandler struct {
	sessionService services.SessionService
	authzService   services.AuthzService
}

func NewSessionHandler(sessionService services.SessionService, authzService services.AuthzService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, authzService: authzService}
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.authzService.Allow(ctx, services.CapCreateSession); err != nil {
		RespondServiceError(c, err)
		return
	}
	rd := requestdata.GetRequestData(ctx)

	var req struct {
		SetID   uuid.UUID `json:"set_id" binding:"required"`
		ThemeID uuid.UUID `json:"theme_id" binding:"required"`
		Start   time.Time `json:"start" binding:"required"`
		Until   time.Time `json:"until" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session := &types.Session{
		SetID:     req.SetID,
		ThemeID:   req.ThemeID,
		CompanyID: rd.CompanyID,
		Start:     req.Start,
		Until:     req.Until,
	}
	created, err := h.sessionService.CreateSession(ctx, session)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	rd := requestdata.GetRequestData(ctx)
	session, err := h.sessionService.GetSession(ctx, rd.CompanyID, sessionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, session)
}

func (h *SessionHandler) ListQuestions(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	rd := requestdata.GetRequestData(ctx)
	questions, err := h.sessionService.ListQuestions(ctx, rd.CompanyID, sessionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, questions)
}
