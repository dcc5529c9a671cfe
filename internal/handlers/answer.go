package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/requestdata"
	"github.com/teamtempo/engage-backend/internal/services"
)

type AnswerHandler struct {
	answerService services.AnswerService
	authzService  services.AuthzService
}

func NewAnswerHandler(answerService services.AnswerService, authzService services.AuthzService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService, authzService: authzService}
}

func (h *AnswerHandler) RecordAnswer(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.authzService.Allow(ctx, services.CapRecordAnswer); err != nil {
		RespondServiceError(c, err)
		return
	}
	rd := requestdata.GetRequestData(ctx)

	var req struct {
		QuestionID uuid.UUID `json:"question_id" binding:"required"`
		SessionID  uuid.UUID `json:"session_id" binding:"required"`
		OptionID   uuid.UUID `json:"option_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.answerService.RecordAnswer(ctx, rd.UserID, req.QuestionID, req.SessionID, req.OptionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *AnswerHandler) RecordStimulationAnswer(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.authzService.Allow(ctx, services.CapRecordAnswer); err != nil {
		RespondServiceError(c, err)
		return
	}
	rd := requestdata.GetRequestData(ctx)

	var req struct {
		StimulationID uuid.UUID `json:"stimulation_id" binding:"required"`
		OptionID      uuid.UUID `json:"option_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.answerService.RecordStimulationAnswer(ctx, rd.UserID, req.StimulationID, req.OptionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}
