package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/requestdata"
	"github.com/teamtempo/engage-backend/internal/services"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
	authzService     services.AuthzService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, authzService services.AuthzService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, authzService: authzService}
}

func (h *AnalyticsHandler) SessionChart(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.authzService.Allow(ctx, services.CapViewCharts); err != nil {
		RespondServiceError(c, err)
		return
	}
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	rd := requestdata.GetRequestData(ctx)
	point, err := h.analyticsService.SessionChart(ctx, rd.CompanyID, sessionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, point)
}

// CompanyChart serves the caller's own company rollup; the company id comes
// from the authenticated membership, never from the request.
func (h *AnalyticsHandler) CompanyChart(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.authzService.Allow(ctx, services.CapViewCharts); err != nil {
		RespondServiceError(c, err)
		return
	}
	rd := requestdata.GetRequestData(ctx)
	if rd.CompanyID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "caller has no company membership"})
		return
	}
	point, err := h.analyticsService.CompanyChart(ctx, rd.CompanyID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, point)
}
