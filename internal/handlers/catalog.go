package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/services"
	"github.com/teamtempo/engage-backend/internal/types"
)

type CatalogHandler struct {
	catalogService services.CatalogService
	authzService   services.AuthzService
}

func NewCatalogHandler(catalogService services.CatalogService, authzService services.AuthzService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, authzService: authzService}
}

func (h *CatalogHandler) CreateCollection(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.authzService.Allow(ctx, services.CapManageCatalog); err != nil {
		RespondServiceError(c, err)
		return
	}

	var req struct {
		Label   string            `json:"label" binding:"required"`
		Style   types.AnswerStyle `json:"style"`
		Options []struct {
			Label string `json:"label" binding:"required"`
			Rank  int    `json:"rank"`
		} `json:"options" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	collection := &types.OptionCollection{Label: req.Label, Style: req.Style}
	if collection.Style == "" {
		collection.Style = types.AnswerStyleRadio
	}
	options := make([]*types.AnswerOption, 0, len(req.Options))
	for _, o := range req.Options {
		options = append(options, &types.AnswerOption{Label: o.Label, Rank: o.Rank})
	}

	created, err := h.catalogService.CreateCollection(ctx, collection, options)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler) ListValidOptions(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("collectionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return
	}
	options, err := h.catalogService.ListValidOptions(c.Request.Context(), collectionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"options": options})
}

func (h *CatalogHandler) RetireOption(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.authzService.Allow(ctx, services.CapManageCatalog); err != nil {
		RespondServiceError(c, err)
		return
	}
	optionID, err := uuid.Parse(c.Param("optionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option id"})
		return
	}
	if err := h.catalogService.RetireOption(ctx, optionID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"retired": true})
}
