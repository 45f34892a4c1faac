package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/seeforge-backend/internal/dto"
	"github.com/ignatzorin/seeforge-backend/internal/http/handlers/common"
	"github.com/ignatzorin/seeforge-backend/internal/pricing"
)

type PricingHandler struct {
	engine *pricing.Engine
}

func NewPricingHandler(engine *pricing.Engine) *PricingHandler {
	return &PricingHandler{engine: engine}
}

// Calculate POST /api/pricing/calculate
func (h *PricingHandler) Calculate(c *gin.Context) {
	var req dto.CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.engine.Calculate(pricing.Input{
		Tier:      req.Tier,
		Addons:    req.Addons,
		Features:  req.Features,
		IsStudent: req.IsStudent,
	}))
}

// Tables GET /api/pricing/tables
func (h *PricingHandler) Tables(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Table())
}
