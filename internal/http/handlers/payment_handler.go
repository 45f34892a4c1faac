package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/seeforge-backend/internal/dto"
	"github.com/ignatzorin/seeforge-backend/internal/http/handlers/common"
	"github.com/ignatzorin/seeforge-backend/internal/service"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateOrder POST /api/payments/create-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	var req dto.CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}

	order, err := h.payments.CreateOrder(c.Request.Context(), userID, req.Amount, req.Currency, req.ProjectID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentOrderResponse{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Status:   order.Status,
	})
}

// Verify POST /api/payments/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}

	status, err := h.payments.Verify(c.Request.Context(), userID, req.OrderID, req.PaymentID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentVerificationResponse{
		Status:    status,
		PaymentID: req.PaymentID,
	})
}
