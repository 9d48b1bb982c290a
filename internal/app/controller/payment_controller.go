package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/threadcart/threadcart-backend/internal/app/service"
	apperrors "github.com/threadcart/threadcart-backend/internal/errors"
	"github.com/threadcart/threadcart-backend/internal/middleware"
)

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

type PayForOrderRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// PayForOrder records a payment for an order and confirms it
// POST /api/v1/orders/:id/payment
func (ctrl *PaymentController) PayForOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req PayForOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid payment request", map[string]interface{}{
			"error": err.Error(),
		})
		if fields := apperrors.BindingFields(err); fields != nil {
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment data")
		return
	}

	payment, err := ctrl.paymentService.PayForOrder(userID, uint(orderID), req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrPaymentAlreadyExists):
			apperrors.Conflict(c, apperrors.PaymentAlreadyExists, "Order has already been paid")
		default:
			log.Error("Failed to process payment", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": orderID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "process payment")
		}
		return
	}

	log.Info("Payment recorded", map[string]interface{}{
		"user_id":    userID,
		"order_id":   orderID,
		"payment_id": payment.ID,
		"amount":     payment.Amount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment processed successfully",
		"payment": payment,
	})
}

// GetPaymentForOrder returns the payment recorded for an order
// GET /api/v1/orders/:id/payment
func (ctrl *PaymentController) GetPaymentForOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	payment, err := ctrl.paymentService.GetPaymentForOrder(userID, uint(orderID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrPaymentNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "No payment recorded for this order")
		default:
			log.Error("Failed to get payment", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": orderID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get payment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment": payment,
	})
}

// GetMyPayments lists every payment made by the current user
// GET /api/v1/payments
func (ctrl *PaymentController) GetMyPayments(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	payments, err := ctrl.paymentService.GetUserPayments(userID)
	if err != nil {
		log.Error("Failed to get payments", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"count":    len(payments),
	})
}
