package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/threadcart/threadcart-backend/internal/app/service"
	apperrors "github.com/threadcart/threadcart-backend/internal/errors"
	"github.com/threadcart/threadcart-backend/internal/middleware"
)

type SellerController struct {
	sellerService service.SellerService
}

func NewSellerController(sellerService service.SellerService) *SellerController {
	return &SellerController{
		sellerService: sellerService,
	}
}

type SellerRequest struct {
	ShopName    string `json:"shop_name" binding:"required"`
	ShopAddress string `json:"shop_address"`
	Contact     string `json:"contact"`
}

// RegisterSeller upgrades the current user to a seller account
// POST /api/v1/sellers
func (ctrl *SellerController) RegisterSeller(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req SellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid seller registration request", map[string]interface{}{
			"error": err.Error(),
		})
		if fields := apperrors.BindingFields(err); fields != nil {
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid seller data")
		return
	}

	seller, err := ctrl.sellerService.RegisterSeller(userID, req.ShopName, req.ShopAddress, req.Contact)
	if err != nil {
		if errors.Is(err, service.ErrSellerAlreadyExists) {
			apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "Seller account already exists")
			return
		}
		log.Error("Failed to register seller", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register seller")
		return
	}

	log.Info("Seller registered", map[string]interface{}{
		"user_id":   userID,
		"seller_id": seller.ID,
		"shop_name": seller.ShopName,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Seller registered successfully",
		"seller":  seller,
	})
}

// GetMyShop returns the current user's seller record
// GET /api/v1/sellers/me
func (ctrl *SellerController) GetMyShop(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	seller, err := ctrl.sellerService.GetSellerByUserID(userID)
	if err != nil {
		if errors.Is(err, service.ErrSellerNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Seller account not found")
			return
		}
		log.Error("Failed to get seller", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get seller")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"seller": seller,
	})
}

// UpdateMyShop updates the current user's seller record
// PUT /api/v1/sellers/me
func (ctrl *SellerController) UpdateMyShop(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req SellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid seller update request", map[string]interface{}{
			"error": err.Error(),
		})
		if fields := apperrors.BindingFields(err); fields != nil {
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid seller data")
		return
	}

	seller, err := ctrl.sellerService.UpdateSeller(userID, req.ShopName, req.ShopAddress, req.Contact)
	if err != nil {
		if errors.Is(err, service.ErrSellerNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Seller account not found")
			return
		}
		log.Error("Failed to update seller", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update seller")
		return
	}

	log.Info("Seller updated", map[string]interface{}{
		"user_id":   userID,
		"seller_id": seller.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Seller updated successfully",
		"seller":  seller,
	})
}
