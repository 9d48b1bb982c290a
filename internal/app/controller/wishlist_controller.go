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

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type AddToWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist returns the current user's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	wishlist, err := ctrl.wishlistService.GetUserWishlist(userID)
	if err != nil {
		log.Error("Failed to get wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist": wishlist,
	})
}

// AddToWishlist adds a product to the wishlist.
// Adding a product already on the list is a no-op.
// POST /api/v1/wishlist/items
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid wishlist request", map[string]interface{}{
			"error": err.Error(),
		})
		if fields := apperrors.BindingFields(err); fields != nil {
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid wishlist item data")
		return
	}

	added, err := ctrl.wishlistService.AddToWishlist(userID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add item to wishlist", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add to wishlist")
		return
	}

	log.Info("Wishlist add processed", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"added":      added,
	})

	message := "Item added to wishlist"
	if !added {
		message = "Item already on wishlist"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"added":   added,
	})
}

// CheckWishlistItem reports whether a product is on the wishlist.
// Drives the saved-item indicator on product pages.
// GET /api/v1/wishlist/items/:product_id
func (ctrl *WishlistController) CheckWishlistItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	wishlisted, err := ctrl.wishlistService.IsOnWishlist(userID, uint(productID))
	if err != nil {
		log.Error("Failed to check wishlist item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "check wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlisted": wishlisted,
	})
}

// RemoveFromWishlist removes a product from the wishlist
// DELETE /api/v1/wishlist/items/:product_id
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	removed, err := ctrl.wishlistService.RemoveFromWishlist(userID, uint(productID))
	if err != nil {
		log.Error("Failed to remove item from wishlist", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove from wishlist")
		return
	}

	log.Info("Wishlist remove processed", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"removed":    removed,
	})

	message := "Item removed from wishlist"
	if !removed {
		message = "Item was not on wishlist"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"removed": removed,
	})
}
