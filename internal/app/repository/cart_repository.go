package repository

import (
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	GetOrCreate(userID uint) (*model.Cart, error)
	FindByUserID(userID uint) (*model.Cart, error)
	FindItemByID(id uint) (*model.CartItem, error)
	FindItem(cartID, productID uint) (*model.CartItem, error)
	CreateItem(item *model.CartItem) error
	UpdateItem(item *model.CartItem) error
	DeleteItem(id uint) error
	UpdateQuantities(cartID uint, quantities map[uint]int) error
	ClearItems(cartID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetOrCreate(userID uint) (*model.Cart, error) {
	logger.Debug("Getting or creating cart in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.Where(model.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	if err != nil {
		// A concurrent create may win the race on the user_id unique
		// index; the existing row is the correct result.
		if isUniqueViolation(err) {
			if ferr := r.db.Where("user_id = ?", userID).First(&cart).Error; ferr == nil {
				return &cart, nil
			}
		}
		logger.Error("Failed to get or create cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart ready in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": userID,
	})
	return &cart, nil
}

func (r *cartRepository) FindByUserID(userID uint) (*model.Cart, error) {
	logger.Debug("Finding cart by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		First(&cart).Error
	if err != nil {
		logger.Error("Failed to find cart by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart found by user ID in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": userID,
		"count":   len(cart.Items),
	})
	return &cart, nil
}

func (r *cartRepository) FindItemByID(id uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by ID in database", map[string]interface{}{
		"cart_item_id": id,
	})

	var item model.CartItem
	err := r.db.Preload("Product").First(&item, id).Error
	if err != nil {
		logger.Error("Failed to find cart item by ID in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, err
	}

	logger.Debug("Cart item found by ID in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      item.CartID,
		"product_id":   item.ProductID,
	})
	return &item, nil
}

func (r *cartRepository) FindItem(cartID, productID uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by cart and product in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})

	var item model.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		logger.Error("Failed to find cart item by cart and product in database", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Debug("Cart item found by cart and product in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      cartID,
		"product_id":   productID,
	})
	return &item, nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      item.CartID,
		"product_id":   item.ProductID,
	})
	return nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      item.CartID,
		"quantity":     item.Quantity,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
			"cart_id":      item.CartID,
		})
		return err
	}

	logger.Debug("Cart item updated in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      item.CartID,
		"quantity":     item.Quantity,
	})
	return nil
}

func (r *cartRepository) DeleteItem(id uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
	})

	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_item_id": id,
	})
	return nil
}

// UpdateQuantities applies a batch of quantity changes in one transaction.
// A positive quantity sets the item; zero or less deletes it. Every item
// must belong to the given cart; any miss rolls back the batch.
func (r *cartRepository) UpdateQuantities(cartID uint, quantities map[uint]int) error {
	logger.Debug("Updating cart item quantities in database", map[string]interface{}{
		"cart_id": cartID,
		"count":   len(quantities),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for itemID, quantity := range quantities {
			var item model.CartItem
			if err := tx.Where("id = ? AND cart_id = ?", itemID, cartID).
				First(&item).Error; err != nil {
				return err
			}
			if quantity <= 0 {
				if err := tx.Delete(&item).Error; err != nil {
					return err
				}
				continue
			}
			item.Quantity = quantity
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to update cart item quantities in database", err, map[string]interface{}{
			"cart_id": cartID,
			"count":   len(quantities),
		})
		return err
	}

	logger.Debug("Cart item quantities updated in database", map[string]interface{}{
		"cart_id": cartID,
		"count":   len(quantities),
	})
	return nil
}

func (r *cartRepository) ClearItems(cartID uint) error {
	logger.Debug("Clearing cart items from database", map[string]interface{}{
		"cart_id": cartID,
	})

	if err := r.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart items from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	logger.Debug("Cart items cleared from database", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}
