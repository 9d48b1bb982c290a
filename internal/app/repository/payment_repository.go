package repository

import (
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	FindByID(id uint) (*model.Payment, error)
	FindByOrderID(orderID uint) (*model.Payment, error)
	FindByUserID(userID uint) ([]model.Payment, error)
	Update(payment *model.Payment) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	logger.Debug("Creating payment in database", map[string]interface{}{
		"user_id":  payment.UserID,
		"order_id": payment.OrderID,
		"amount":   payment.Amount,
	})

	if err := r.db.Create(payment).Error; err != nil {
		logger.Error("Failed to create payment in database", err, map[string]interface{}{
			"user_id":  payment.UserID,
			"order_id": payment.OrderID,
			"amount":   payment.Amount,
		})
		return err
	}

	logger.Debug("Payment created in database", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
	})
	return nil
}

func (r *paymentRepository) FindByID(id uint) (*model.Payment, error) {
	logger.Debug("Finding payment by ID in database", map[string]interface{}{
		"payment_id": id,
	})

	var payment model.Payment
	err := r.db.First(&payment, id).Error
	if err != nil {
		logger.Error("Failed to find payment by ID in database", err, map[string]interface{}{
			"payment_id": id,
		})
		return nil, err
	}

	logger.Debug("Payment found by ID in database", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
	})
	return &payment, nil
}

func (r *paymentRepository) FindByOrderID(orderID uint) (*model.Payment, error) {
	logger.Debug("Finding payment by order ID in database", map[string]interface{}{
		"order_id": orderID,
	})

	var payment model.Payment
	err := r.db.Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		logger.Error("Failed to find payment by order ID in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Debug("Payment found by order ID in database", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   orderID,
	})
	return &payment, nil
}

func (r *paymentRepository) FindByUserID(userID uint) ([]model.Payment, error) {
	logger.Debug("Finding payments by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var payments []model.Payment
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		logger.Error("Failed to find payments by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Payments found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(payments),
	})
	return payments, nil
}

func (r *paymentRepository) Update(payment *model.Payment) error {
	logger.Debug("Updating payment in database", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
		"status":     payment.Status,
	})

	if err := r.db.Save(payment).Error; err != nil {
		logger.Error("Failed to update payment in database", err, map[string]interface{}{
			"payment_id": payment.ID,
			"order_id":   payment.OrderID,
		})
		return err
	}

	logger.Debug("Payment updated in database", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
		"status":     payment.Status,
	})
	return nil
}
