package service

import (
	"errors"
	"time"

	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists for this order")
)

type PaymentService interface {
	PayForOrder(userID, orderID uint, method string) (*model.Payment, error)
	GetPaymentForOrder(userID, orderID uint) (*model.Payment, error)
	GetUserPayments(userID uint) ([]model.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// PayForOrder records a payment for the order at its snapshot total and
// confirms the order. An order accepts at most one payment.
func (s *paymentService) PayForOrder(userID, orderID uint, method string) (*model.Payment, error) {
	logger.Info("Processing payment for order", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
		"method":   method,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Payment rejected: order not found", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for payment", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	// Another user's order is indistinguishable from a missing one
	if order.UserID != userID {
		logger.Warn("Payment rejected: order ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}

	existing, err := s.paymentRepo.FindByOrderID(orderID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing payment", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Payment rejected: order already paid", map[string]interface{}{
			"order_id":   orderID,
			"payment_id": existing.ID,
		})
		return nil, ErrPaymentAlreadyExists
	}

	payment := &model.Payment{
		UserID:        userID,
		OrderID:       orderID,
		Amount:        order.TotalPrice,
		PaymentDate:   time.Now(),
		PaymentMethod: method,
		Status:        model.PaymentStatusCompleted,
	}

	if err := s.paymentRepo.Create(payment); err != nil {
		logger.Error("Failed to create payment", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(orderID, model.OrderStatusConfirmed); err != nil {
		logger.Error("Failed to confirm order after payment", err, map[string]interface{}{
			"order_id":   orderID,
			"payment_id": payment.ID,
		})
		return nil, err
	}

	logger.Info("Payment processed successfully", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   orderID,
		"amount":     payment.Amount,
	})
	return payment, nil
}

func (s *paymentService) GetPaymentForOrder(userID, orderID uint) (*model.Payment, error) {
	logger.Debug("Fetching payment for order", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	payment, err := s.paymentRepo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Payment not found for order", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrPaymentNotFound
		}
		logger.Error("Failed to fetch payment for order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if payment.UserID != userID {
		logger.Warn("Payment access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrPaymentNotFound
	}

	logger.Debug("Payment fetched successfully", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   orderID,
	})
	return payment, nil
}

func (s *paymentService) GetUserPayments(userID uint) ([]model.Payment, error) {
	logger.Debug("Fetching user payments", map[string]interface{}{
		"user_id": userID,
	})

	payments, err := s.paymentRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user payments", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User payments fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(payments),
	})
	return payments, nil
}
