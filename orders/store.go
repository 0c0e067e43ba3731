package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/gladiator-burger/ordering-api/models"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned for any lookup miss. It carries no hint
// about whether the token or ID ever existed.
var ErrOrderNotFound = errors.New("order not found")

// Store persists and resolves order records. Writes are single-row
// inserts; nothing in this subsystem updates an existing row.
type Store interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByReceiptToken(ctx context.Context, token string) (*models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, order *models.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (s *GormStore) FindByReceiptToken(ctx context.Context, token string) (*models.Order, error) {
	var order models.Order
	result := s.db.WithContext(ctx).Where("receipt_token = ?", token).First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", result.Error)
	}
	return &order, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", result.Error)
	}
	return &order, nil
}
