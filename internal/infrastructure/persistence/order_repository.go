package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/maxwelladwale/coltech/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order and its lines in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	var model models.OrderModel
	model.FromDomain(order)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	order.CreatedAt = model.CreatedAt
	order.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser lists a user's orders, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID string) ([]trade.Order, error) {
	return r.findAll(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// FindByEmail lists orders shipped to the email, newest first
func (r *GormOrderRepository) FindByEmail(ctx context.Context, email string) ([]trade.Order, error) {
	return r.findAll(ctx, r.db.WithContext(ctx).Where("LOWER(shipping_email) = ?", strings.ToLower(email)))
}

// FindByNumberAndEmail finds an order by number, requiring the shipping email to match
func (r *GormOrderRepository) FindByNumberAndEmail(ctx context.Context, orderNumber, email string) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ? AND LOWER(shipping_email) = ?", orderNumber, strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormOrderRepository) findAll(_ context.Context, query *gorm.DB) ([]trade.Order, error) {
	var rows []models.OrderModel
	if err := query.Preload("Items").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]trade.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain())
	}
	return orders, nil
}

// UpdateStatus sets the fulfilment status
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id string, status trade.OrderStatus) error {
	return r.update(ctx, id, map[string]any{"status": string(status)})
}

// UpdatePaymentStatus sets the payment status
func (r *GormOrderRepository) UpdatePaymentStatus(ctx context.Context, id string, status trade.PaymentStatus) error {
	return r.update(ctx, id, map[string]any{"payment_status": string(status)})
}

// UpdatePaymentMethod records the method chosen on a payment retry
func (r *GormOrderRepository) UpdatePaymentMethod(ctx context.Context, id string, method trade.PaymentMethod) error {
	return r.update(ctx, id, map[string]any{"payment_method": string(method)})
}

// UpdateInvoice stores the invoice download location and verification code
func (r *GormOrderRepository) UpdateInvoice(ctx context.Context, id, invoiceURL, qrCode string) error {
	return r.update(ctx, id, map[string]any{"invoice_url": invoiceURL, "invoice_qr_code": qrCode})
}

func (r *GormOrderRepository) update(ctx context.Context, id string, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
