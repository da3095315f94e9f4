package models

import (
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PaymentTransactionModel is the persistence model for a payment attempt
type PaymentTransactionModel struct {
	ID          string          `gorm:"type:varchar(64);primaryKey"`
	OrderID     string          `gorm:"type:varchar(36);not null;index"`
	Method      string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null"`
	Reference   string          `gorm:"type:varchar(64)"`
	Message     string          `gorm:"type:varchar(500)"`
	CreatedAt   time.Time       `gorm:"not null;index"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (PaymentTransactionModel) TableName() string {
	return "storefront_payment_transactions"
}

// ToDomain converts the persistence model to a domain transaction
func (m *PaymentTransactionModel) ToDomain() *trade.PaymentTransaction {
	return &trade.PaymentTransaction{
		ID:          m.ID,
		OrderID:     m.OrderID,
		Method:      trade.PaymentMethod(m.Method),
		Amount:      m.Amount,
		Status:      trade.TransactionStatus(m.Status),
		Reference:   m.Reference,
		Message:     m.Message,
		CreatedAt:   m.CreatedAt,
		CompletedAt: m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain transaction
func (m *PaymentTransactionModel) FromDomain(tx *trade.PaymentTransaction) {
	m.ID = tx.ID
	m.OrderID = tx.OrderID
	m.Method = string(tx.Method)
	m.Amount = tx.Amount
	m.Status = string(tx.Status)
	m.Reference = tx.Reference
	m.Message = tx.Message
	m.CreatedAt = tx.CreatedAt
	m.CompletedAt = tx.CompletedAt
}

// All returns every model managed by AutoMigrate
func All() []any {
	return []any{&OrderModel{}, &OrderItemModel{}, &PaymentTransactionModel{}}
}
