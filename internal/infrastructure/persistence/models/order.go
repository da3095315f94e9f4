// Package models holds the GORM persistence models of the mock backend.
package models

import (
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for a storefront order
type OrderModel struct {
	ID                 string                     `gorm:"type:varchar(36);primaryKey"`
	OrderNumber        string                     `gorm:"type:varchar(32);not null;uniqueIndex"`
	UserID             string                     `gorm:"type:varchar(64);index"`
	Items              []OrderItemModel           `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal           decimal.Decimal            `gorm:"type:decimal(14,2);not null;default:0"`
	Tax                *decimal.Decimal           `gorm:"type:decimal(14,2)"`
	Shipping           *decimal.Decimal           `gorm:"type:decimal(14,2)"`
	Total              decimal.Decimal            `gorm:"type:decimal(14,2);not null;default:0"`
	Status             string                     `gorm:"type:varchar(20);not null;index"`
	PaymentMethod      string                     `gorm:"type:varchar(20)"`
	PaymentStatus      string                     `gorm:"type:varchar(20);not null"`
	ShippingName       string                     `gorm:"type:varchar(200);not null"`
	ShippingPhone      string                     `gorm:"type:varchar(32);not null"`
	ShippingEmail      string                     `gorm:"type:varchar(200);not null;index"`
	ShippingAddress    string                     `gorm:"type:varchar(500);not null"`
	ShippingCity       string                     `gorm:"type:varchar(100)"`
	ShippingCounty     string                     `gorm:"type:varchar(100)"`
	ShippingPostalCode string                     `gorm:"type:varchar(20)"`
	Installation       *trade.InstallationDetails `gorm:"type:text;serializer:json"`
	InvoiceURL         string                     `gorm:"type:varchar(1000)"`
	InvoiceQRCode      string                     `gorm:"type:varchar(255)"`
	CreatedAt          time.Time                  `gorm:"not null;index"`
	UpdatedAt          time.Time                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "storefront_orders"
}

// OrderItemModel is one order line
type OrderItemModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	OrderID     string          `gorm:"type:varchar(36);not null;index"`
	ProductID   string          `gorm:"type:varchar(64);not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "storefront_order_items"
}

// ToDomain converts the persistence model to a domain order
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		ID:          m.ID,
		OrderNumber: m.OrderNumber,
		UserID:      m.UserID,
		Items:       make([]trade.OrderItem, 0, len(m.Items)),
		Subtotal:    m.Subtotal,
		Tax:         m.Tax,
		Shipping:    m.Shipping,
		Total:       m.Total,
		Status:      trade.OrderStatus(m.Status),
		ShippingAddress: trade.ShippingAddress{
			FullName:   m.ShippingName,
			Phone:      m.ShippingPhone,
			Email:      m.ShippingEmail,
			Address:    m.ShippingAddress,
			City:       m.ShippingCity,
			County:     m.ShippingCounty,
			PostalCode: m.ShippingPostalCode,
		},
		InstallationDetails: m.Installation,
		PaymentMethod:       m.PaymentMethod,
		PaymentStatus:       trade.PaymentStatus(m.PaymentStatus),
		InvoiceURL:          m.InvoiceURL,
		InvoiceQRCode:       m.InvoiceQRCode,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	for _, item := range m.Items {
		order.Items = append(order.Items, trade.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return order
}

// FromDomain populates the persistence model from a domain order
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.ID = o.ID
	m.OrderNumber = o.OrderNumber
	m.UserID = o.UserID
	m.Subtotal = o.Subtotal
	m.Tax = o.Tax
	m.Shipping = o.Shipping
	m.Total = o.Total
	m.Status = string(o.Status)
	m.PaymentMethod = o.PaymentMethod
	m.PaymentStatus = string(o.PaymentStatus)
	m.ShippingName = o.ShippingAddress.FullName
	m.ShippingPhone = o.ShippingAddress.Phone
	m.ShippingEmail = o.ShippingAddress.Email
	m.ShippingAddress = o.ShippingAddress.Address
	m.ShippingCity = o.ShippingAddress.City
	m.ShippingCounty = o.ShippingAddress.County
	m.ShippingPostalCode = o.ShippingAddress.PostalCode
	m.Installation = o.InstallationDetails
	m.InvoiceURL = o.InvoiceURL
	m.InvoiceQRCode = o.InvoiceQRCode
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt

	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for _, item := range o.Items {
		m.Items = append(m.Items, OrderItemModel{
			OrderID:     o.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
}
