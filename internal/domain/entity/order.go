package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order represents a customer order
type Order struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Status     enum.OrderStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Customer *User       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// CustomerEmail returns the owning customer's email, or an empty string
// when the customer is gone.
func (o *Order) CustomerEmail() string {
	if o.Customer == nil {
		return ""
	}
	return o.Customer.Email
}

// ShortID returns the first 8 characters of the order identifier
func (o *Order) ShortID() string {
	id := o.ID.String()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// PrimaryPayment returns the earliest payment record, which is the one
// reports treat as authoritative. Payments are expected in creation order.
func (o *Order) PrimaryPayment() *Payment {
	if len(o.Payments) == 0 {
		return nil
	}
	return &o.Payments[0]
}

// OrderLine represents a line item in an order
type OrderLine struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName *string             `gorm:"size:255" json:"product_name,omitempty"`
	Position    int                 `gorm:"not null;default:0" json:"position"`
	Quantity    int                 `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"unit_price"`
	Discount    decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"discount"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// Payment represents a payment recorded against an order
type Payment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	Method    *string         `gorm:"size:50" json:"method,omitempty"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
