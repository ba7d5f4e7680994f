package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type OrderStatus string

const (
	StatusReceived   OrderStatus = "received"
	StatusInProgress OrderStatus = "in_progress"
	StatusTrial      OrderStatus = "trial"
	StatusReady      OrderStatus = "ready"
	StatusDelivered  OrderStatus = "delivered"
)

// OrderStatusFlow is the usual progression of an order. Any status may be
// set from any other.
var OrderStatusFlow = []OrderStatus{
	StatusReceived,
	StatusInProgress,
	StatusTrial,
	StatusReady,
	StatusDelivered,
}

var statusLabels = map[OrderStatus]string{
	StatusReceived:   "Received",
	StatusInProgress: "In Progress",
	StatusTrial:      "Trial",
	StatusReady:      "Ready",
	StatusDelivered:  "Delivered",
}

func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

type Order struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber  string          `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"customer_id"`
	DeliveryDate time.Time       `gorm:"type:date;index;not null" json:"delivery_date"`
	Status       OrderStatus     `gorm:"type:varchar(20);index;not null;default:'received'" json:"status"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	AdvancePaid  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"advance_paid"`
	Notes        *string         `gorm:"type:text" json:"notes"`

	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by Derive, never stored.
	Balance  decimal.Decimal `gorm:"-" json:"balance"`
	Overdue  bool            `gorm:"-" json:"is_overdue"`
	DueToday bool            `gorm:"-" json:"is_due_today"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// BalanceDue is total minus advance, clamped at zero.
func (o *Order) BalanceDue() decimal.Decimal {
	b := o.TotalAmount.Sub(o.AdvancePaid)
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

func (o *Order) OverdueOn(today time.Time) bool {
	return o.Status != StatusDelivered && civilDate(o.DeliveryDate).Before(civilDate(today))
}

func (o *Order) DueOn(today time.Time) bool {
	return o.Status != StatusDelivered && civilDate(o.DeliveryDate).Equal(civilDate(today))
}

// Derive fills the computed response fields, including on the order items
// and their images when those are loaded.
func (o *Order) Derive(today time.Time) {
	o.Balance = o.BalanceDue()
	o.Overdue = o.OverdueOn(today)
	o.DueToday = o.DueOn(today)
	for i := range o.Items {
		o.Items[i].SubtotalAmount = o.Items[i].Subtotal()
	}
}

// civilDate drops the clock and zone so a stored DATE and a local "today"
// compare by calendar day.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
