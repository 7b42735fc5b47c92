package models

import (
	"time"
)

// Purchase statuses. CREATED is the only non-terminal state; a purchase
// moves to PAID or FAILED exactly once and is never deleted.
const (
	PurchaseStatusCreated = "CREATED"
	PurchaseStatusPaid    = "PAID"
	PurchaseStatusFailed  = "FAILED"
)

// Item types a purchase can cover.
const (
	ItemTypeSubscription = "SUBSCRIPTION"
	ItemTypeExam         = "EXAM"
	ItemTypeTest         = "TEST"
)

// Purchase correlates a user, an item, and a gateway order's lifecycle.
type Purchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"user_id"`
	ItemID    string    `json:"item_id"`
	ItemType  string    `json:"item_type"`
	Amount    int64     `json:"amount"` // smallest currency unit, fixed at creation
	OrderID   string    `gorm:"uniqueIndex;not null" json:"order_id"`
	PaymentID string    `json:"payment_id"` // set only when verification succeeds
	Status    string    `gorm:"default:'CREATED';index" json:"status"`
	Granted   bool      `gorm:"default:false" json:"granted"` // entitlement delivered for this PAID purchase
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
