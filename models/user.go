package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription tiers, lowest to highest.
const (
	TierFree    = "FREE"
	TierPremium = "PREMIUM"
)

// TierRank orders tiers so that upgrades never downgrade an account.
var TierRank = map[string]int{
	TierFree:    0,
	TierPremium: 1,
}

// User represents an account in the system
type User struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber string    `gorm:"index" json:"phone_number"`
	Tier        string    `gorm:"default:'FREE'" json:"tier"`
	Language    string    `gorm:"default:'en'" json:"language"`
	IsAdmin     bool      `gorm:"default:false" json:"is_admin"`
	IsBlocked   bool      `gorm:"default:false" json:"is_blocked"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// UserOTP holds a bcrypt-hashed one-time login code
type UserOTP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index;not null" json:"email"`
	CodeHash  string    `json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Consumed  bool      `gorm:"default:false" json:"consumed"`
	CreatedAt time.Time `json:"created_at"`
}

// UserUnlock records a per-item entitlement. The composite unique index
// makes repeated grants for the same (user, item) pair a no-op.
type UserUnlock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index:idx_user_item,unique;not null" json:"user_id"`
	ItemID    string    `gorm:"index:idx_user_item,unique;not null" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}
