package services

import (
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Granter applies the business effect of a successful payment. Both
// operations are idempotent: repeating a grant with identical arguments
// is a no-op.
type Granter interface {
	GrantSubscription(userID, tier string) error
	GrantItemUnlock(userID, itemID string) error
}

// AccountGranter is the Postgres-backed Granter over user accounts.
type AccountGranter struct {
	db *gorm.DB
}

func NewAccountGranter(db *gorm.DB) *AccountGranter {
	return &AccountGranter{db: db}
}

// GrantSubscription raises the user's tier to at least tier. Accounts are
// never downgraded: the update only touches rows whose current tier ranks
// below the target.
func (g *AccountGranter) GrantSubscription(userID, tier string) error {
	targetRank, ok := models.TierRank[tier]
	if !ok {
		return ErrValidation
	}

	var lower []string
	for name, rank := range models.TierRank {
		if rank < targetRank {
			lower = append(lower, name)
		}
	}
	if len(lower) == 0 {
		return nil
	}

	result := g.db.Model(&models.User{}).
		Where("id = ? AND tier IN ?", userID, lower).
		Update("tier", tier)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		utils.LogInfo("Tier grant no-op for user %s: already at or above %s", userID, tier)
	}
	return nil
}

// GrantItemUnlock adds itemID to the user's unlocked set. The conflict
// clause on (user_id, item_id) makes repeats a no-op.
func (g *AccountGranter) GrantItemUnlock(userID, itemID string) error {
	unlock := models.UserUnlock{UserID: userID, ItemID: itemID}
	return g.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&unlock).Error
}
