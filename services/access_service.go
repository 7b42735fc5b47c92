package services

import (
	"github.com/mockanytime/dakplus/models"
)

// AccessService answers read-only entitlement queries over the ledger.
type AccessService struct {
	ledger LedgerStore
}

func NewAccessService(ledger LedgerStore) *AccessService {
	return &AccessService{ledger: ledger}
}

// HasAccess reports whether userID has a PAID purchase for itemID.
func (s *AccessService) HasAccess(userID, itemID string) (bool, error) {
	return s.ledger.HasPaid(userID, itemID)
}

// ListPaidPurchases returns the user's PAID purchases in storage order.
func (s *AccessService) ListPaidPurchases(userID string) ([]models.Purchase, error) {
	return s.ledger.ListPaidByUser(userID)
}
