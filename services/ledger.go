package services

import (
	"errors"
	"time"

	"github.com/mockanytime/dakplus/models"
	"gorm.io/gorm"
)

// LedgerStore is the storage contract for purchase records. MarkPaid and
// MarkFailed report whether this call performed the transition; a false
// return with a nil error means the record was already terminal.
type LedgerStore interface {
	Create(purchase *models.Purchase) error
	FindByOrderID(orderID string) (*models.Purchase, error)
	MarkPaid(orderID, paymentID string) (applied bool, err error)
	MarkFailed(orderID string) (applied bool, err error)
	MarkGranted(orderID string) error
	ListPaidByUser(userID string) ([]models.Purchase, error)
	HasPaid(userID, itemID string) (bool, error)
	ListPendingBefore(cutoff time.Time) ([]models.Purchase, error)
	ListPaidUngranted() ([]models.Purchase, error)
}

// Ledger is the Postgres-backed LedgerStore. State transitions are single
// conditional UPDATEs keyed on the current status, so two concurrent
// verifications for the same order can never both observe CREATED.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Create inserts a new purchase with status CREATED.
func (l *Ledger) Create(purchase *models.Purchase) error {
	if purchase.Status == "" {
		purchase.Status = models.PurchaseStatusCreated
	}
	if err := l.db.Create(purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateOrder
		}
		return err
	}
	return nil
}

// FindByOrderID returns the purchase for a gateway order id.
func (l *Ledger) FindByOrderID(orderID string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := l.db.Where("order_id = ?", orderID).First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// MarkPaid transitions CREATED -> PAID and records the payment id. The
// WHERE clause on status makes the transition atomic; if the row is
// already PAID or FAILED nothing is written and applied is false.
func (l *Ledger) MarkPaid(orderID, paymentID string) (bool, error) {
	result := l.db.Model(&models.Purchase{}).
		Where("order_id = ? AND status = ?", orderID, models.PurchaseStatusCreated).
		Updates(map[string]interface{}{
			"status":     models.PurchaseStatusPaid,
			"payment_id": paymentID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// MarkFailed transitions CREATED -> FAILED.
func (l *Ledger) MarkFailed(orderID string) (bool, error) {
	result := l.db.Model(&models.Purchase{}).
		Where("order_id = ? AND status = ?", orderID, models.PurchaseStatusCreated).
		Updates(map[string]interface{}{
			"status":     models.PurchaseStatusFailed,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// MarkGranted records that the entitlement for a PAID purchase has been
// delivered, taking it out of the reconciliation sweep.
func (l *Ledger) MarkGranted(orderID string) error {
	return l.db.Model(&models.Purchase{}).
		Where("order_id = ? AND status = ?", orderID, models.PurchaseStatusPaid).
		Update("granted", true).Error
}

// ListPaidByUser returns all PAID purchases for a user in storage order.
func (l *Ledger) ListPaidByUser(userID string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := l.db.Where("user_id = ? AND status = ?", userID, models.PurchaseStatusPaid).
		Find(&purchases).Error
	return purchases, err
}

// HasPaid reports whether a PAID purchase exists for the (user, item) pair.
func (l *Ledger) HasPaid(userID, itemID string) (bool, error) {
	var count int64
	err := l.db.Model(&models.Purchase{}).
		Where("user_id = ? AND item_id = ? AND status = ?", userID, itemID, models.PurchaseStatusPaid).
		Count(&count).Error
	return count > 0, err
}

// ListPendingBefore returns CREATED purchases older than cutoff, for the
// reconciliation sweep.
func (l *Ledger) ListPendingBefore(cutoff time.Time) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := l.db.Where("status = ? AND created_at < ?", models.PurchaseStatusCreated, cutoff).
		Find(&purchases).Error
	return purchases, err
}

// ListPaidUngranted returns PAID purchases whose entitlement has not been
// delivered yet, so the reconciliation sweep can re-drive the grant.
func (l *Ledger) ListPaidUngranted() ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := l.db.Where("status = ? AND granted = ?", models.PurchaseStatusPaid, false).
		Find(&purchases).Error
	return purchases, err
}
