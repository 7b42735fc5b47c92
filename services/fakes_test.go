package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/mockanytime/dakplus/models"
)

// fakeLedger is an in-memory LedgerStore. Transitions take the mutex for
// the whole read-check-write so it honours the same atomicity contract as
// the conditional UPDATE in the Postgres implementation.
type fakeLedger struct {
	mu        sync.Mutex
	nextID    uint
	purchases map[string]*models.Purchase
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{purchases: map[string]*models.Purchase{}}
}

func (l *fakeLedger) Create(purchase *models.Purchase) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.purchases[purchase.OrderID]; ok {
		return ErrDuplicateOrder
	}
	l.nextID++
	purchase.ID = l.nextID
	if purchase.Status == "" {
		purchase.Status = models.PurchaseStatusCreated
	}
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now()
	}
	purchase.UpdatedAt = purchase.CreatedAt
	copied := *purchase
	l.purchases[purchase.OrderID] = &copied
	return nil
}

func (l *fakeLedger) FindByOrderID(orderID string) (*models.Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	purchase, ok := l.purchases[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *purchase
	return &copied, nil
}

func (l *fakeLedger) MarkPaid(orderID, paymentID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	purchase, ok := l.purchases[orderID]
	if !ok || purchase.Status != models.PurchaseStatusCreated {
		return false, nil
	}
	purchase.Status = models.PurchaseStatusPaid
	purchase.PaymentID = paymentID
	purchase.UpdatedAt = time.Now()
	return true, nil
}

func (l *fakeLedger) MarkFailed(orderID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	purchase, ok := l.purchases[orderID]
	if !ok || purchase.Status != models.PurchaseStatusCreated {
		return false, nil
	}
	purchase.Status = models.PurchaseStatusFailed
	purchase.UpdatedAt = time.Now()
	return true, nil
}

func (l *fakeLedger) MarkGranted(orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	purchase, ok := l.purchases[orderID]
	if ok && purchase.Status == models.PurchaseStatusPaid {
		purchase.Granted = true
	}
	return nil
}

func (l *fakeLedger) ListPaidByUser(userID string) ([]models.Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Purchase
	for _, purchase := range l.purchases {
		if purchase.UserID == userID && purchase.Status == models.PurchaseStatusPaid {
			out = append(out, *purchase)
		}
	}
	return out, nil
}

func (l *fakeLedger) HasPaid(userID, itemID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, purchase := range l.purchases {
		if purchase.UserID == userID && purchase.ItemID == itemID && purchase.Status == models.PurchaseStatusPaid {
			return true, nil
		}
	}
	return false, nil
}

func (l *fakeLedger) ListPendingBefore(cutoff time.Time) ([]models.Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Purchase
	for _, purchase := range l.purchases {
		if purchase.Status == models.PurchaseStatusCreated && purchase.CreatedAt.Before(cutoff) {
			out = append(out, *purchase)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListPaidUngranted() ([]models.Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Purchase
	for _, purchase := range l.purchases {
		if purchase.Status == models.PurchaseStatusPaid && !purchase.Granted {
			out = append(out, *purchase)
		}
	}
	return out, nil
}

// fakeGranter records grants; failures can be injected per call.
type fakeGranter struct {
	mu            sync.Mutex
	subscriptions []string // "userID/tier"
	unlocks       []string // "userID/itemID"
	err           error
}

func (g *fakeGranter) GrantSubscription(userID, tier string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.subscriptions = append(g.subscriptions, userID+"/"+tier)
	return nil
}

func (g *fakeGranter) GrantItemUnlock(userID, itemID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.unlocks = append(g.unlocks, userID+"/"+itemID)
	return nil
}

func (g *fakeGranter) grants() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subscriptions) + len(g.unlocks)
}

// fakeGateway issues sequential order ids; failures can be injected.
type fakeGateway struct {
	mu         sync.Mutex
	n          int
	err        error
	lastAmount int64
}

func (g *fakeGateway) CreateOrder(amount int64, receipt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	g.n++
	g.lastAmount = amount
	return fmt.Sprintf("order_%d", g.n), nil
}
