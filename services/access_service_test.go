package services

import (
	"testing"

	"github.com/mockanytime/dakplus/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasAccessOnlyForPaidPair(t *testing.T) {
	ledger := newFakeLedger()
	access := NewAccessService(ledger)

	require.NoError(t, ledger.Create(&models.Purchase{OrderID: "order_1", UserID: "u1", ItemID: "EXAM1"}))
	require.NoError(t, ledger.Create(&models.Purchase{OrderID: "order_2", UserID: "u1", ItemID: "EXAM2"}))
	_, err := ledger.MarkPaid("order_1", "pay_1")
	require.NoError(t, err)
	_, err = ledger.MarkFailed("order_2")
	require.NoError(t, err)

	tests := []struct {
		name   string
		userID string
		itemID string
		want   bool
	}{
		{"paid pair", "u1", "EXAM1", true},
		{"failed pair", "u1", "EXAM2", false},
		{"wrong user", "u2", "EXAM1", false},
		{"wrong item", "u1", "EXAM3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := access.HasAccess(tt.userID, tt.itemID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListPaidPurchasesFiltersTerminalStates(t *testing.T) {
	ledger := newFakeLedger()
	access := NewAccessService(ledger)

	require.NoError(t, ledger.Create(&models.Purchase{OrderID: "order_1", UserID: "u1", ItemID: "EXAM1"}))
	require.NoError(t, ledger.Create(&models.Purchase{OrderID: "order_2", UserID: "u1", ItemID: "EXAM2"}))
	require.NoError(t, ledger.Create(&models.Purchase{OrderID: "order_3", UserID: "u2", ItemID: "EXAM1"}))
	_, err := ledger.MarkPaid("order_1", "pay_1")
	require.NoError(t, err)
	_, err = ledger.MarkPaid("order_3", "pay_3")
	require.NoError(t, err)

	purchases, err := access.ListPaidPurchases("u1")
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "order_1", purchases[0].OrderID)
	assert.Equal(t, models.PurchaseStatusPaid, purchases[0].Status)
}

func TestListPaidPurchasesEmpty(t *testing.T) {
	access := NewAccessService(newFakeLedger())

	purchases, err := access.ListPaidPurchases("nobody")
	require.NoError(t, err)
	assert.Empty(t, purchases)
}
