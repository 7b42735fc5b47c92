package services

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"
)

// PaymentService orchestrates order creation and payment verification.
// Verify is invoked from two independent entry points (the client's
// verify call and the gateway redirect callback); safety under duplicate
// or concurrent invocation comes from the ledger's conditional transition.
type PaymentService struct {
	ledger  LedgerStore
	granter Granter
	gateway Gateway
	secret  string
}

func NewPaymentService(ledger LedgerStore, granter Granter, gateway Gateway, secret string) *PaymentService {
	return &PaymentService{
		ledger:  ledger,
		granter: granter,
		gateway: gateway,
		secret:  secret,
	}
}

// CreateOrderParams carries a create-order request. Amount is the raw
// request value in rupees; Receipt, ItemID and ItemType are optional.
type CreateOrderParams struct {
	Amount   string
	Receipt  string
	UserID   string
	ItemID   string
	ItemType string
}

// CreateOrderResult is returned to the client for checkout.
type CreateOrderResult struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyResult is the outcome of a verification attempt. Applied is true
// only for the call that actually performed the CREATED -> PAID
// transition; a duplicate verify of an already-PAID order still reports
// success with Applied false.
type VerifyResult struct {
	Status  string
	Applied bool
	Message string
}

// CreateOrder validates the request, creates the gateway order and
// persists a CREATED purchase before returning.
func (s *PaymentService) CreateOrder(params CreateOrderParams) (*CreateOrderResult, error) {
	if params.Amount == "" {
		return nil, fmt.Errorf("%w: amount is required", ErrValidation)
	}
	amount, err := strconv.ParseFloat(params.Amount, 64)
	if err != nil || amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	}
	// Round, don't truncate: 499.35 * 100 is 49934.999... in float64.
	amountPaise := int64(math.Round(amount * 100))

	receipt := params.Receipt
	if receipt == "" {
		receipt = "txn_" + uuid.New().String()
	}
	itemID := params.ItemID
	if itemID == "" {
		itemID = "SUBSCRIPTION_PRO"
	}
	itemType := params.ItemType
	if itemType == "" {
		itemType = models.ItemTypeSubscription
	}

	utils.LogInfo("Creating order for user %s, item %s, amount %d paise", params.UserID, itemID, amountPaise)
	orderID, err := s.gateway.CreateOrder(amountPaise, receipt)
	if err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		UserID:   params.UserID,
		ItemID:   itemID,
		ItemType: itemType,
		Amount:   amountPaise,
		OrderID:  orderID,
		Status:   models.PurchaseStatusCreated,
	}
	if err := s.ledger.Create(purchase); err != nil {
		utils.LogError("Failed to persist purchase for order %s: %v", orderID, err)
		return nil, err
	}
	utils.LogInfo("Order %s created for user %s", orderID, params.UserID)

	return &CreateOrderResult{OrderID: orderID, Amount: amountPaise, Currency: "INR"}, nil
}

// Verify checks the gateway signature for an order and settles the
// purchase. On a valid signature the CREATED -> PAID transition is
// attempted; the entitlement is granted only by the call that applied the
// transition. On an invalid signature the purchase moves to FAILED.
//
// An entitlement failure after a successful transition is returned as
// ErrEntitlement together with a success result: the PAID status is never
// reverted, and the purchase stays ungranted until the reconciliation
// sweep re-drives the grant.
func (s *PaymentService) Verify(orderID, paymentID, signature string) (VerifyResult, error) {
	utils.LogInfo("Verifying payment for order %s, payment %s", orderID, paymentID)

	purchase, err := s.ledger.FindByOrderID(orderID)
	if err != nil {
		utils.LogError("Verification lookup failed for order %s: %v", orderID, err)
		return VerifyResult{Status: "failure", Message: "Order not found"}, nil
	}

	if !VerifySignature(orderID, paymentID, signature, s.secret) {
		applied, err := s.ledger.MarkFailed(orderID)
		if err != nil {
			return VerifyResult{}, err
		}
		if applied {
			utils.LogInfo("Order %s marked FAILED on signature mismatch", orderID)
		}
		return VerifyResult{Status: "failure", Message: "Invalid payment signature"}, nil
	}

	applied, err := s.ledger.MarkPaid(orderID, paymentID)
	if err != nil {
		return VerifyResult{}, err
	}
	if !applied {
		// Another verification already settled this order.
		current, err := s.ledger.FindByOrderID(orderID)
		if err != nil {
			return VerifyResult{}, err
		}
		if current.Status == models.PurchaseStatusPaid {
			utils.LogInfo("Order %s already PAID, duplicate verification ignored", orderID)
			return VerifyResult{Status: "success", Message: "Payment already verified"}, nil
		}
		utils.LogInfo("Order %s already FAILED, verification rejected", orderID)
		return VerifyResult{Status: "failure", Message: "Order already failed"}, nil
	}

	utils.LogInfo("Order %s marked PAID, granting entitlement (%s)", orderID, purchase.ItemType)
	if err := s.grantEntitlement(purchase); err != nil {
		utils.LogError("Entitlement grant failed for order %s: %v", orderID, err)
		return VerifyResult{Status: "success", Applied: true, Message: "Payment verified, entitlement pending"},
			fmt.Errorf("%w: %v", ErrEntitlement, err)
	}
	if err := s.ledger.MarkGranted(orderID); err != nil {
		// The grant itself is idempotent; the sweep will re-drive it.
		utils.LogError("Failed to record grant for order %s: %v", orderID, err)
	}

	return VerifyResult{Status: "success", Applied: true, Message: "Payment verified"}, nil
}

func (s *PaymentService) grantEntitlement(purchase *models.Purchase) error {
	switch purchase.ItemType {
	case models.ItemTypeSubscription:
		return s.granter.GrantSubscription(purchase.UserID, models.TierPremium)
	case models.ItemTypeExam, models.ItemTypeTest:
		return s.granter.GrantItemUnlock(purchase.UserID, purchase.ItemID)
	default:
		return fmt.Errorf("unknown item type %q", purchase.ItemType)
	}
}

// ReconcileReport summarises one reconciliation sweep.
type ReconcileReport struct {
	Failed    int `json:"failed"`    // stale CREATED purchases failed out
	Regranted int `json:"regranted"` // PAID purchases whose grant was re-driven
}

// ReconcilePending fails out CREATED purchases older than maxAge so that
// an abandoned checkout does not stay pending forever, then re-drives the
// entitlement for PAID purchases whose grant never landed. The granter is
// idempotent, so re-driving is safe even if a grant actually succeeded
// but was not recorded.
func (s *PaymentService) ReconcilePending(maxAge time.Duration) (ReconcileReport, error) {
	var report ReconcileReport

	cutoff := time.Now().Add(-maxAge)
	pending, err := s.ledger.ListPendingBefore(cutoff)
	if err != nil {
		return report, err
	}
	for _, purchase := range pending {
		applied, err := s.ledger.MarkFailed(purchase.OrderID)
		if err != nil {
			utils.LogError("Reconcile failed for order %s: %v", purchase.OrderID, err)
			continue
		}
		if applied {
			report.Failed++
		}
	}

	ungranted, err := s.ledger.ListPaidUngranted()
	if err != nil {
		return report, err
	}
	for i := range ungranted {
		purchase := ungranted[i]
		if err := s.grantEntitlement(&purchase); err != nil {
			utils.LogError("Entitlement retry failed for order %s: %v", purchase.OrderID, err)
			continue
		}
		if err := s.ledger.MarkGranted(purchase.OrderID); err != nil {
			utils.LogError("Failed to record grant for order %s: %v", purchase.OrderID, err)
			continue
		}
		report.Regranted++
	}

	if report.Failed > 0 || report.Regranted > 0 {
		utils.LogInfo("Reconcile: %d stale orders failed, %d entitlements re-granted",
			report.Failed, report.Regranted)
	}
	return report, nil
}
