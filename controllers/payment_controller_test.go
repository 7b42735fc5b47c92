package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "rzp_test_secret"

type stubLedger struct {
	mu        sync.Mutex
	nextID    uint
	purchases map[string]*models.Purchase
}

func newStubLedger() *stubLedger {
	return &stubLedger{purchases: map[string]*models.Purchase{}}
}

func (l *stubLedger) Create(p *models.Purchase) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.purchases[p.OrderID]; ok {
		return services.ErrDuplicateOrder
	}
	l.nextID++
	p.ID = l.nextID
	if p.Status == "" {
		p.Status = models.PurchaseStatusCreated
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	copied := *p
	l.purchases[p.OrderID] = &copied
	return nil
}

func (l *stubLedger) FindByOrderID(orderID string) (*models.Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.purchases[orderID]
	if !ok {
		return nil, services.ErrOrderNotFound
	}
	copied := *p
	return &copied, nil
}

func (l *stubLedger) MarkPaid(orderID, paymentID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.purchases[orderID]
	if !ok || p.Status != models.PurchaseStatusCreated {
		return false, nil
	}
	p.Status = models.PurchaseStatusPaid
	p.PaymentID = paymentID
	return true, nil
}

func (l *stubLedger) MarkFailed(orderID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.purchases[orderID]
	if !ok || p.Status != models.PurchaseStatusCreated {
		return false, nil
	}
	p.Status = models.PurchaseStatusFailed
	return true, nil
}

func (l *stubLedger) ListPaidByUser(userID string) ([]models.Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Purchase
	for _, p := range l.purchases {
		if p.UserID == userID && p.Status == models.PurchaseStatusPaid {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (l *stubLedger) HasPaid(userID, itemID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.purchases {
		if p.UserID == userID && p.ItemID == itemID && p.Status == models.PurchaseStatusPaid {
			return true, nil
		}
	}
	return false, nil
}

func (l *stubLedger) MarkGranted(orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.purchases[orderID]; ok && p.Status == models.PurchaseStatusPaid {
		p.Granted = true
	}
	return nil
}

func (l *stubLedger) ListPendingBefore(cutoff time.Time) ([]models.Purchase, error) {
	return nil, nil
}

func (l *stubLedger) ListPaidUngranted() ([]models.Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Purchase
	for _, p := range l.purchases {
		if p.Status == models.PurchaseStatusPaid && !p.Granted {
			out = append(out, *p)
		}
	}
	return out, nil
}

type stubGranter struct {
	mu     sync.Mutex
	grants int
}

func (g *stubGranter) GrantSubscription(userID, tier string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.grants++
	return nil
}

func (g *stubGranter) GrantItemUnlock(userID, itemID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.grants++
	return nil
}

type stubGateway struct{ orderID string }

func (g *stubGateway) CreateOrder(amount int64, receipt string) (string, error) {
	return g.orderID, nil
}

func sign(orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(testSecret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func setupPaymentRouter(t *testing.T) (*gin.Engine, *stubLedger, *stubGranter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ledger := newStubLedger()
	granter := &stubGranter{}
	gateway := &stubGateway{orderID: "order_1"}
	SetServicesForTest(
		services.NewPaymentService(ledger, granter, gateway, testSecret),
		services.NewAccessService(ledger),
		"http://localhost:3000",
	)

	router := gin.New()
	router.POST("/payments/create-order", CreateOrder)
	router.POST("/payments/verify-payment", VerifyPayment)
	router.GET("/payments/callback", PaymentCallback)
	router.GET("/payments/check-access", CheckAccess)
	router.GET("/payments/user-purchases", UserPurchases)
	return router, ledger, granter
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, ledger, _ := setupPaymentRouter(t)

	w := postJSON(router, "/payments/create-order", gin.H{
		"amount":   499,
		"userId":   "u1",
		"itemId":   "SUBSCRIPTION_PRO",
		"itemType": "SUBSCRIPTION",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OrderID  string `json:"orderId"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order_1", resp.OrderID)
	assert.Equal(t, int64(49900), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)

	purchase, err := ledger.FindByOrderID("order_1")
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusCreated, purchase.Status)
}

func TestCreateOrderEndpointRejectsMissingAmount(t *testing.T) {
	router, _, _ := setupPaymentRouter(t)

	w := postJSON(router, "/payments/create-order", gin.H{"userId": "u1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	router, ledger, granter := setupPaymentRouter(t)

	postJSON(router, "/payments/create-order", gin.H{"amount": 499, "userId": "u1"})

	w := postJSON(router, "/payments/verify-payment", gin.H{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  sign("order_1", "pay_1"),
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.Equal(t, 1, granter.grants)

	purchase, err := ledger.FindByOrderID("order_1")
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusPaid, purchase.Status)
}

func TestVerifyPaymentEndpointBadSignature(t *testing.T) {
	router, ledger, granter := setupPaymentRouter(t)

	postJSON(router, "/payments/create-order", gin.H{"amount": 199, "userId": "u1", "itemId": "EXAM42", "itemType": "EXAM"})

	w := postJSON(router, "/payments/verify-payment", gin.H{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  "bogus",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"failure"`)
	assert.Zero(t, granter.grants)

	purchase, err := ledger.FindByOrderID("order_1")
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusFailed, purchase.Status)
}

func TestPaymentCallbackAlwaysRedirects(t *testing.T) {
	router, _, granter := setupPaymentRouter(t)

	postJSON(router, "/payments/create-order", gin.H{"amount": 499, "userId": "u1"})

	// Valid credentials settle the order before redirecting
	req := httptest.NewRequest(http.MethodGet,
		"/payments/callback?razorpay_order_id=order_1&razorpay_payment_id=pay_1&razorpay_signature="+sign("order_1", "pay_1"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/dashboard?payment=success", w.Header().Get("Location"))
	assert.Equal(t, 1, granter.grants)

	// The redirect target does not change on a garbage verification
	req = httptest.NewRequest(http.MethodGet, "/payments/callback?razorpay_order_id=order_x", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/dashboard?payment=success", w.Header().Get("Location"))
}

func TestCheckAccessEndpoint(t *testing.T) {
	router, _, _ := setupPaymentRouter(t)

	postJSON(router, "/payments/create-order", gin.H{"amount": 199, "userId": "u1", "itemId": "EXAM42", "itemType": "EXAM"})
	postJSON(router, "/payments/verify-payment", gin.H{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  sign("order_1", "pay_1"),
	})

	req := httptest.NewRequest(http.MethodGet, "/payments/check-access?userId=u1&itemId=EXAM42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hasAccess":true`)

	req = httptest.NewRequest(http.MethodGet, "/payments/check-access?userId=u2&itemId=EXAM42", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hasAccess":false`)
}

func TestUserPurchasesEndpointFiltersPaid(t *testing.T) {
	router, ledger, _ := setupPaymentRouter(t)

	require.NoError(t, ledger.Create(&models.Purchase{OrderID: "order_a", UserID: "u1", ItemID: "EXAM1"}))
	require.NoError(t, ledger.Create(&models.Purchase{OrderID: "order_b", UserID: "u1", ItemID: "EXAM2"}))
	_, err := ledger.MarkPaid("order_a", "pay_a")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/payments/user-purchases?userId=u1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var purchases []models.Purchase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &purchases))
	require.Len(t, purchases, 1)
	assert.Equal(t, "order_a", purchases[0].OrderID)
}
