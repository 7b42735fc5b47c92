package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/services"
	"github.com/mockanytime/dakplus/utils"
)

// POST /payments/create-order
func CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")

	var req struct {
		Amount   json.Number `json:"amount"`
		Receipt  string      `json:"receipt"`
		UserID   string      `json:"userId"`
		ItemID   string      `json:"itemId"`
		ItemType string      `json:"itemType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create-order request: %v", err)
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := paymentService.CreateOrder(services.CreateOrderParams{
		Amount:   req.Amount.String(),
		Receipt:  req.Receipt,
		UserID:   req.UserID,
		ItemID:   req.ItemID,
		ItemType: req.ItemType,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.BadRequest(c, "Amount is required", err.Error())
		case errors.Is(err, services.ErrGateway):
			utils.BadRequest(c, "Failed to create order", err.Error())
		default:
			utils.LogError("Unexpected create-order error: %v", err)
			utils.InternalServerError(c, "Failed to create order", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":  result.OrderID,
		"amount":   result.Amount,
		"currency": result.Currency,
	})
}

// POST /payments/verify-payment
func VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify-payment request: %v", err)
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := paymentService.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil && !errors.Is(err, services.ErrEntitlement) {
		utils.LogError("Verification error for order %s: %v", req.RazorpayOrderID, err)
		utils.InternalServerError(c, "Verification failed", nil)
		return
	}
	if err != nil {
		// Payment is recorded; the grant will be retried on the next verify.
		utils.LogError("Entitlement pending for order %s: %v", req.RazorpayOrderID, err)
	}

	if result.Status != "success" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failure", "message": result.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": result.Message})
}

// GET /payments/callback
//
// Razorpay redirects the browser here after checkout. Verification runs
// with the same semantics as verify-payment, but the user is always sent
// back to the dashboard; the outcome is not surfaced synchronously.
func PaymentCallback(c *gin.Context) {
	orderID := c.Query("razorpay_order_id")
	paymentID := c.Query("razorpay_payment_id")
	signature := c.Query("razorpay_signature")
	utils.LogInfo("PaymentCallback called for order %s", orderID)

	if orderID != "" {
		if _, err := paymentService.Verify(orderID, paymentID, signature); err != nil {
			utils.LogError("Callback verification error for order %s: %v", orderID, err)
		}
	}

	c.Redirect(http.StatusFound, frontendURL+"/dashboard?payment=success")
}

// GET /payments/check-access
func CheckAccess(c *gin.Context) {
	userID := c.Query("userId")
	itemID := c.Query("itemId")
	if userID == "" || itemID == "" {
		utils.BadRequest(c, "userId and itemId are required", nil)
		return
	}

	hasAccess, err := accessService.HasAccess(userID, itemID)
	if err != nil {
		utils.LogError("Access check failed for user %s, item %s: %v", userID, itemID, err)
		utils.InternalServerError(c, "Failed to check access", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hasAccess": hasAccess})
}

// GET /payments/user-purchases
func UserPurchases(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		utils.BadRequest(c, "userId is required", nil)
		return
	}

	purchases, err := accessService.ListPaidPurchases(userID)
	if err != nil {
		utils.LogError("Failed to list purchases for user %s: %v", userID, err)
		utils.InternalServerError(c, "Failed to list purchases", nil)
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// POST /payments/reconcile
//
// Admin hook that fails out stale CREATED orders and re-drives any
// entitlement that did not land after its payment settled.
func ReconcilePayments(c *gin.Context) {
	utils.LogInfo("ReconcilePayments called")

	report, err := paymentService.ReconcilePending(reconcileMaxAge)
	if err != nil {
		utils.LogError("Reconciliation failed: %v", err)
		utils.InternalServerError(c, "Reconciliation failed", nil)
		return
	}

	utils.Success(c, "Reconciliation complete", report)
}
