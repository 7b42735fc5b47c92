package controllers

import (
	"time"

	"github.com/mockanytime/dakplus/config"
	"github.com/mockanytime/dakplus/services"
)

// Pending orders older than this are failed out by the reconcile hook.
const reconcileMaxAge = 24 * time.Hour

var (
	paymentService *services.PaymentService
	accessService  *services.AccessService
	frontendURL    string
)

// InitServices wires the payment services over the shared database
// connection and the Razorpay client. Must be called after config.InitDB.
func InitServices(cfg *config.Config) {
	ledger := services.NewLedger(config.DB)
	granter := services.NewAccountGranter(config.DB)
	gateway := services.NewRazorpayGateway(cfg.RazorpayKey, cfg.RazorpaySecret)

	paymentService = services.NewPaymentService(ledger, granter, gateway, cfg.RazorpaySecret)
	accessService = services.NewAccessService(ledger)
	frontendURL = cfg.FrontendURL
}

// SetServicesForTest swaps the package-level services; used by handler tests.
func SetServicesForTest(payments *services.PaymentService, access *services.AccessService, frontend string) {
	paymentService = payments
	accessService = access
	frontendURL = frontend
}
