package services

import (
	"fmt"

	"github.com/mockanytime/dakplus/utils"
	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway creates orders against the external payment provider.
type Gateway interface {
	CreateOrder(amount int64, receipt string) (orderID string, err error)
}

// RazorpayGateway implements Gateway using the Razorpay Orders API.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway builds a gateway from API credentials.
func NewRazorpayGateway(key, secret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(key, secret)}
}

// CreateOrder creates a Razorpay order for amount (in paise) and returns
// the gateway-assigned order id.
func (g *RazorpayGateway) CreateOrder(amount int64, receipt string) (string, error) {
	orderData := map[string]interface{}{
		"amount":          amount,
		"currency":        "INR",
		"receipt":         receipt,
		"payment_capture": 1,
	}

	order, err := g.client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Razorpay order creation failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		utils.LogError("Razorpay order response missing id: %v", order)
		return "", fmt.Errorf("%w: order id missing in response", ErrGateway)
	}

	return orderID, nil
}
