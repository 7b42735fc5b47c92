package services

import "errors"

var (
	// ErrValidation is returned when a request carries a missing or
	// malformed field. No state is mutated.
	ErrValidation = errors.New("validation error")

	// ErrGateway is returned when the external payment gateway rejects
	// or fails an order-creation call. No purchase is persisted.
	ErrGateway = errors.New("payment gateway error")

	// ErrDuplicateOrder is returned when a purchase with the same
	// gateway order id already exists.
	ErrDuplicateOrder = errors.New("duplicate order id")

	// ErrOrderNotFound is returned when no purchase matches the order id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEntitlement is returned when the payment was recorded as PAID
	// but applying the entitlement failed. The PAID status is kept; the
	// caller may retry the grant, which is idempotent.
	ErrEntitlement = errors.New("entitlement grant failed")
)
