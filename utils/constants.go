package utils

import "time"

// Application constants
const (
	// Application name
	AppName = "DakPlus"

	// Default port
	DefaultPort = "8080"

	// JWT token expiration
	JWTExpiration = 24 * time.Hour

	// OTP expiration
	OTPExpiration = 10 * time.Minute

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100
)
