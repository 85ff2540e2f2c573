package utils

// Shared constants used across packages.
const (
	OrganizationName                      = "CareBridge"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"
)
