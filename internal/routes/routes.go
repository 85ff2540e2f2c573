package routes

const (
	// Health
	Health = "/health"

	// Caregiver handshake endpoints
	CaregiverInvite = "/api/v1/caregivers/invite"
	CaregiverVerify = "/api/v1/caregivers/verify"
	CaregiverUpdate = "/api/v1/caregivers/update/{id}"
	CaregiverDelete = "/api/v1/caregivers/delete/{id}"
)
