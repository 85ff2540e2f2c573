package services

import (
	"context"
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/carebridge/caregiver-service/internal/config"
	"github.com/carebridge/caregiver-service/internal/middleware"
)

// CredentialService mints session credentials for an identity. The invite
// flow attaches one for the inviter; everything else about sessions lives
// with the identity provider.
type CredentialService interface {
	IssueCredential(ctx context.Context, subjectID uuid.UUID, phoneNumber string) (string, error)
}

type credentialService struct {
	privateKey  *rsa.PrivateKey
	tokenExpiry time.Duration
}

func NewCredentialService(cfg *config.Config) CredentialService {
	return &credentialService{
		privateKey:  cfg.RSAPrivateKey,
		tokenExpiry: cfg.TokenExpiry,
	}
}

func (s *credentialService) IssueCredential(
	ctx context.Context,
	subjectID uuid.UUID,
	phoneNumber string,
) (string, error) {
	claims := jwt.MapClaims{
		"iss": middleware.TokenIssuer,
		"sub": subjectID.String(),
		"exp": time.Now().Add(s.tokenExpiry).Unix(),
		"iat": time.Now().Unix(),
		"jti": uuid.NewString(),
	}
	if phoneNumber != "" {
		claims["phone"] = phoneNumber
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}
