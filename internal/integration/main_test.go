//go:build dev && integration

package integration

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/caregiver-service/internal/middleware"
	"github.com/carebridge/caregiver-service/internal/utils"
)

// -----------------------------------------------------------------------------
// Globals
// -----------------------------------------------------------------------------

var (
	baseURL    string
	signingKey *rsa.PrivateKey
)

// -----------------------------------------------------------------------------
// Suite bootstrap
// -----------------------------------------------------------------------------

func TestMain(m *testing.M) {
	baseURL = os.Getenv("APP_URL_FROM_COMPOSE_NETWORK")
	if baseURL == "" {
		fmt.Println("APP_URL_FROM_COMPOSE_NETWORK env var is missing")
		os.Exit(1)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	// The suite signs its own tokens with the same key pair the service
	// verifies against.
	keyBase64 := os.Getenv("RSA_PRIVATE_KEY_BASE64")
	if keyBase64 == "" {
		fmt.Println("RSA_PRIVATE_KEY_BASE64 env var is missing")
		os.Exit(1)
	}
	keyPEM, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		fmt.Println("Failed to decode RSA_PRIVATE_KEY_BASE64:", err)
		os.Exit(1)
	}
	signingKey, err = jwt.ParseRSAPrivateKeyFromPEM(keyPEM)
	if err != nil {
		fmt.Println("Failed to parse RSA private key:", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// mintToken signs an access token for a synthetic user, optionally with a
// phone claim (verify requires one, invite does not).
func mintToken(t *testing.T, userID uuid.UUID, phone string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"iss": middleware.TokenIssuer,
		"sub": userID.String(),
		"exp": time.Now().Add(10 * time.Minute).Unix(),
		"iat": time.Now().Unix(),
		"jti": uuid.NewString(),
	}
	if phone != "" {
		claims["phone"] = phone
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(signingKey)
	require.NoError(t, err)
	return token
}

// randomTestPhone returns a number in the reserved fake range so the
// delivery layer short-circuits instead of calling Twilio.
func randomTestPhone() string {
	return fmt.Sprintf("%s%04d", utils.TestPhoneNumberBase, rand.Intn(10000))
}

func doRequest(t *testing.T, method, apiPath, token string, body []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, baseURL+apiPath, strings.NewReader(string(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// decodeEnvelope reads the standard response envelope, returning the data
// object (nil when absent).
func decodeEnvelope(t *testing.T, resp *http.Response) (utils.APIResponse, map[string]any) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)

	data, _ := envelope.Data.(map[string]any)
	return envelope, data
}
