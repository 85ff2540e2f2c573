package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/carebridge/caregiver-service/internal/utils"
)

const AppName = "caregiver-service"

// Config holds all application configuration, including secrets and flags.
type Config struct {
	AppName          string
	AppPort          string
	AppUrl           string
	DBUrl            string
	TwilioAccountSID string
	TwilioAuthToken  string

	// Pairing-cache entries live this long before expiring on their own.
	PairingTTL             time.Duration
	VerificationCodeLength int
	TokenExpiry            time.Duration

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	// Static flags fetched once from LaunchDarkly
	LDFlag_TwilioFromPhone         string
	LDFlag_AcceptFakePhoneNumbers  bool
	LDFlag_ValidatePhoneWithTwilio bool
	LDFlag_ShortPairingTTL         bool
	LDFlag_CORSHighSecurity        bool
}

// Constants for time-based configuration defaults.
const (
	DefaultPairingTTL      = 1 * time.Hour
	TestShortPairingTTL    = 3 * time.Second
	VerificationCodeLength = 6
	DefaultTokenExpiry     = 10 * time.Minute
	LDConnectionTimeout    = 5 * time.Second
)

// LoadConfig reads required env vars, fetches static flags from
// LaunchDarkly, and returns a *Config. Any missing piece is fatal.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appUrl := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}
	twilioAccountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	if twilioAccountSID == "" {
		utils.Logger.Fatal("TWILIO_ACCOUNT_SID env var is missing")
	}
	twilioAuthToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if twilioAuthToken == "" {
		utils.Logger.Fatal("TWILIO_AUTH_TOKEN env var is missing")
	}
	ldSDKKey := os.Getenv("LD_SDK_KEY")
	if ldSDKKey == "" {
		utils.Logger.Fatal("LD_SDK_KEY env var is missing")
	}

	privateKey := parseRSAPrivateKey("RSA_PRIVATE_KEY_BASE64")
	publicKey := parseRSAPublicKey("RSA_PUBLIC_KEY_BASE64")

	//----------------------------------------------------------------------
	// Initialize the LaunchDarkly client and fetch the static flags.
	//----------------------------------------------------------------------
	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	context := ldcontext.NewWithKind("service", AppName+"-"+env)

	twilioFromPhoneFlag, err := ldClient.StringVariation("twilio_from_phone", context, "")
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving twilio_from_phone flag")
	}
	if twilioFromPhoneFlag == "" {
		utils.Logger.Fatal("twilio_from_phone flag is empty")
	}
	utils.Logger.Debugf("twilio_from_phone flag: %s", twilioFromPhoneFlag)

	acceptFakePhonesFlag, err := ldClient.BoolVariation("accept_fake_phone_numbers", context, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving accept_fake_phone_numbers flag")
	}
	utils.Logger.Debugf("accept_fake_phone_numbers flag: %t", acceptFakePhonesFlag)

	validatePhoneWithTwilioFlag, err := ldClient.BoolVariation("validate_phone_with_twilio", context, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving validate_phone_with_twilio flag")
	}
	utils.Logger.Debugf("validate_phone_with_twilio flag: %t", validatePhoneWithTwilioFlag)

	shortPairingTTLFlag, err := ldClient.BoolVariation("short_pairing_ttl", context, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving short_pairing_ttl flag")
	}
	utils.Logger.Debugf("short_pairing_ttl flag: %t", shortPairingTTLFlag)

	corsHighSecurityFlag, err := ldClient.BoolVariation("cors_high_security", context, true)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving cors_high_security flag")
	}

	pairingTTL := DefaultPairingTTL
	if shortPairingTTLFlag {
		pairingTTL = TestShortPairingTTL
	}

	return &Config{
		AppName:          AppName,
		AppPort:          appPort,
		AppUrl:           appUrl,
		DBUrl:            dbUrl,
		TwilioAccountSID: twilioAccountSID,
		TwilioAuthToken:  twilioAuthToken,

		PairingTTL:             pairingTTL,
		VerificationCodeLength: VerificationCodeLength,
		TokenExpiry:            DefaultTokenExpiry,

		RSAPrivateKey: privateKey,
		RSAPublicKey:  publicKey,

		LDFlag_TwilioFromPhone:         twilioFromPhoneFlag,
		LDFlag_AcceptFakePhoneNumbers:  acceptFakePhonesFlag,
		LDFlag_ValidatePhoneWithTwilio: validatePhoneWithTwilioFlag,
		LDFlag_ShortPairingTTL:         shortPairingTTLFlag,
		LDFlag_CORSHighSecurity:        corsHighSecurityFlag,
	}
}

// Close releases config-held resources. The LaunchDarkly client is already
// closed after the static fetch; this exists for symmetry with App.Close.
func (c *Config) Close() {
	utils.Logger.Infof("%s config closed.", c.AppName)
}

func parseRSAPrivateKey(envName string) *rsa.PrivateKey {
	keyBase64 := os.Getenv(envName)
	if keyBase64 == "" {
		utils.Logger.Fatalf("%s env var is missing", envName)
	}
	keyPEM, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Failed to decode %s from base64", envName)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}
	return privateKey
}

func parseRSAPublicKey(envName string) *rsa.PublicKey {
	keyBase64 := os.Getenv(envName)
	if keyBase64 == "" {
		utils.Logger.Fatalf("%s env var is missing", envName)
	}
	keyPEM, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Failed to decode %s from base64", envName)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(keyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}
	return publicKey
}
