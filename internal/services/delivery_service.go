package services

import (
	"context"
	"fmt"

	twilio "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/carebridge/caregiver-service/internal/config"
	"github.com/carebridge/caregiver-service/internal/utils"
)

// TestPhoneCode is returned for reserved test numbers when the
// accept_fake_phone_numbers flag is on, so suites never hit Twilio.
const TestPhoneCode = "TEST00"

// CodeDeliveryService dispatches a single-use verification code to a phone
// number out of band and returns the code it sent.
type CodeDeliveryService interface {
	DeliverCode(ctx context.Context, phoneNumber string) (string, error)
}

type codeDeliveryService struct {
	cfg          *config.Config
	twilioClient *twilio.RestClient
}

func NewCodeDeliveryService(cfg *config.Config) CodeDeliveryService {
	tClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &codeDeliveryService{cfg: cfg, twilioClient: tClient}
}

func (s *codeDeliveryService) DeliverCode(ctx context.Context, phoneNumber string) (string, error) {
	if s.cfg.LDFlag_AcceptFakePhoneNumbers && utils.IsTestPhoneNumber(phoneNumber) {
		return TestPhoneCode, nil
	}

	code, err := utils.RandomAlphanumericCode(s.cfg.VerificationCodeLength)
	if err != nil {
		return "", err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(s.cfg.LDFlag_TwilioFromPhone)
	params.SetBody(fmt.Sprintf("Your caregiver verification code is %s", code))

	_, sendErr := s.twilioClient.Api.CreateMessage(params)
	if sendErr != nil {
		utils.Logger.WithError(sendErr).Errorf("Failed to send verification SMS to %s via Twilio", phoneNumber)
		return "", fmt.Errorf("%w: failed to send sms via twilio: %v", utils.ErrExternalServiceFailure, sendErr)
	}
	return code, nil
}
