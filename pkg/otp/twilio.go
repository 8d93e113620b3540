// Package otp sends and checks one-time SMS codes through Twilio Verify.
package otp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

const (
	channelSMS     = "sms"
	statusApproved = "approved"
	statusPending  = "pending"
)

// Provider is the verification surface the auth handlers depend on.
type Provider interface {
	// StartVerification sends a code to phone and returns the provider status ("pending").
	StartVerification(ctx context.Context, phone string) (string, error)
	// CheckVerification reports whether code is approved for phone. A rejected or expired code
	// is (false, nil); errors are reserved for provider failures.
	CheckVerification(ctx context.Context, phone, code string) (bool, error)
}

type Config struct {
	AccountSID string
	AuthToken  string
	ServiceSID string
	Timeout    time.Duration
	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

type TwilioVerify struct {
	rest       *twilio.RestClient
	serviceSID string
}

func NewTwilioVerify(cfg Config) (*TwilioVerify, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.ServiceSID == "" {
		return nil, errors.New("otp: twilio account sid, auth token and verify service sid are required")
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Transport != nil {
		httpClient.Transport = cfg.Transport
	}

	base := &client.Client{
		Credentials: client.NewCredentials(cfg.AccountSID, cfg.AuthToken),
		HTTPClient:  httpClient,
	}
	base.SetAccountSid(cfg.AccountSID)

	return &TwilioVerify{
		rest:       twilio.NewRestClientWithParams(twilio.ClientParams{Client: base}),
		serviceSID: cfg.ServiceSID,
	}, nil
}

// The twilio client does not take a context; cancellation is bounded by the HTTP client timeout.
func (t *TwilioVerify) StartVerification(ctx context.Context, phone string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel(channelSMS)

	resp, err := t.rest.VerifyV2.CreateVerification(t.serviceSID, params)
	if err != nil {
		return "", &ProviderError{Op: "start verification", Err: err}
	}

	if resp.Status == nil || *resp.Status == "" {
		return statusPending, nil
	}
	return *resp.Status, nil
}

func (t *TwilioVerify) CheckVerification(ctx context.Context, phone, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	resp, err := t.rest.VerifyV2.CreateVerificationCheck(t.serviceSID, params)
	if err != nil {
		// Twilio answers 404 once a verification has expired, been used, or never existed.
		var restErr *client.TwilioRestError
		if errors.As(err, &restErr) && restErr.Status == http.StatusNotFound {
			return false, nil
		}
		return false, &ProviderError{Op: "check verification", Err: err}
	}

	return resp.Status != nil && *resp.Status == statusApproved, nil
}

// ProviderError carries the provider's own message, which the send-otp response echoes.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("otp: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Message returns the provider's human readable message without request metadata.
func (e *ProviderError) Message() string {
	var restErr *client.TwilioRestError
	if errors.As(e.Err, &restErr) && restErr.Message != "" {
		return restErr.Message
	}
	return e.Err.Error()
}

// NormalizePhone converts a phone number to E.164 form by prefixing "+" when absent.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+" + phone
}
