package auth

//go:generate mockgen -destination=mock_otp_provider.go -package=auth github.com/akeren/macro-app-api/pkg/otp Provider

import (
	"context"
	"errors"

	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/internal/models"
	apperrors "github.com/akeren/macro-app-api/pkg/errors"
	"github.com/akeren/macro-app-api/pkg/otp"
	"github.com/akeren/macro-app-api/pkg/token"
)

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(subjectID, displayName string) (string, error)
	Verify(tokenString string) (token.Identity, error)
}

type AuthService interface {
	// SendOTP starts an SMS verification and returns the provider status.
	SendOTP(ctx context.Context, phone string) (string, error)

	// VerifyOTP checks the code and signs the user in, creating the account when a username
	// is supplied. Returns ErrNeedUsername for an unknown number without a username.
	VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*SessionResponse, error)

	// UpdateUsername renames the token's subject and issues a replacement token.
	UpdateUsername(ctx context.Context, rawToken, username string) (*SessionResponse, error)
}

type authService struct {
	logger     *log.Logger
	repository UserRepository
	provider   otp.Provider
	tokens     TokenService
}

func NewAuthService(logger *log.Logger, repository UserRepository, provider otp.Provider, tokens TokenService) AuthService {
	return &authService{
		logger:     logger,
		repository: repository,
		provider:   provider,
		tokens:     tokens,
	}
}

func (s *authService) SendOTP(ctx context.Context, phone string) (string, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	phone = otp.NormalizePhone(phone)
	if len(phone) < 2 {
		return "", apperrors.NewInvalidRequestError("Valid phone number is required", nil)
	}

	status, err := s.provider.StartVerification(ctx, phone)
	if err != nil {
		logger.Error("Failed to send OTP", "error", err)

		var providerErr *otp.ProviderError
		if errors.As(err, &providerErr) {
			return "", apperrors.NewUpstreamError(providerErr.Message(), err)
		}
		return "", apperrors.NewUpstreamError("Failed to send OTP", err)
	}

	logger.Info("OTP sent", "status", status)
	return status, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*SessionResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		return nil, apperrors.NewInvalidRequestError("Missing required fields", nil)
	}

	phone := otp.NormalizePhone(req.PhoneNumber)

	approved, err := s.provider.CheckVerification(ctx, phone, req.OTP)
	if err != nil {
		logger.Error("OTP verification check failed", "error", err)
		return nil, apperrors.NewUpstreamError(apperrors.GenericMessage, err)
	}
	if !approved {
		logger.Warn("OTP not approved")
		return nil, NewInvalidOTPError()
	}

	user, err := s.resolveUser(ctx, phone, NormalizeUsername(req.Username))
	if err != nil {
		return nil, err
	}

	return s.issueSession(user.PhoneNumber, user.Name)
}

func (s *authService) resolveUser(ctx context.Context, phone, username string) (*models.User, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	user, err := s.repository.FindByPhone(ctx, phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		logger.Error("Failed to look up user", "error", err)
		return nil, err
	}

	if username == "" {
		return nil, ErrNeedUsername
	}

	user, err = s.repository.Create(ctx, phone, username)
	if err != nil {
		logger.Error("Failed to create user", "error", err)
		return nil, err
	}

	logger.Info("User created", "user_id", user.ID)
	return user, nil
}

func (s *authService) UpdateUsername(ctx context.Context, rawToken, username string) (*SessionResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	username = NormalizeUsername(username)
	if rawToken == "" || username == "" {
		return nil, apperrors.NewInvalidRequestError("Missing required fields", nil)
	}

	identity, err := s.tokens.Verify(rawToken)
	if err != nil {
		logger.Warn("Session token rejected", "error", err)
		return nil, NewInvalidTokenError(err)
	}

	user, err := s.repository.UpdateName(ctx, identity.SubjectID, username)
	if err != nil {
		logger.Error("Failed to update username", "error", err)
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.NewInvalidRequestError("User not found", err)
		}
		return nil, apperrors.NewInvalidRequestError("Failed to update username", err)
	}

	return s.issueSession(identity.SubjectID, user.Name)
}

func (s *authService) issueSession(subjectID, displayName string) (*SessionResponse, error) {
	signed, err := s.tokens.Issue(subjectID, displayName)
	if err != nil {
		return nil, apperrors.NewInternalServerError(apperrors.GenericMessage, err)
	}

	return &SessionResponse{
		Token:    signed,
		UserID:   subjectID,
		UserName: displayName,
	}, nil
}
