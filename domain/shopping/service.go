package shopping

//go:generate mockgen -destination=mock_creator.go -package=shopping github.com/akeren/macro-app-api/pkg/instacart ShoppingListCreator

import (
	"context"
	"errors"

	"github.com/akeren/macro-app-api/internal/log"
	apperrors "github.com/akeren/macro-app-api/pkg/errors"
	"github.com/akeren/macro-app-api/pkg/instacart"
	"github.com/akeren/macro-app-api/pkg/token"
)

type TokenVerifier interface {
	Verify(tokenString string) (token.Identity, error)
}

type ShoppingService interface {
	// CreateShoppingList builds a grocery cart for the items and returns its share URL.
	CreateShoppingList(ctx context.Context, rawToken string, items []instacart.Item) (string, error)
}

type shoppingService struct {
	logger  *log.Logger
	creator instacart.ShoppingListCreator
	tokens  TokenVerifier
}

func NewShoppingService(logger *log.Logger, creator instacart.ShoppingListCreator, tokens TokenVerifier) ShoppingService {
	return &shoppingService{logger: logger, creator: creator, tokens: tokens}
}

func (s *shoppingService) CreateShoppingList(ctx context.Context, rawToken string, items []instacart.Item) (string, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if rawToken == "" || len(items) == 0 {
		return "", apperrors.NewInvalidRequestError("Missing required fields", nil)
	}

	identity, err := s.tokens.Verify(rawToken)
	if err != nil {
		logger.Warn("Session token rejected", "error", err)
		return "", apperrors.NewUnauthorizedError("Invalid token", err)
	}

	url, err := s.creator.CreateShoppingList(ctx, items)
	if err != nil {
		step := "unknown"
		var stepErr *instacart.StepError
		if errors.As(err, &stepErr) {
			step = stepErr.Step
		}
		logger.Error("Shopping list creation failed", "step", step, "user_id", identity.SubjectID, "error", err)
		return "", apperrors.NewUpstreamError(apperrors.GenericMessage, err)
	}

	logger.Info("Shopping list created", "user_id", identity.SubjectID, "items", len(items))
	return url, nil
}
