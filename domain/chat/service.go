package chat

//go:generate mockgen -destination=mock_completer.go -package=chat github.com/akeren/macro-app-api/pkg/assistant Completer

import (
	"context"
	"strings"

	"github.com/akeren/macro-app-api/domain/recipes"
	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/pkg/assistant"
	apperrors "github.com/akeren/macro-app-api/pkg/errors"
	"github.com/akeren/macro-app-api/pkg/token"
)

type TokenVerifier interface {
	Verify(tokenString string) (token.Identity, error)
}

// RecipeFinder loads the recipe a question is about.
type RecipeFinder interface {
	FindDetails(ctx context.Context, id int64) (*recipes.RecipeDetails, error)
}

type ChatService interface {
	// Ask answers one question about one recipe. Nothing is remembered between calls.
	Ask(ctx context.Context, rawToken string, recipeID int64, message string) (*ChatResponse, error)
}

type chatService struct {
	logger    *log.Logger
	recipes   RecipeFinder
	completer assistant.Completer
	tokens    TokenVerifier
}

func NewChatService(logger *log.Logger, recipes RecipeFinder, completer assistant.Completer, tokens TokenVerifier) ChatService {
	return &chatService{
		logger:    logger,
		recipes:   recipes,
		completer: completer,
		tokens:    tokens,
	}
}

func (s *chatService) Ask(ctx context.Context, rawToken string, recipeID int64, message string) (*ChatResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	message = strings.TrimSpace(message)
	if rawToken == "" || recipeID <= 0 || message == "" {
		return nil, NewMissingFieldsError()
	}

	identity, err := s.tokens.Verify(rawToken)
	if err != nil {
		logger.Warn("Session token rejected", "error", err)
		return nil, NewInvalidTokenError(err)
	}

	recipe, err := s.recipes.FindDetails(ctx, recipeID)
	if err != nil {
		if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			logger.Error("Failed to load recipe for chat", "recipe_id", recipeID, "error", err)
		}
		return nil, err
	}

	completion, err := s.completer.Complete(ctx, SystemPrompt, BuildUserPrompt(recipe, message))
	if err != nil {
		logger.Error("Chat completion failed", "recipe_id", recipeID, "user_id", identity.SubjectID, "error", err)
		return nil, apperrors.NewUpstreamError(apperrors.GenericMessage, err)
	}

	logger.Info("Chat completion served", "recipe_id", recipeID, "conversation_id", completion.ID)

	return &ChatResponse{
		Response:       completion.Content,
		ConversationID: completion.ID,
	}, nil
}
