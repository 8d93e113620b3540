package auth

import (
	"errors"
	"net/http"

	"github.com/akeren/macro-app-api/config/router"
	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/pkg/otp"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewAuthController(
	db *gorm.DB,
	logger *log.Logger,
	provider otp.Provider,
	tokens TokenService,
) *router.RESTController {

	return router.NewRESTController(
		"AuthController",
		"/api/auth",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewUserRepository(db)
			service := NewAuthService(logger, repository, provider, tokens)

			rs.AddPostHandler(c, "/send-otp", sendOTPHandler(service))
			rs.AddPostHandler(c, "/verify-otp", verifyOTPHandler(service))
			rs.AddPostHandler(c, "/update-username", updateUsernameHandler(service))
		},
	)
}

func sendOTPHandler(service AuthService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SendOTPRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind request", "error", err)
			return router.ValidationFailedResult("Valid phone number is required", err, &req)
		}

		status, err := service.SendOTP(ctx.Request.Context(), req.PhoneNumber)
		if err != nil {
			return router.ErrorResultFrom(err)
		}

		return router.OKResult(gin.H{"status": status})
	}
}

func verifyOTPHandler(service AuthService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req VerifyOTPRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind request", "error", err)
			return router.ValidationFailedResult("Missing required fields", err, &req)
		}

		session, err := service.VerifyOTP(ctx.Request.Context(), &req)
		if errors.Is(err, ErrNeedUsername) {
			return router.FailureResult(http.StatusOK, CodeNeedUsername, "Username is required for new users")
		}
		if err != nil {
			return router.ErrorResultFrom(err)
		}

		return router.OKResult(session.toMap())
	}
}

func updateUsernameHandler(service AuthService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req UpdateUsernameRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind request", "error", err)
			return router.ValidationFailedResult("Missing required fields", err, &req)
		}

		rawToken := router.SessionToken(ctx, req.Token)
		session, err := service.UpdateUsername(ctx.Request.Context(), rawToken, req.Username)
		if err != nil {
			return router.ErrorResultFrom(err)
		}

		return router.OKResult(session.toMap())
	}
}
