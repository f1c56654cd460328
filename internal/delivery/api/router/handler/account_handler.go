package handler

import (
	"log/slog"
	"net/http"

	"github.com/gvr1220/user-management/internal/delivery/api/response"
	"github.com/gvr1220/user-management/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// AccountHandler serves the unauthenticated account endpoints: register, login and email verification.
type AccountHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	User                  *UserResponse `json:"user"`
	VerificationEmailSent bool          `json:"verification_email_sent"`
}

// VerifyEmailResponse reports the outcome of redeeming a verification link
type VerifyEmailResponse struct {
	Verified bool `json:"verified"`
}

// Register handles POST /register
func (h *AccountHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.userUC.Register(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, RegisterResponse{
		User:                  toUserResponse(output.User),
		VerificationEmailSent: output.VerificationEmailSent,
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.userUC.Login(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(output.User))
}

// VerifyEmail handles GET /verify-email/:user_id/:token
func (h *AccountHandler) VerifyEmail(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_VERIFICATION_LINK", "Verification link is invalid or has already been used")
	}

	verified, err := h.userUC.VerifyEmail(c.Request().Context(), userID, c.Param("token"))
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !verified {
		return response.BadRequest(c, "INVALID_VERIFICATION_LINK", "Verification link is invalid or has already been used")
	}

	return response.Success(c, http.StatusOK, VerifyEmailResponse{Verified: true})
}
