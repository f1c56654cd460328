package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gvr1220/user-management/internal/delivery/api/response"
	deliverycontext "github.com/gvr1220/user-management/internal/delivery/context"
	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves the user administration endpoints.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// ResetPasswordRequest represents the request body for an administrative password reset
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// UnlockResponse reports whether a locked account was unlocked
type UnlockResponse struct {
	Unlocked bool `json:"unlocked"`
}

// searchQuery mirrors the query string of GET /users/search before conversion
type searchQuery struct {
	Nickname       string `query:"nickname"`
	Email          string `query:"email"`
	Role           string `query:"role"`
	IsProfessional string `query:"is_professional"`
	IsLocked       string `query:"is_locked"`
	RegisteredFrom string `query:"registered_from"`
	RegisteredTo   string `query:"registered_to"`
	Offset         string `query:"offset"`
	Limit          string `query:"limit"`
}

// List handles GET /users
func (h *UserHandler) List(c echo.Context) error {
	offset, err := optionalInt("offset", c.QueryParam("offset"))
	if err != nil {
		return response.HandleAppError(c, err)
	}
	limit, err := optionalInt("limit", c.QueryParam("limit"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.userUC.List(c.Request().Context(), offset, limit)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return writePage(c, output)
}

// Search handles GET /users/search
func (h *UserHandler) Search(c echo.Context) error {
	var query searchQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid search parameters")
	}

	input, err := query.toInput()
	if err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.userUC.Search(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return writePage(c, output)
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.GetByID(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

// Update handles PUT /users/:id. Absent fields are untouched; null clears optional profile fields.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}
	input.Actor, _ = deliverycontext.GetPrincipal(c)

	user, err := h.userUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	deleted, err := h.userUC.Delete(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !deleted {
		return response.HandleAppError(c, domainerrors.ErrUserNotFound)
	}

	return c.NoContent(http.StatusNoContent)
}

// Unlock handles POST /users/:id/unlock
func (h *UserHandler) Unlock(c echo.Context) error {
	id, err := pathUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	unlocked, err := h.userUC.Unlock(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, UnlockResponse{Unlocked: unlocked})
}

// ResetPassword handles POST /users/:id/reset-password
func (h *UserHandler) ResetPassword(c echo.Context) error {
	id, err := pathUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password reset input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	reset, err := h.userUC.ResetPassword(c.Request().Context(), id, req.Password)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !reset {
		return response.HandleAppError(c, domainerrors.ErrUserNotFound)
	}

	return c.NoContent(http.StatusNoContent)
}

func writePage(c echo.Context, output *usecase.SearchUsersOutput) error {
	return response.Paginated(c, toUserResponses(output.Users), &response.Pagination{
		Total:  output.Total,
		Offset: output.Offset,
		Limit:  output.Limit,
	})
}

func pathUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("id must be a UUID")
	}

	return id, nil
}

func (q searchQuery) toInput() (*usecase.SearchUsersInput, error) {
	input := &usecase.SearchUsersInput{
		Nickname: q.Nickname,
		Email:    q.Email,
	}

	var err error
	if input.Offset, err = optionalInt("offset", q.Offset); err != nil {
		return nil, err
	}
	if input.Limit, err = optionalInt("limit", q.Limit); err != nil {
		return nil, err
	}

	if q.Role != "" {
		role, ok := entity.ParseRole(q.Role)
		if !ok {
			return nil, domainerrors.ErrValidationFailed.WithDetails("role must be one of ADMIN, MANAGER, AUTHENTICATED, ANONYMOUS")
		}
		input.Role = &role
	}

	if input.IsProfessional, err = optionalBool("is_professional", q.IsProfessional); err != nil {
		return nil, err
	}
	if input.IsLocked, err = optionalBool("is_locked", q.IsLocked); err != nil {
		return nil, err
	}
	if input.RegisteredFrom, err = optionalTime("registered_from", q.RegisteredFrom); err != nil {
		return nil, err
	}
	if input.RegisteredTo, err = optionalTime("registered_to", q.RegisteredTo); err != nil {
		return nil, err
	}

	return input, nil
}

func optionalInt(name, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails(name + " must be an integer")
	}

	return v, nil
}

func optionalBool(name, raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be true or false")
	}

	return &v, nil
}

// optionalTime accepts RFC 3339 timestamps or plain dates (taken as UTC midnight).
func optionalTime(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if v, err := time.Parse(layout, raw); err == nil {
			return &v, nil
		}
	}

	return nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be an RFC 3339 timestamp or YYYY-MM-DD date")
}
