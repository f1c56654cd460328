// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"github.com/gvr1220/user-management/config"
	deliverycontext "github.com/gvr1220/user-management/internal/delivery/context"
	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/domain/repository"
	"github.com/gvr1220/user-management/internal/domain/service"
	"github.com/gvr1220/user-management/internal/usecase"
	"github.com/gvr1220/user-management/internal/validator"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const passwordRules = "required,min=8,max=72"

// userService implements the UserUsecase interface.
type userService struct {
	txManager           repository.TransactionManager
	userRepo            repository.UserRepository
	hasher              service.PasswordHasher
	tokenGenerator      service.TokenGenerator
	nicknameGenerator   service.NicknameGenerator
	notifier            service.VerificationNotifier
	rolePolicy          service.RolePolicy
	validator           *validator.Validator
	maxLoginAttempts    int
	nicknameMaxAttempts int
	now                 func() time.Time
	logger              *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	Hasher            service.PasswordHasher
	TokenGenerator    service.TokenGenerator
	NicknameGenerator service.NicknameGenerator
	Notifier          service.VerificationNotifier
	RolePolicy        service.RolePolicy
	Validator         *validator.Validator
	Config            *config.Config
	Logger            *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return newUserService(params)
}

func newUserService(params UserServiceParams) *userService {
	maxLoginAttempts := 5
	nicknameMaxAttempts := 10
	if params.Config != nil && params.Config.Auth != nil {
		if params.Config.Auth.MaxLoginAttempts > 0 {
			maxLoginAttempts = params.Config.Auth.MaxLoginAttempts
		}
		if params.Config.Auth.NicknameMaxAttempts > 0 {
			nicknameMaxAttempts = params.Config.Auth.NicknameMaxAttempts
		}
	}

	v := params.Validator
	if v == nil {
		v = validator.New()
	}

	return &userService{
		txManager:           params.TxManager,
		userRepo:            params.UserRepo,
		hasher:              params.Hasher,
		tokenGenerator:      params.TokenGenerator,
		nicknameGenerator:   params.NicknameGenerator,
		notifier:            params.Notifier,
		rolePolicy:          params.RolePolicy,
		validator:           v,
		maxLoginAttempts:    maxLoginAttempts,
		nicknameMaxAttempts: nicknameMaxAttempts,
		now:                 time.Now,
		logger:              params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account, then asks the notifier to send the verification email.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if err := srv.validator.Validate(input); err != nil {
		srv.log(ctx).Warn("Registration input rejected", slog.Any("error", err))

		return nil, err
	}

	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	// Hashing is CPU-bound, keep it outside the transaction.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	verificationToken, err := srv.tokenGenerator.Generate()
	if err != nil {
		srv.log(ctx).Error("Failed to generate verification token", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, "failed to generate verification token")
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate user id")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// Serializes the email check and the first-admin count against concurrent registrations.
		if err := userRepo.LockRegistration(ctx); err != nil {
			return errors.Wrap(err, "failed to acquire registration lock")
		}

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return errors.Wrap(domainerrors.ErrDuplicateEmail, "email already registered")
		} else if !errors.Is(err, domainerrors.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		nickname, err := srv.resolveNickname(ctx, userRepo, input.Nickname)
		if err != nil {
			return err
		}

		existing, err := userRepo.Count(ctx, repository.UserFilter{})
		if err != nil {
			return errors.Wrap(err, "failed to count users")
		}

		role := entity.RoleAnonymous
		if existing == 0 {
			role = entity.RoleAdmin
		}

		now := srv.now().UTC()
		newUser := &entity.User{
			ID:                userID,
			Email:             email,
			Nickname:          nickname,
			PasswordHash:      hashedPassword,
			Role:              role,
			FirstName:         input.FirstName,
			LastName:          input.LastName,
			Bio:               input.Bio,
			ProfilePictureURL: input.ProfilePictureURL,
			IsProfessional:    input.IsProfessional,
			VerificationToken: &verificationToken,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Registration rejected, email already registered", slog.String("email", email))
		} else {
			srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))
		}

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Info("User registered",
		slog.String("user_id", registeredUser.ID.String()),
		slog.String("role", registeredUser.Role.String()),
	)

	// The user is committed; a delivery failure is reported, not rolled back.
	emailSent := true
	if err := srv.notifier.SendVerificationEmail(ctx, registeredUser); err != nil {
		emailSent = false
		srv.log(ctx).Error("Verification email delivery failed",
			slog.String("user_id", registeredUser.ID.String()),
			slog.String("error_code", domainerrors.ErrDeliveryFailed.ErrorCode()),
			slog.Any("error", err),
		)
	}

	return &usecase.RegisterOutput{User: registeredUser, VerificationEmailSent: emailSent}, nil
}

// resolveNickname keeps a free requested nickname, otherwise draws generated
// candidates until one is free or the attempt cap is reached.
func (srv *userService) resolveNickname(ctx context.Context, userRepo repository.UserRepository, requested string) (string, error) {
	if requested != "" {
		taken, err := nicknameTaken(ctx, userRepo, requested)
		if err != nil {
			return "", err
		}
		if !taken {
			return requested, nil
		}
		srv.log(ctx).Debug("Requested nickname taken, generating one", slog.String("nickname", requested))
	}

	for attempt := 1; attempt <= srv.nicknameMaxAttempts; attempt++ {
		candidate := srv.nicknameGenerator.Generate()

		taken, err := nicknameTaken(ctx, userRepo, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	srv.log(ctx).Error("Nickname generation exhausted", slog.Int("attempts", srv.nicknameMaxAttempts))

	return "", errors.Wrapf(domainerrors.ErrNicknameSpaceExhausted, "no free nickname after %d attempts", srv.nicknameMaxAttempts)
}

func nicknameTaken(ctx context.Context, userRepo repository.UserRepository, nickname string) (bool, error) {
	_, err := userRepo.FindByNickname(ctx, nickname)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return false, nil
	}

	return false, errors.Wrap(err, "failed to check nickname availability")
}

// Login authenticates by email and password. Every rejection returns the same
// ErrInvalidCredentials; the reason is only logged.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if err := srv.validator.Validate(input); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.loadLoginUser(ctx, email)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, srv.rejectLogin(ctx, email, "unknown_email")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load login user from primary")
	}

	if !user.EmailVerified {
		return nil, srv.rejectLogin(ctx, email, "email_not_verified")
	}

	// Locked accounts are rejected without touching the counter.
	if user.IsLocked {
		return nil, srv.rejectLogin(ctx, email, "account_locked")
	}

	// Check password outside transaction (hashing is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		updated, err := srv.userRepo.RecordFailedLogin(ctx, user.ID, srv.maxLoginAttempts)
		switch {
		case errors.Is(err, domainerrors.ErrUserNotFound):
			// Locked or deleted by a concurrent request.
		case err != nil:
			return nil, errors.Wrap(err, "failed to record failed login")
		case updated.IsLocked:
			srv.log(ctx).Warn("Account locked after repeated failed logins",
				slog.String("user_id", user.ID.String()),
				slog.Int("failed_attempts", updated.FailedLoginAttempts),
			)
		}

		return nil, srv.rejectLogin(ctx, email, "wrong_password")
	}

	loggedInUser, err := srv.userRepo.RecordSuccessfulLogin(ctx, user.ID, srv.now().UTC())
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, srv.rejectLogin(ctx, email, "account_locked")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to record successful login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.String("user_id", loggedInUser.ID.String()))

	return &usecase.LoginOutput{User: loggedInUser}, nil
}

// loadLoginUser reads from the primary in a short transaction to avoid stale replica reads.
func (srv *userService) loadLoginUser(ctx context.Context, email string) (*entity.User, error) {
	var user *entity.User
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		user, err = repoFactory.NewUserRepository().FindByEmail(ctx, email)

		return err
	}); err != nil {
		return nil, err
	}

	return user, nil
}

func (srv *userService) rejectLogin(ctx context.Context, email, reason string) error {
	srv.log(ctx).Warn("Login rejected", slog.String("email", email), slog.String("reason", reason))

	return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
}

// VerifyEmail redeems a pending verification token. A missing user, a missing
// token or a mismatch returns false without changing anything.
func (srv *userService) VerifyEmail(ctx context.Context, id uuid.UUID, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	verified := false
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByIDForUpdate(ctx, id)
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to load user for verification")
		}

		if !user.HasPendingVerification() ||
			subtle.ConstantTimeCompare([]byte(*user.VerificationToken), []byte(token)) != 1 {
			return nil
		}

		changes := repository.UserChanges{
			EmailVerified:     entity.Set(true),
			VerificationToken: entity.Null[string](),
		}
		// ADMIN and MANAGER keep their role.
		if user.Role == entity.RoleAnonymous {
			changes.Role = entity.Set(entity.RoleAuthenticated)
		}

		if _, err := userRepo.Update(ctx, id, changes); err != nil {
			return errors.Wrap(err, "failed to mark email verified")
		}

		verified = true

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute verification transaction", slog.String("user_id", id.String()), slog.Any("error", err))

		return false, errors.Wrap(err, "failed to execute email verification transaction")
	}

	if verified {
		srv.log(ctx).Info("Email verified", slog.String("user_id", id.String()))
	} else {
		srv.log(ctx).Warn("Email verification rejected", slog.String("user_id", id.String()))
	}

	return verified, nil
}

// ResetPassword replaces the credential and clears the lockout state in one update.
func (srv *userService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (bool, error) {
	if err := srv.validator.Var("password", newPassword, passwordRules); err != nil {
		return false, err
	}

	hashedPassword, err := srv.hasher.Hash(newPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during reset", slog.Any("error", err))

		return false, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during reset")
	}

	_, err = srv.userRepo.Update(ctx, id, repository.UserChanges{
		PasswordHash:        entity.Set(hashedPassword),
		FailedLoginAttempts: entity.Set(0),
		IsLocked:            entity.Set(false),
	})
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to reset password")
	}

	srv.log(ctx).Info("Password reset", slog.String("user_id", id.String()))

	return true, nil
}

// Unlock clears the lock of a locked account and reports whether anything changed.
func (srv *userService) Unlock(ctx context.Context, id uuid.UUID) (bool, error) {
	unlocked := false
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByIDForUpdate(ctx, id)
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to load user for unlock")
		}
		if !user.IsLocked {
			return nil
		}

		if _, err := userRepo.Update(ctx, id, repository.UserChanges{
			IsLocked:            entity.Set(false),
			FailedLoginAttempts: entity.Set(0),
		}); err != nil {
			return errors.Wrap(err, "failed to unlock user")
		}

		unlocked = true

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute unlock transaction", slog.String("user_id", id.String()), slog.Any("error", err))

		return false, errors.Wrap(err, "failed to execute unlock transaction")
	}

	if unlocked {
		srv.log(ctx).Info("Account unlocked", slog.String("user_id", id.String()))
	}

	return unlocked, nil
}

// IsAccountLocked reports the lock flag for email; unknown emails are not locked.
func (srv *userService) IsAccountLocked(ctx context.Context, email string) (bool, error) {
	user, err := srv.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to find user by email")
	}

	return user.IsLocked, nil
}

// GetByID returns the user or ErrUserNotFound.
func (srv *userService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// GetByEmail returns the user with the normalized email or ErrUserNotFound.
func (srv *userService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return user, nil
}

// GetByNickname returns the user or ErrUserNotFound.
func (srv *userService) GetByNickname(ctx context.Context, nickname string) (*entity.User, error) {
	user, err := srv.userRepo.FindByNickname(ctx, strings.TrimSpace(nickname))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by nickname")
	}

	return user, nil
}

// Delete hard-deletes a user. Deleting an unknown id returns false.
func (srv *userService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := srv.userRepo.Delete(ctx, id)
	if err != nil {
		srv.log(ctx).Error("Failed to delete user", slog.String("user_id", id.String()), slog.Any("error", err))

		return false, errors.Wrap(err, "failed to delete user")
	}

	if deleted {
		srv.log(ctx).Info("User deleted", slog.String("user_id", id.String()))
	}

	return deleted, nil
}

// Count returns the total number of users.
func (srv *userService) Count(ctx context.Context) (int64, error) {
	total, err := srv.userRepo.Count(ctx, repository.UserFilter{})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return total, nil
}
