package impl

import (
	"context"
	"testing"
	"time"

	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/domain/repository"
	mockRepo "github.com/gvr1220/user-management/internal/mocks/repository"
	mockSvc "github.com/gvr1220/user-management/internal/mocks/service"
	"github.com/gvr1220/user-management/internal/usecase"
	"github.com/gvr1220/user-management/internal/validator"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds the mocked dependencies for error-path tests.
type userServiceFixtures struct {
	service   usecase.UserUsecase
	txManager *mockRepo.MockTransactionManager
	txFactory *mockRepo.MockRepositoryFactory
	txRepo    *mockRepo.MockUserRepository
	userRepo  *mockRepo.MockUserRepository
	hasher    *mockSvc.MockPasswordHasher
	tokens    *mockSvc.MockTokenGenerator
	notifier  *mockSvc.MockVerificationNotifier
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	txFactory := mockRepo.NewMockRepositoryFactory(t)
	txRepo := mockRepo.NewMockUserRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokens := mockSvc.NewMockTokenGenerator(t)
	notifier := mockSvc.NewMockVerificationNotifier(t)

	service := NewUserService(UserServiceParams{
		TxManager:         txManager,
		UserRepo:          userRepo,
		Hasher:            hasher,
		TokenGenerator:    tokens,
		NicknameGenerator: mockSvc.NewMockNicknameGenerator(t),
		Notifier:          notifier,
		RolePolicy:        mockSvc.NewMockRolePolicy(t),
		Validator:         validator.New(),
		Config:            newTestConfig(),
		Logger:            newDiscardLogger(),
	})

	return userServiceFixtures{
		service:   service,
		txManager: txManager,
		txFactory: txFactory,
		txRepo:    txRepo,
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		notifier:  notifier,
	}
}

// runTransactions makes Execute invoke its callback with the transactional repository.
func (fx userServiceFixtures) runTransactions() {
	fx.txFactory.EXPECT().NewUserRepository().Return(fx.txRepo).Maybe()
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(fx.txFactory)
		})
}

func TestUserService_Register_HashError(t *testing.T) {
	fx := createTestUserService(t)

	fx.hasher.EXPECT().Hash(testPassword).Return("", errors.New("hash error"))

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "a@example.com",
		Password: testPassword,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestUserService_Register_TokenError(t *testing.T) {
	fx := createTestUserService(t)

	fx.hasher.EXPECT().Hash(testPassword).Return("hashed", nil)
	fx.tokens.EXPECT().Generate().Return("", errors.New("entropy exhausted"))

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "a@example.com",
		Password: testPassword,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenGenerationFailed))
}

func TestUserService_Register_LockError(t *testing.T) {
	fx := createTestUserService(t)
	fx.runTransactions()

	fx.hasher.EXPECT().Hash(testPassword).Return("hashed", nil)
	fx.tokens.EXPECT().Generate().Return("token", nil)
	fx.txRepo.EXPECT().LockRegistration(mock.Anything).Return(errors.New("lock timeout"))

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "a@example.com",
		Password: testPassword,
		Nickname: "alpha",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to acquire registration lock")
}

func TestUserService_Register_CreateError(t *testing.T) {
	fx := createTestUserService(t)
	fx.runTransactions()

	storeErr := domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "failed to create user")

	fx.hasher.EXPECT().Hash(testPassword).Return("hashed", nil)
	fx.tokens.EXPECT().Generate().Return("token", nil)
	fx.txRepo.EXPECT().LockRegistration(mock.Anything).Return(nil)
	fx.txRepo.EXPECT().FindByEmail(mock.Anything, "a@example.com").Return(nil, domainerrors.ErrUserNotFound)
	fx.txRepo.EXPECT().FindByNickname(mock.Anything, "alpha").Return(nil, domainerrors.ErrUserNotFound)
	fx.txRepo.EXPECT().Count(mock.Anything, repository.UserFilter{}).Return(int64(3), nil)
	fx.txRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.User")).Return(storeErr)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "A@example.com",
		Password: testPassword,
		Nickname: "alpha",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrStoreFailure))
}

func TestUserService_Register_PassesCommittedUserToNotifier(t *testing.T) {
	fx := createTestUserService(t)
	fx.runTransactions()

	fx.hasher.EXPECT().Hash(testPassword).Return("hashed", nil)
	fx.tokens.EXPECT().Generate().Return("token", nil)
	fx.txRepo.EXPECT().LockRegistration(mock.Anything).Return(nil)
	fx.txRepo.EXPECT().FindByEmail(mock.Anything, "a@example.com").Return(nil, domainerrors.ErrUserNotFound)
	fx.txRepo.EXPECT().FindByNickname(mock.Anything, "alpha").Return(nil, domainerrors.ErrUserNotFound)
	fx.txRepo.EXPECT().Count(mock.Anything, repository.UserFilter{}).Return(int64(0), nil)
	fx.txRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	fx.notifier.EXPECT().
		SendVerificationEmail(mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "a@example.com" &&
				u.PasswordHash == "hashed" &&
				u.VerificationToken != nil && *u.VerificationToken == "token" &&
				u.Role == entity.RoleAdmin
		})).
		Return(nil)

	out, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "a@example.com",
		Password: testPassword,
		Nickname: "alpha",
	})
	require.NoError(t, err)
	assert.True(t, out.VerificationEmailSent)
}

func TestUserService_Login_RecordFailedLoginError(t *testing.T) {
	fx := createTestUserService(t)
	fx.runTransactions()

	user := &entity.User{ID: uuid.New(), Email: "a@example.com", PasswordHash: "hashed", EmailVerified: true}

	fx.txRepo.EXPECT().FindByEmail(mock.Anything, "a@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("wrong-password", "hashed").Return(false)
	fx.userRepo.EXPECT().RecordFailedLogin(mock.Anything, user.ID, 5).Return(nil, errors.New("database error"))

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "a@example.com", Password: "wrong-password"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Contains(t, err.Error(), "failed to record failed login")
}

func TestUserService_Login_LockedConcurrently(t *testing.T) {
	fx := createTestUserService(t)
	fx.runTransactions()

	user := &entity.User{ID: uuid.New(), Email: "a@example.com", PasswordHash: "hashed", EmailVerified: true}

	fx.txRepo.EXPECT().FindByEmail(mock.Anything, "a@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check(testPassword, "hashed").Return(true)
	fx.userRepo.EXPECT().
		RecordSuccessfulLogin(mock.Anything, user.ID, mock.AnythingOfType("time.Time")).
		Return(nil, domainerrors.ErrUserNotFound)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "a@example.com", Password: testPassword})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_LockedAccountSkipsPasswordCheck(t *testing.T) {
	fx := createTestUserService(t)
	fx.runTransactions()

	user := &entity.User{ID: uuid.New(), Email: "a@example.com", EmailVerified: true, IsLocked: true}

	fx.txRepo.EXPECT().FindByEmail(mock.Anything, "a@example.com").Return(user, nil)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "a@example.com", Password: testPassword})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_VerifyEmail_UpdateError(t *testing.T) {
	fx := createTestUserService(t)
	fx.runTransactions()

	token := "token"
	user := &entity.User{ID: uuid.New(), Role: entity.RoleAnonymous, VerificationToken: &token}

	fx.txRepo.EXPECT().FindByIDForUpdate(mock.Anything, user.ID).Return(user, nil)
	fx.txRepo.EXPECT().
		Update(mock.Anything, user.ID, mock.MatchedBy(func(c repository.UserChanges) bool {
			role, ok := c.Role.Get()

			return ok && role == entity.RoleAuthenticated && c.VerificationToken.IsNull()
		})).
		Return(nil, errors.New("database error"))

	ok, err := fx.service.VerifyEmail(context.Background(), user.ID, token)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestUserService_ResetPassword_HashError(t *testing.T) {
	fx := createTestUserService(t)

	fx.hasher.EXPECT().Hash("new-password").Return("", errors.New("hash error"))

	ok, err := fx.service.ResetPassword(context.Background(), uuid.New(), "new-password")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestUserService_Search_CountError(t *testing.T) {
	fx := createTestUserService(t)

	fx.userRepo.EXPECT().
		Search(mock.Anything, repository.UserFilter{Nickname: "jo"}, repository.Page{Limit: usecase.DefaultPageLimit}).
		Return([]*entity.User{}, nil)
	fx.userRepo.EXPECT().Count(mock.Anything, repository.UserFilter{Nickname: "jo"}).Return(int64(0), errors.New("database error"))

	_, err := fx.service.Search(context.Background(), &usecase.SearchUsersInput{Nickname: " jo "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count users")
}

func TestUserService_Search_UsesSameFilterForPageAndTotal(t *testing.T) {
	fx := createTestUserService(t)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	locked := true
	filter := repository.UserFilter{Email: "example", IsLocked: &locked, CreatedFrom: &from}
	users := []*entity.User{{ID: uuid.New()}}

	fx.userRepo.EXPECT().Search(mock.Anything, filter, repository.Page{Offset: 20, Limit: 10}).Return(users, nil)
	fx.userRepo.EXPECT().Count(mock.Anything, filter).Return(int64(21), nil)

	out, err := fx.service.Search(context.Background(), &usecase.SearchUsersInput{
		Email:          "example",
		IsLocked:       &locked,
		RegisteredFrom: &from,
		Offset:         20,
		Limit:          10,
	})
	require.NoError(t, err)
	assert.Equal(t, users, out.Users)
	assert.Equal(t, int64(21), out.Total)
}

func TestUserService_Delete_StoreError(t *testing.T) {
	fx := createTestUserService(t)
	id := uuid.New()

	fx.userRepo.EXPECT().Delete(mock.Anything, id).Return(false, errors.New("database error"))

	deleted, err := fx.service.Delete(context.Background(), id)
	require.Error(t, err)
	assert.False(t, deleted)
}
