package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gvr1220/user-management/config"
	"github.com/gvr1220/user-management/internal/domain/entity"
	"github.com/gvr1220/user-management/internal/domain/policy"
	"github.com/gvr1220/user-management/internal/infra/auth"
	"github.com/gvr1220/user-management/internal/infra/persistence/memory"
	mockSvc "github.com/gvr1220/user-management/internal/mocks/service"
	"github.com/gvr1220/user-management/internal/usecase"
	"github.com/gvr1220/user-management/internal/validator"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct-horse-battery"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:          bcrypt.MinCost,
			MaxLoginAttempts:    5,
			NicknameMaxAttempts: 3,
			RoleManagers:        []string{"ADMIN"},
		},
	}
}

// storeFixture runs the service against the in-memory store with a real hasher
// and role policy; token and nickname generation and delivery are mocked.
type storeFixture struct {
	service   *userService
	store     *memory.Store
	tokens    *mockSvc.MockTokenGenerator
	nicknames *mockSvc.MockNicknameGenerator
	notifier  *mockSvc.MockVerificationNotifier
	clock     *testClock
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()

	cfg := newTestConfig()
	store := memory.NewStore()
	tokens := mockSvc.NewMockTokenGenerator(t)
	nicknames := mockSvc.NewMockNicknameGenerator(t)
	notifier := mockSvc.NewMockVerificationNotifier(t)

	srv := newUserService(UserServiceParams{
		TxManager:         memory.NewTransactionManager(store),
		UserRepo:          memory.NewUserRepository(store),
		Hasher:            auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenGenerator:    tokens,
		NicknameGenerator: nicknames,
		Notifier:          notifier,
		RolePolicy:        policy.NewRolePolicy(cfg),
		Validator:         validator.New(),
		Config:            cfg,
		Logger:            newDiscardLogger(),
	})

	clock := &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	srv.now = clock.Now

	return &storeFixture{
		service:   srv,
		store:     store,
		tokens:    tokens,
		nicknames: nicknames,
		notifier:  notifier,
		clock:     clock,
	}
}

// register creates an account with a supplied nickname and a token equal to
// "token-" + nickname, returning the stored user.
func (f *storeFixture) register(t *testing.T, email, nickname string) *entity.User {
	t.Helper()

	f.tokens.EXPECT().Generate().Return("token-"+nickname, nil).Once()
	f.notifier.EXPECT().SendVerificationEmail(mock.Anything, mock.Anything).Return(nil).Once()

	out, err := f.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    email,
		Password: testPassword,
		Nickname: nickname,
	})
	require.NoError(t, err)
	require.True(t, out.VerificationEmailSent)

	return out.User
}

// registerVerified registers and redeems the verification token.
func (f *storeFixture) registerVerified(t *testing.T, email, nickname string) *entity.User {
	t.Helper()

	user := f.register(t, email, nickname)
	ok, err := f.service.VerifyEmail(context.Background(), user.ID, "token-"+nickname)
	require.NoError(t, err)
	require.True(t, ok)

	verified, err := f.service.GetByID(context.Background(), user.ID)
	require.NoError(t, err)

	return verified
}

func (f *storeFixture) login(email, password string) (*usecase.LoginOutput, error) {
	return f.service.Login(context.Background(), &usecase.LoginInput{Email: email, Password: password})
}

func ptr[T any](v T) *T {
	return &v
}
