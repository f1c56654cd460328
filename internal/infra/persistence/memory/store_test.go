package memory

import (
	"context"
	"testing"
	"time"

	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email, nickname string, createdAt time.Time) *entity.User {
	return &entity.User{
		ID:        uuid.New(),
		Email:     email,
		Nickname:  nickname,
		Role:      entity.RoleAnonymous,
		CreatedAt: createdAt,
	}
}

func TestUserRepository_CreateEnforcesUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newUser("a@example.com", "alpha", now)))

	err := repo.Create(ctx, newUser("A@EXAMPLE.com", "other", now))
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))

	err = repo.Create(ctx, newUser("b@example.com", "alpha", now))
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateNickname))

	found, err := repo.FindByEmail(ctx, "A@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "alpha", found.Nickname)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	bio := "original"
	user := newUser("a@example.com", "alpha", time.Now())
	user.Bio = &bio

	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	*found.Bio = "mutated"
	found.Nickname = "mutated"

	again, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", *again.Bio)
	assert.Equal(t, "alpha", again.Nickname)
}

func TestUserRepository_RecordFailedLoginLocksAtThreshold(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	user := newUser("a@example.com", "alpha", time.Now())
	require.NoError(t, repo.Create(ctx, user))

	for i := 1; i <= 3; i++ {
		updated, err := repo.RecordFailedLogin(ctx, user.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, i, updated.FailedLoginAttempts)
		assert.Equal(t, i == 3, updated.IsLocked)
	}

	_, err := repo.RecordFailedLogin(ctx, user.ID, 3)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound), "locked rows are not counted further")

	_, err = repo.RecordSuccessfulLogin(ctx, user.ID, time.Now())
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserRepository_SearchAndCountShareFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, nick := range []string{"john", "johnny", "jane", "bob"} {
		u := newUser(nick+"@example.com", nick, base.Add(time.Duration(i)*time.Hour))
		u.IsProfessional = i%2 == 0
		require.NoError(t, repo.Create(ctx, u))
	}

	filter := repository.UserFilter{Nickname: "JOHN"}
	users, err := repo.Search(ctx, filter, repository.Page{Limit: 1})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "john", users[0].Nickname)

	total, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	pro := true
	to := base.Add(90 * time.Minute)
	users, err = repo.Search(ctx, repository.UserFilter{IsProfessional: &pro, CreatedTo: &to}, repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "john", users[0].Nickname)

	users, err = repo.Search(ctx, repository.UserFilter{}, repository.Page{Offset: 10, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepository_UpdateAppliesPatches(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	token := "token"
	user := newUser("a@example.com", "alpha", time.Now())
	user.VerificationToken = &token
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Create(ctx, newUser("b@example.com", "beta", time.Now())))

	updated, err := repo.Update(ctx, user.ID, repository.UserChanges{
		EmailVerified:     entity.Set(true),
		VerificationToken: entity.Null[string](),
		FirstName:         entity.Set("Ada"),
	})
	require.NoError(t, err)
	assert.True(t, updated.EmailVerified)
	assert.Nil(t, updated.VerificationToken)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "Ada", *updated.FirstName)
	assert.Equal(t, "alpha", updated.Nickname)

	_, err = repo.Update(ctx, user.ID, repository.UserChanges{Nickname: entity.Set("beta")})
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateNickname))

	_, err = repo.Update(ctx, uuid.New(), repository.UserChanges{FirstName: entity.Set("x")})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tm := NewTransactionManager(store)
	repo := NewUserRepository(store)

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewUserRepository().Create(ctx, newUser("a@example.com", "alpha", time.Now())); err != nil {
			return err
		}

		return errors.New("abort")
	})
	require.Error(t, err)

	total, err := repo.Count(ctx, repository.UserFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
			_ = factory.NewUserRepository().Create(ctx, newUser("b@example.com", "beta", time.Now()))
			panic("boom")
		})
	})

	total, err = repo.Count(ctx, repository.UserFilter{})
	require.NoError(t, err)
	assert.Zero(t, total, "a panicking transaction is rolled back and releases the lock")
}

func TestUserRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewUserRepository(NewStore()).FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, context.Canceled))
}
