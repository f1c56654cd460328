package postgres

import (
	"testing"
	"time"

	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/domain/repository"
	"github.com/gvr1220/user-management/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db
}

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nickname unique violation",
			err:  &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "uq_users_nickname"},
			want: domainerrors.ErrDuplicateNickname,
		},
		{
			name: "email unique violation",
			err:  &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "uq_users_email_lower"},
			want: domainerrors.ErrDuplicateEmail,
		},
		{
			name: "gorm duplicated key",
			err:  errors.WithStack(gorm.ErrDuplicatedKey),
			want: domainerrors.ErrDuplicateEmail,
		},
		{
			name: "not null violation",
			err:  &pgconn.PgError{Code: notNullViolationCode},
			want: domainerrors.ErrValidationFailed,
		},
		{
			name: "anything else",
			err:  errors.New("connection reset by peer"),
			want: domainerrors.ErrStoreFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapWriteError(tt.err, "failed to write user")
			assert.True(t, errors.Is(got, tt.want), "got %v", got)
		})
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%john%", containsPattern("john"))
	assert.Equal(t, `%100\%\_off\\%`, containsPattern(`100%_off\`))
}

func TestUserFilterScope(t *testing.T) {
	db := newDryRunDB(t)
	role := entity.RoleManager
	locked := false
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	stmt := db.Model(&model.UserModel{}).
		Scopes(userFilterScope(repository.UserFilter{
			Nickname:    "jo_",
			Role:        &role,
			IsLocked:    &locked,
			CreatedFrom: &from,
		})).
		Find(&[]model.UserModel{}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "nickname ILIKE $1")
	assert.Contains(t, sql, "role = $2")
	assert.Contains(t, sql, "is_locked = $3")
	assert.Contains(t, sql, "created_at >= $4")
	assert.NotContains(t, sql, "email ILIKE")
	assert.Equal(t, []any{`%jo\_%`, "MANAGER", false, from}, stmt.Vars)
}

func TestUserFilterScope_EmptyFilter(t *testing.T) {
	db := newDryRunDB(t)

	stmt := db.Model(&model.UserModel{}).
		Scopes(userFilterScope(repository.UserFilter{})).
		Find(&[]model.UserModel{}).Statement

	assert.NotContains(t, stmt.SQL.String(), "WHERE")
	assert.Empty(t, stmt.Vars)
}

func TestChangesToColumns(t *testing.T) {
	columns := changesToColumns(repository.UserChanges{
		Email:             entity.Set("a@example.com"),
		Role:              entity.Set(entity.RoleAuthenticated),
		IsLocked:          entity.Set(false),
		Bio:               entity.Null[string](),
		VerificationToken: entity.Null[string](),
		FirstName:         entity.Set("Ada"),
	})

	assert.Equal(t, "a@example.com", columns["email"])
	assert.Equal(t, "AUTHENTICATED", columns["role"])
	assert.Equal(t, false, columns["is_locked"])
	assert.Equal(t, (*string)(nil), columns["bio"])
	assert.Equal(t, (*string)(nil), columns["verification_token"])
	require.IsType(t, (*string)(nil), columns["first_name"])
	assert.Equal(t, "Ada", *columns["first_name"].(*string))
	assert.NotContains(t, columns, "nickname")
	assert.NotContains(t, columns, "last_name")
	assert.Len(t, columns, 6)
}

func TestUserModelRoundTrip(t *testing.T) {
	token := "token"
	login := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	user := &entity.User{
		ID:                  uuid.New(),
		Email:               "a@example.com",
		Nickname:            "alpha",
		PasswordHash:        "hash",
		Role:                entity.RoleAnonymous,
		VerificationToken:   &token,
		FailedLoginAttempts: 2,
		LastLoginAt:         &login,
		CreatedAt:           login.Add(-time.Hour),
		UpdatedAt:           login,
	}

	assert.Equal(t, user, toUserDomain(fromUserDomain(user)))
	assert.Nil(t, toUserDomain(nil))
	assert.Nil(t, fromUserDomain(nil))
}
