// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/domain/repository"
	"github.com/gvr1220/user-management/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// registrationLockKey identifies the advisory lock that serializes registrations.
const registrationLockKey int64 = 0x7573_6572_7265_6701

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error

	return findResult(&userM, err, "failed to find user by id")
}

// FindByIDForUpdate reads from the primary and holds a row lock until the transaction ends.
func (repo *userRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write, clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&userM).Error

	return findResult(&userM, err, "failed to lock user by id")
}

// FindByEmail matches on lower(email), served by the uq_users_email_lower index.
// Reads go to the primary so login and registration never see replica lag.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("lower(email) = ?", strings.ToLower(email)).
		First(&userM).Error

	return findResult(&userM, err, "failed to find user by email")
}

// FindByNickname retrieves a user by exact nickname.
func (repo *userRepository) FindByNickname(ctx context.Context, nickname string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("nickname = ?", nickname).
		First(&userM).Error

	return findResult(&userM, err, "failed to find user by nickname")
}

// Search returns one page of filtered users ordered by creation time.
func (repo *userRepository) Search(ctx context.Context, filter repository.UserFilter, page repository.Page) ([]*entity.User, error) {
	var models []model.UserModel
	query := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Scopes(userFilterScope(filter)).
		Order("created_at ASC, id ASC").
		Offset(page.Offset)
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to search users")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, toUserDomain(&models[i]))
	}

	return users, nil
}

// Count returns the size of the filtered set.
func (repo *userRepository) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Scopes(userFilterScope(filter)).
		Count(&total).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count users")
	}

	return total, nil
}

// Create persists a new user entity.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return mapWriteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update writes only the set fields and returns the updated row.
func (repo *userRepository) Update(ctx context.Context, id uuid.UUID, changes repository.UserChanges) (*entity.User, error) {
	columns := changesToColumns(changes)
	columns["updated_at"] = time.Now().UTC()

	return repo.updateReturning(repo.db.WithContext(ctx).Where("id = ?", id), columns, "failed to update user")
}

// Delete hard-deletes a user.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}

	return result.RowsAffected > 0, nil
}

// LockRegistration takes a transaction-scoped advisory lock.
func (repo *userRepository) LockRegistration(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", registrationLockKey).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to acquire registration lock")
	}

	return nil
}

// RecordFailedLogin increments the counter relative to the stored value.
// Both SET expressions read the pre-update row, so the lock flips on the
// attempt that reaches threshold.
func (repo *userRepository) RecordFailedLogin(ctx context.Context, id uuid.UUID, threshold int) (*entity.User, error) {
	return repo.updateReturning(
		repo.db.WithContext(ctx).Where("id = ? AND is_locked = ?", id, false),
		map[string]any{
			"failed_login_attempts": gorm.Expr("failed_login_attempts + 1"),
			"is_locked":             gorm.Expr("failed_login_attempts + 1 >= ?", threshold),
			"updated_at":            time.Now().UTC(),
		},
		"failed to record failed login",
	)
}

// RecordSuccessfulLogin resets the counter of an unlocked user.
func (repo *userRepository) RecordSuccessfulLogin(ctx context.Context, id uuid.UUID, at time.Time) (*entity.User, error) {
	return repo.updateReturning(
		repo.db.WithContext(ctx).Where("id = ? AND is_locked = ?", id, false),
		map[string]any{
			"failed_login_attempts": 0,
			"last_login_at":         at,
			"updated_at":            time.Now().UTC(),
		},
		"failed to record successful login",
	)
}

func (repo *userRepository) updateReturning(scoped *gorm.DB, columns map[string]any, details string) (*entity.User, error) {
	var models []model.UserModel
	result := scoped.Model(&models).Clauses(clause.Returning{}).Updates(columns)
	if result.Error != nil {
		return nil, mapWriteError(result.Error, details)
	}
	if result.RowsAffected == 0 || len(models) == 0 {
		return nil, errors.WithStack(domainerrors.ErrUserNotFound)
	}

	return toUserDomain(&models[0]), nil
}

func findResult(userM *model.UserModel, err error, details string) (*entity.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, details)
	}

	return toUserDomain(userM), nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// changesToColumns maps set patches to column updates; explicit null becomes SQL NULL.
func changesToColumns(c repository.UserChanges) map[string]any {
	columns := make(map[string]any)

	setColumn(columns, "email", c.Email)
	setColumn(columns, "nickname", c.Nickname)
	setColumn(columns, "password_hash", c.PasswordHash)
	setColumn(columns, "is_professional", c.IsProfessional)
	setColumn(columns, "email_verified", c.EmailVerified)
	setColumn(columns, "failed_login_attempts", c.FailedLoginAttempts)
	setColumn(columns, "is_locked", c.IsLocked)
	setNullableColumn(columns, "first_name", c.FirstName)
	setNullableColumn(columns, "last_name", c.LastName)
	setNullableColumn(columns, "bio", c.Bio)
	setNullableColumn(columns, "profile_picture_url", c.ProfilePictureURL)
	setNullableColumn(columns, "verification_token", c.VerificationToken)

	if role, ok := c.Role.Get(); ok {
		columns["role"] = role.String()
	}

	return columns
}

func setColumn[T any](columns map[string]any, name string, p entity.Patch[T]) {
	if v, ok := p.Get(); ok {
		columns[name] = v
	}
}

func setNullableColumn(columns map[string]any, name string, p entity.Patch[string]) {
	if p.IsSet() {
		columns[name] = p.Ptr()
	}
}

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                  data.ID,
		Email:               data.Email,
		Nickname:            data.Nickname,
		PasswordHash:        data.PasswordHash,
		Role:                entity.Role(data.Role),
		FirstName:           data.FirstName,
		LastName:            data.LastName,
		Bio:                 data.Bio,
		ProfilePictureURL:   data.ProfilePictureURL,
		IsProfessional:      data.IsProfessional,
		EmailVerified:       data.EmailVerified,
		VerificationToken:   data.VerificationToken,
		FailedLoginAttempts: data.FailedLoginAttempts,
		IsLocked:            data.IsLocked,
		LastLoginAt:         data.LastLoginAt,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                  data.ID,
		Email:               data.Email,
		Nickname:            data.Nickname,
		PasswordHash:        data.PasswordHash,
		Role:                data.Role.String(),
		FirstName:           data.FirstName,
		LastName:            data.LastName,
		Bio:                 data.Bio,
		ProfilePictureURL:   data.ProfilePictureURL,
		IsProfessional:      data.IsProfessional,
		EmailVerified:       data.EmailVerified,
		VerificationToken:   data.VerificationToken,
		FailedLoginAttempts: data.FailedLoginAttempts,
		IsLocked:            data.IsLocked,
		LastLoginAt:         data.LastLoginAt,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}
