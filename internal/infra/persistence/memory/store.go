// Package memory is an in-process user store for local runs and tests.
// All access is serialized by one mutex, and a transaction holds it until commit or rollback.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store holds users keyed by id.
type Store struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
	now   func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users: make(map[uuid.UUID]entity.User),
		now:   time.Now,
	}
}

type transactionManager struct {
	store *Store
}

// NewTransactionManager returns a TransactionManager over store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

type repositoryFactory struct {
	store *Store
}

// NewUserRepository returns a repository that runs under the transaction's lock.
func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return &userRepository{store: f.store, inTx: true}
}

// Execute runs fn with the store locked and restores the previous state when fn fails or panics.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s := tm.store
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := maps.Clone(s.users)

	defer func() {
		if r := recover(); r != nil {
			s.users = snapshot
			panic(r)
		}
	}()

	if err := fn(&repositoryFactory{store: s}); err != nil {
		s.users = snapshot

		return err
	}

	return nil
}

// userRepository implements repository.UserRepository over Store.
type userRepository struct {
	store *Store
	inTx  bool
}

// NewUserRepository returns a standalone repository; each call locks the store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) run(ctx context.Context, fn func(users map[uuid.UUID]entity.User) error) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	return fn(r.store.users)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var found *entity.User
	err := r.run(ctx, func(users map[uuid.UUID]entity.User) error {
		u, ok := users[id]
		if !ok {
			return errors.WithStack(domainerrors.ErrUserNotFound)
		}
		found = cloneUser(u)

		return nil
	})

	return found, err
}

// FindByIDForUpdate is FindByID; the transaction already holds the store lock.
func (r *userRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.FindByID(ctx, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findFirst(ctx, func(u entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepository) FindByNickname(ctx context.Context, nickname string) (*entity.User, error) {
	return r.findFirst(ctx, func(u entity.User) bool { return u.Nickname == nickname })
}

func (r *userRepository) findFirst(ctx context.Context, match func(entity.User) bool) (*entity.User, error) {
	var found *entity.User
	err := r.run(ctx, func(users map[uuid.UUID]entity.User) error {
		for _, u := range users {
			if match(u) {
				found = cloneUser(u)

				return nil
			}
		}

		return errors.WithStack(domainerrors.ErrUserNotFound)
	})

	return found, err
}

func (r *userRepository) Search(ctx context.Context, filter repository.UserFilter, page repository.Page) ([]*entity.User, error) {
	var result []*entity.User
	err := r.run(ctx, func(users map[uuid.UUID]entity.User) error {
		matched := make([]entity.User, 0, len(users))
		for _, u := range users {
			if matchesFilter(u, filter) {
				matched = append(matched, u)
			}
		}

		slices.SortFunc(matched, func(a, b entity.User) int {
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}

			return cmp.Compare(a.ID.String(), b.ID.String())
		})

		start := min(max(page.Offset, 0), len(matched))
		end := len(matched)
		if page.Limit > 0 {
			end = min(start+page.Limit, len(matched))
		}

		result = make([]*entity.User, 0, end-start)
		for _, u := range matched[start:end] {
			result = append(result, cloneUser(u))
		}

		return nil
	})

	return result, err
}

func (r *userRepository) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	var total int64
	err := r.run(ctx, func(users map[uuid.UUID]entity.User) error {
		for _, u := range users {
			if matchesFilter(u, filter) {
				total++
			}
		}

		return nil
	})

	return total, err
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.run(ctx, func(users map[uuid.UUID]entity.User) error {
		if _, exists := users[user.ID]; exists {
			return domainerrors.NewDatabaseExecuteError(errors.New("duplicate primary key"), "failed to create user")
		}
		if err := checkUnique(users, user.ID, user.Email, user.Nickname); err != nil {
			return err
		}

		now := r.store.now().UTC()
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		if user.UpdatedAt.IsZero() {
			user.UpdatedAt = user.CreatedAt
		}
		users[user.ID] = *cloneUser(*user)

		return nil
	})
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, changes repository.UserChanges) (*entity.User, error) {
	var updated *entity.User
	err := r.run(ctx, func(users map[uuid.UUID]entity.User) error {
		current, ok := users[id]
		if !ok {
			return errors.WithStack(domainerrors.ErrUserNotFound)
		}

		next := *cloneUser(current)
		applyChanges(&next, changes)
		if err := checkUnique(users, id, next.Email, next.Nickname); err != nil {
			return err
		}

		next.UpdatedAt = r.store.now().UTC()
		users[id] = next
		updated = cloneUser(next)

		return nil
	})

	return updated, err
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted := false
	err := r.run(ctx, func(users map[uuid.UUID]entity.User) error {
		if _, ok := users[id]; ok {
			delete(users, id)
			deleted = true
		}

		return nil
	})

	return deleted, err
}

// LockRegistration is a no-op: a transaction already holds the store lock.
func (r *userRepository) LockRegistration(ctx context.Context) error {
	return r.run(ctx, func(map[uuid.UUID]entity.User) error { return nil })
}

func (r *userRepository) RecordFailedLogin(ctx context.Context, id uuid.UUID, threshold int) (*entity.User, error) {
	var updated *entity.User
	err := r.run(ctx, func(users map[uuid.UUID]entity.User) error {
		u, ok := users[id]
		if !ok || u.IsLocked {
			return errors.WithStack(domainerrors.ErrUserNotFound)
		}

		u.FailedLoginAttempts++
		u.IsLocked = u.FailedLoginAttempts >= threshold
		u.UpdatedAt = r.store.now().UTC()
		users[id] = u
		updated = cloneUser(u)

		return nil
	})

	return updated, err
}

func (r *userRepository) RecordSuccessfulLogin(ctx context.Context, id uuid.UUID, at time.Time) (*entity.User, error) {
	var updated *entity.User
	err := r.run(ctx, func(users map[uuid.UUID]entity.User) error {
		u, ok := users[id]
		if !ok || u.IsLocked {
			return errors.WithStack(domainerrors.ErrUserNotFound)
		}

		u.FailedLoginAttempts = 0
		u.LastLoginAt = &at
		u.UpdatedAt = r.store.now().UTC()
		users[id] = u
		updated = cloneUser(u)

		return nil
	})

	return updated, err
}

func checkUnique(users map[uuid.UUID]entity.User, id uuid.UUID, email, nickname string) error {
	for otherID, other := range users {
		if otherID == id {
			continue
		}
		if strings.EqualFold(other.Email, email) {
			return errors.WithStack(domainerrors.ErrDuplicateEmail)
		}
		if other.Nickname == nickname {
			return errors.WithStack(domainerrors.ErrDuplicateNickname)
		}
	}

	return nil
}

func matchesFilter(u entity.User, f repository.UserFilter) bool {
	if f.Nickname != "" && !containsFold(u.Nickname, f.Nickname) {
		return false
	}
	if f.Email != "" && !containsFold(u.Email, f.Email) {
		return false
	}
	if f.Role != nil && u.Role != *f.Role {
		return false
	}
	if f.IsProfessional != nil && u.IsProfessional != *f.IsProfessional {
		return false
	}
	if f.IsLocked != nil && u.IsLocked != *f.IsLocked {
		return false
	}
	if f.CreatedFrom != nil && u.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && u.CreatedAt.After(*f.CreatedTo) {
		return false
	}

	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func applyChanges(u *entity.User, c repository.UserChanges) {
	if v, ok := c.Email.Get(); ok {
		u.Email = v
	}
	if v, ok := c.Nickname.Get(); ok {
		u.Nickname = v
	}
	if v, ok := c.PasswordHash.Get(); ok {
		u.PasswordHash = v
	}
	if v, ok := c.Role.Get(); ok {
		u.Role = v
	}
	if v, ok := c.IsProfessional.Get(); ok {
		u.IsProfessional = v
	}
	if v, ok := c.EmailVerified.Get(); ok {
		u.EmailVerified = v
	}
	if v, ok := c.FailedLoginAttempts.Get(); ok {
		u.FailedLoginAttempts = v
	}
	if v, ok := c.IsLocked.Get(); ok {
		u.IsLocked = v
	}

	applyNullable(&u.FirstName, c.FirstName)
	applyNullable(&u.LastName, c.LastName)
	applyNullable(&u.Bio, c.Bio)
	applyNullable(&u.ProfilePictureURL, c.ProfilePictureURL)
	applyNullable(&u.VerificationToken, c.VerificationToken)
}

func applyNullable(dst **string, p entity.Patch[string]) {
	if p.IsSet() {
		*dst = p.Ptr()
	}
}

func cloneUser(u entity.User) *entity.User {
	c := u
	c.FirstName = clonePtr(u.FirstName)
	c.LastName = clonePtr(u.LastName)
	c.Bio = clonePtr(u.Bio)
	c.ProfilePictureURL = clonePtr(u.ProfilePictureURL)
	c.VerificationToken = clonePtr(u.VerificationToken)
	c.LastLoginAt = clonePtr(u.LastLoginAt)

	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p

	return &v
}
