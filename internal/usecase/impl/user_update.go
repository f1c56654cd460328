package impl

import (
	"context"
	"log/slog"

	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/domain/repository"
	"github.com/gvr1220/user-management/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Update applies a partial update. A role change the acting principal may not
// make is dropped from the update, and the remaining fields are still applied.
func (srv *userService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	changes, err := srv.buildUserChanges(ctx, id, input)
	if err != nil {
		return nil, err
	}

	if changes.IsEmpty() {
		return srv.GetByID(ctx, id)
	}

	var updatedUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if _, err := userRepo.FindByIDForUpdate(ctx, id); err != nil {
			return errors.Wrap(err, "failed to load user for update")
		}

		if email, ok := changes.Email.Get(); ok {
			if err := ensureNotTakenByOther(ctx, id, email, userRepo.FindByEmail, domainerrors.ErrDuplicateEmail); err != nil {
				return err
			}
		}

		if nickname, ok := changes.Nickname.Get(); ok {
			if err := ensureNotTakenByOther(ctx, id, nickname, userRepo.FindByNickname, domainerrors.ErrDuplicateNickname); err != nil {
				return err
			}
		}

		var err error
		updatedUser, err = userRepo.Update(ctx, id, changes)
		if err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute user update transaction", slog.String("user_id", id.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user update transaction")
	}

	srv.log(ctx).Info("User updated", slog.String("user_id", id.String()))

	return updatedUser, nil
}

func ensureNotTakenByOther(
	ctx context.Context,
	id uuid.UUID,
	value string,
	find func(context.Context, string) (*entity.User, error),
	conflict *domainerrors.BaseError,
) error {
	owner, err := find(ctx, value)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check uniqueness")
	}
	if owner.ID != id {
		return errors.WithStack(conflict)
	}

	return nil
}

// buildUserChanges validates the supplied fields and converts them to store changes.
func (srv *userService) buildUserChanges(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (repository.UserChanges, error) {
	var changes repository.UserChanges
	if input == nil {
		return changes, nil
	}

	if email, ok, err := requiredPatch("email", input.Email); err != nil {
		return changes, err
	} else if ok {
		if err := srv.validator.Var("email", email, "required,email,max=255"); err != nil {
			return changes, err
		}
		changes.Email = entity.Set(normalizeEmail(email))
	}

	if nickname, ok, err := requiredPatch("nickname", input.Nickname); err != nil {
		return changes, err
	} else if ok {
		if err := srv.validator.Var("nickname", nickname, "required,nickname"); err != nil {
			return changes, err
		}
		changes.Nickname = entity.Set(nickname)
	}

	if password, ok, err := requiredPatch("password", input.Password); err != nil {
		return changes, err
	} else if ok {
		if err := srv.validator.Var("password", password, passwordRules); err != nil {
			return changes, err
		}

		hashedPassword, err := srv.hasher.Hash(password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during update", slog.Any("error", err))

			return changes, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during update")
		}
		changes.PasswordHash = entity.Set(hashedPassword)
	}

	if isProfessional, ok, err := requiredPatch("is_professional", input.IsProfessional); err != nil {
		return changes, err
	} else if ok {
		changes.IsProfessional = entity.Set(isProfessional)
	}

	optional := []struct {
		field string
		in    entity.Patch[string]
		out   *entity.Patch[string]
		rules string
	}{
		{field: "first_name", in: input.FirstName, out: &changes.FirstName, rules: "max=100"},
		{field: "last_name", in: input.LastName, out: &changes.LastName, rules: "max=100"},
		{field: "bio", in: input.Bio, out: &changes.Bio, rules: "max=500"},
		{field: "profile_picture_url", in: input.ProfilePictureURL, out: &changes.ProfilePictureURL, rules: "omitempty,url,max=255"},
	}
	for _, f := range optional {
		if !f.in.IsSet() {
			continue
		}
		if v, ok := f.in.Get(); ok {
			if err := srv.validator.Var(f.field, v, f.rules); err != nil {
				return changes, err
			}
		}
		*f.out = f.in
	}

	role, ok, err := requiredPatch("role", input.Role)
	if err != nil {
		return changes, err
	}
	if ok {
		if !role.IsValid() {
			return changes, domainerrors.ErrValidationFailed.WithDetails("role failed on 'role'")
		}

		if srv.rolePolicy.CanChangeRole(ctx, input.Actor) {
			changes.Role = entity.Set(role)
		} else {
			srv.log(ctx).Warn("Role change dropped, actor not authorized",
				slog.String("user_id", id.String()),
				slog.String("requested_role", role.String()),
			)
		}
	}

	return changes, nil
}

// requiredPatch rejects an explicit null on a non-nullable field.
func requiredPatch[T any](field string, p entity.Patch[T]) (T, bool, error) {
	if p.IsNull() {
		var zero T

		return zero, false, domainerrors.ErrValidationFailed.WithDetails(field + " cannot be null")
	}

	v, ok := p.Get()

	return v, ok, nil
}
