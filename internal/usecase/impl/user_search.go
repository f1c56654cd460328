package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gvr1220/user-management/internal/domain/repository"
	"github.com/gvr1220/user-management/internal/usecase"

	"github.com/pkg/errors"
)

// Search returns one page of matching users plus the size of the full filtered
// set. Page and count are driven by the same filter value.
func (srv *userService) Search(ctx context.Context, input *usecase.SearchUsersInput) (*usecase.SearchUsersOutput, error) {
	if input == nil {
		input = &usecase.SearchUsersInput{}
	}

	if err := srv.validator.Validate(input); err != nil {
		return nil, err
	}

	filter := repository.UserFilter{
		Nickname:       strings.TrimSpace(input.Nickname),
		Email:          strings.TrimSpace(input.Email),
		Role:           input.Role,
		IsProfessional: input.IsProfessional,
		IsLocked:       input.IsLocked,
		CreatedFrom:    input.RegisteredFrom,
		CreatedTo:      input.RegisteredTo,
	}

	page := repository.Page{Offset: input.Offset, Limit: input.Limit}
	if page.Limit == 0 {
		page.Limit = usecase.DefaultPageLimit
	}

	users, err := srv.userRepo.Search(ctx, filter, page)
	if err != nil {
		srv.log(ctx).Error("Failed to search users", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to search users")
	}

	total, err := srv.userRepo.Count(ctx, filter)
	if err != nil {
		srv.log(ctx).Error("Failed to count users", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to count users")
	}

	return &usecase.SearchUsersOutput{
		Users:  users,
		Total:  total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}, nil
}

// List pages through all users.
func (srv *userService) List(ctx context.Context, offset, limit int) (*usecase.SearchUsersOutput, error) {
	return srv.Search(ctx, &usecase.SearchUsersInput{Offset: offset, Limit: limit})
}
