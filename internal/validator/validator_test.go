package validator

import (
	"testing"

	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"omitempty,nickname"`
	Role     string `json:"role" validate:"omitempty,role"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		in         signup
		wantErr    bool
		wantDetail string
	}{
		{name: "valid", in: signup{Email: "a@x.com", Nickname: "happy_otter_42", Role: "manager"}},
		{name: "nickname optional", in: signup{Email: "a@x.com"}},
		{name: "bad email", in: signup{Email: "nope"}, wantErr: true, wantDetail: "email failed on 'email'"},
		{name: "nickname too short", in: signup{Email: "a@x.com", Nickname: "ab"}, wantErr: true, wantDetail: "nickname failed on 'nickname'"},
		{name: "nickname bad chars", in: signup{Email: "a@x.com", Nickname: "a b c"}, wantErr: true, wantDetail: "nickname"},
		{name: "unknown role", in: signup{Email: "a@x.com", Role: "root"}, wantErr: true, wantDetail: "role failed on 'role'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.in)
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Contains(t, appErr.Details(), tt.wantDetail)
		})
	}
}

func TestValidator_Var(t *testing.T) {
	v := New()

	assert.NoError(t, v.Var("password", "longenough", "min=8,max=72"))

	err := v.Var("password", "short", "min=8,max=72")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "password failed on 'min'", appErr.Details())
}
