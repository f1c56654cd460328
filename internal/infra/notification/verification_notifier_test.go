package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gvr1220/user-management/config"
	deliverycontext "github.com/gvr1220/user-management/internal/delivery/context"
	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/domain/service"
	mockSvc "github.com/gvr1220/user-management/internal/mocks/service"
)

func newTestNotifier(t *testing.T, baseURL string) (*verificationNotifier, *mockSvc.MockEventPublisher) {
	t.Helper()

	publisher := mockSvc.NewMockEventPublisher(t)
	notifier, ok := NewVerificationNotifier(NotifierParams{
		Config:    &config.Config{Verification: &config.VerificationConfig{BaseURL: baseURL}},
		Publisher: publisher,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).(*verificationNotifier)
	require.True(t, ok)
	notifier.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	return notifier, publisher
}

func pendingUser() *entity.User {
	token := "tok_123"
	first := "Ada"

	return &entity.User{
		ID:                uuid.MustParse("0190c2a4-5b6e-7c8d-9e0f-a1b2c3d4e5f6"),
		Email:             "ada@example.com",
		Nickname:          "ada",
		FirstName:         &first,
		VerificationToken: &token,
	}
}

func TestVerificationNotifier_PublishesEvent(t *testing.T) {
	notifier, publisher := newTestNotifier(t, "https://app.example.com/")
	ctx := deliverycontext.WithRequestID(context.Background(), "req-1")
	user := pendingUser()

	publisher.EXPECT().
		PublishVerificationEmailEvent(ctx, mock.AnythingOfType("*service.VerificationEmailEvent")).
		Run(func(_ context.Context, event *service.VerificationEmailEvent) {
			assert.Equal(t, "req-1", event.RequestID)
			assert.Equal(t, user.ID.String(), event.UserID)
			assert.Equal(t, "ada@example.com", event.Email)
			assert.Equal(t, "ada", event.Nickname)
			assert.Equal(t, "Ada", event.FirstName)
			assert.Equal(t, "https://app.example.com/verify-email/0190c2a4-5b6e-7c8d-9e0f-a1b2c3d4e5f6/tok_123", event.VerificationURL)
			assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), event.RequestedAt)
		}).
		Return(nil)

	require.NoError(t, notifier.SendVerificationEmail(ctx, user))
}

func TestVerificationNotifier_PublishFailure(t *testing.T) {
	notifier, publisher := newTestNotifier(t, "https://app.example.com")

	publisher.EXPECT().
		PublishVerificationEmailEvent(mock.Anything, mock.Anything).
		Return(errors.New("broker down"))

	err := notifier.SendVerificationEmail(context.Background(), pendingUser())
	assert.ErrorIs(t, err, domainerrors.ErrDeliveryFailed)
}

func TestVerificationNotifier_RejectsWithoutPendingToken(t *testing.T) {
	notifier, _ := newTestNotifier(t, "https://app.example.com")

	verified := pendingUser()
	verified.EmailVerified = true
	verified.VerificationToken = nil

	assert.ErrorIs(t, notifier.SendVerificationEmail(context.Background(), verified), domainerrors.ErrDeliveryFailed)
	assert.ErrorIs(t, notifier.SendVerificationEmail(context.Background(), nil), domainerrors.ErrDeliveryFailed)
}

func TestVerificationNotifier_MissingBaseURL(t *testing.T) {
	notifier, _ := newTestNotifier(t, "")

	assert.ErrorIs(t, notifier.SendVerificationEmail(context.Background(), pendingUser()), domainerrors.ErrDeliveryFailed)
}

func TestBuildVerificationURL(t *testing.T) {
	link, err := BuildVerificationURL("http://localhost:8080/app", "id-1", "abc-_xyz")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/app/verify-email/id-1/abc-_xyz", link)

	_, err = BuildVerificationURL("", "id-1", "abc")
	assert.Error(t, err)

	_, err = BuildVerificationURL("://bad", "id-1", "abc")
	assert.Error(t, err)
}
