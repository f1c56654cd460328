// Package notification hands verification emails off to the mail worker through the event publisher.
package notification

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gvr1220/user-management/config"
	deliverycontext "github.com/gvr1220/user-management/internal/delivery/context"
	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/domain/service"
	"github.com/gvr1220/user-management/internal/errors"

	"go.uber.org/fx"
)

type verificationNotifier struct {
	baseURL   string
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NotifierParams holds dependencies for the verification notifier, injected by Fx
type NotifierParams struct {
	fx.In

	Config    *config.Config
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewVerificationNotifier creates a notifier publishing VerificationEmailEvent messages.
func NewVerificationNotifier(params NotifierParams) service.VerificationNotifier {
	baseURL := ""
	if params.Config.Verification != nil {
		baseURL = params.Config.Verification.BaseURL
	}

	return &verificationNotifier{
		baseURL:   strings.TrimRight(baseURL, "/"),
		publisher: params.Publisher,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// SendVerificationEmail publishes a request to email the user their verification link.
func (n *verificationNotifier) SendVerificationEmail(ctx context.Context, user *entity.User) error {
	if user == nil || !user.HasPendingVerification() {
		return domainerrors.ErrDeliveryFailed.WrapMessage("user has no pending verification")
	}

	link, err := BuildVerificationURL(n.baseURL, user.ID.String(), *user.VerificationToken)
	if err != nil {
		return errors.Wrapf(domainerrors.ErrDeliveryFailed, "failed to build verification url: %v", err)
	}

	event := &service.VerificationEmailEvent{
		RequestID:       deliverycontext.GetRequestIDFromContext(ctx),
		UserID:          user.ID.String(),
		Email:           user.Email,
		Nickname:        user.Nickname,
		VerificationURL: link,
		RequestedAt:     n.now().UTC(),
	}
	if user.FirstName != nil {
		event.FirstName = *user.FirstName
	}

	if err := n.publisher.PublishVerificationEmailEvent(ctx, event); err != nil {
		return errors.Wrapf(domainerrors.ErrDeliveryFailed, "failed to publish verification email event: %v", err)
	}

	deliverycontext.GetLoggerOrDefault(ctx, n.logger).Debug("Verification email requested",
		slog.String("user_id", event.UserID),
	)

	return nil
}

// BuildVerificationURL returns <baseURL>/verify-email/<userID>/<token>.
func BuildVerificationURL(baseURL, userID, token string) (string, error) {
	if baseURL == "" {
		return "", errors.New("verification base url is not configured")
	}

	link, err := url.JoinPath(baseURL, "verify-email", userID, token)
	if err != nil {
		return "", errors.Wrap(err, "invalid verification base url")
	}

	return link, nil
}
