package pubsub

import "github.com/gvr1220/user-management/internal/domain/service"

const (
	eventTypeVerificationEmail = "verification_email"
	localSubscription          = "projects/local/subscriptions/verification-email-sub"
)

// eventAttributes are the message attributes the mail worker filters and traces on.
func eventAttributes(event *service.VerificationEmailEvent) map[string]string {
	attributes := map[string]string{
		"event_type": eventTypeVerificationEmail,
		"user_id":    event.UserID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
