package notification

import (
	"context"

	"salonbook/utils"

	"go.uber.org/zap"
)

// Service delivers booking notifications to customers. Formatting and the
// actual delivery channel live outside this backend; implementations adapt to
// whatever delivery service the deployment uses.
type Service interface {
	SendBookingNotification(ctx context.Context, userID, bookingID, title, body string) error
}

// LogNotifier is the default implementation: it records the notification and
// delivers nothing.
type LogNotifier struct{}

func (LogNotifier) SendBookingNotification(_ context.Context, userID, bookingID, title, body string) error {
	utils.GetLogger().Info("booking notification",
		zap.String("userID", userID),
		zap.String("bookingID", bookingID),
		zap.String("title", title),
		zap.String("body", body))
	return nil
}
