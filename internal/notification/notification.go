package notification

import (
	"context"
	"log/slog"
)

const (
	// KindCodeDelivery carries a one-time login code to its phone number.
	KindCodeDelivery = "code_delivery"
	// KindWalletCredit announces an externally-applied balance credit.
	KindWalletCredit = "wallet_credit"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications to out-of-band channels. Code delivery is
// an opaque external collaborator; the concrete transport lives behind this
// interface.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}
