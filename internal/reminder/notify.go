package reminder

import "go.uber.org/zap"

// Channel identifies a delivery transport for a reminder.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Notifier delivers a reminder over a single channel. Implementations must
// tolerate an empty address: the dispatch is still recorded so an in-app
// banner can show it.
type Notifier interface {
	Notify(channel Channel, address, message string)
}

// LogNotifier writes each dispatch to the structured log. It stands in for a
// real SMS/email gateway.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notifier")}
}

func (n *LogNotifier) Notify(channel Channel, address, message string) {
	n.logger.Info("dispatching reminder",
		zap.String("channel", string(channel)),
		zap.String("address", address),
		zap.String("message", message),
	)
}

// NopNotifier discards all dispatches.
type NopNotifier struct{}

func (NopNotifier) Notify(Channel, string, string) {}
