package notify

import (
	"context"

	"github.com/google/uuid"
)

// Notifier is the delivery capability behind reminders. The production
// implementation pushes through FCM; tests swap in a fake. Absence of the
// capability degrades scheduling to a no-op rather than an error.
type Notifier interface {
	// Available reports whether the capability is present at all.
	Available() bool
	// CanDeliver reports whether this user can currently receive
	// notifications (capability present and a device registered).
	CanDeliver(ctx context.Context, userID uuid.UUID) bool
	// Send delivers a notification to the user immediately.
	Send(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string) error
}
