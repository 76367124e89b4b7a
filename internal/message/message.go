// internal/message/message.go
//
// Summit – Messaging stub.
//
// Context
//   Intake handlers enqueue outbound notifications (e.g., “new
//   partnership inquiry” mails to the organizing team).  Actual email
//   delivery is out of scope for this service; until a real queue and
//   worker exist, this stub logs the payload and returns nil so callers
//   proceed without blocking.
//
//   Replace the body of EnqueueEmail with code that publishes to your
//   queue of choice (Redis, NATS, SQS) when ready.
//
//------------------------------------------------------------------------------

package message

import (
	"context"

	"go.uber.org/zap"
)

// Email represents a basic outbound email job.
type Email struct {
	To      []string
	Subject string
	Text    string
}

// EnqueueEmail logs the email payload.  Swap with a real queue publisher
// later.  Errors from the eventual publisher are the caller's to handle
// as best-effort; no intake depends on this succeeding.
func EnqueueEmail(ctx context.Context, msg Email) error {
	zap.S().Infow("queue email",
		"to", msg.To,
		"subject", msg.Subject,
		"len", len(msg.Text),
	)
	return nil
}
