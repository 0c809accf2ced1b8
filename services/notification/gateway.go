package notification

import (
	"context"

	"firebase.google.com/go/v4/messaging"
)

// PushGateway hands a message to the push delivery service. *messaging.Client
// satisfies it; the gateway owns delivery and retry.
type PushGateway interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}
