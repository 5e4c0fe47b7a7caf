package engine

import (
	"context"
)

// Interface for a type that can handle sending notifications
type Notifier interface {
	Send(ctx context.Context, service string, c *MessageContext, decision *Decision) error
}
