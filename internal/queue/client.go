package queue

import "context"

// Client sends usage events to a queue backend.
type Client interface {
	Send(ctx context.Context, evt Event) error
}
