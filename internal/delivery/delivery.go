// Package delivery defines the contract every inbound transport implements.
package delivery

import "context"

// Delivery is a long-running transport started by the fx invoke in cmd/blog.
type Delivery interface {
	Serve(ctx context.Context) error
}
