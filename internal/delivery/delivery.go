// Package delivery defines the contract every transport frontend fulfills.
package delivery

import "context"

// Delivery is a running transport (HTTP server, worker, ...) started by the
// application container.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
