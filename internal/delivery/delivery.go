// Package delivery defines the contract every serving surface fulfills,
// HTTP servers and background workers alike.
package delivery

import "context"

// Delivery is a long-running serving loop started by the application entry
// point. Serve blocks until the delivery stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
