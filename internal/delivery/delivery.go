// Package delivery defines the contract every transport entry point
// (HTTP today, anything else later) satisfies so main can start them
// uniformly.
package delivery

import "context"

// Delivery is a long-running transport server.
type Delivery interface {
	Serve(ctx context.Context) error
}
