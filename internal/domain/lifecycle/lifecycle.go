// Package lifecycle holds shared start/stop timing constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of any delivery.
const DefaultTimeout = 10 * time.Second
