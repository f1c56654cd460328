// Package lifecycle holds the shared bounds for startup and shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook.
const DefaultTimeout = 10 * time.Second
