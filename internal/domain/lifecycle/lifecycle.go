// Package lifecycle holds limits shared by start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every OnStart/OnStop hook (DB ping, migrations, HTTP shutdown).
const DefaultTimeout = 15 * time.Second
