package patterns

import "time"

// DefaultTimeout bounds individual document-store operations.
const DefaultTimeout = 3 * time.Second

// ConnectTimeout bounds the initial store connection and schema setup.
const ConnectTimeout = 10 * time.Second
