// Package timeouts defines shared timeout constants used by the service.
package timeouts

import "time"

// APIRequest caps a single round trip to the wiki action API.
const APIRequest = 5 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
