// Package timeouts defines shared timeout constants used across the service.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreRequest caps a single round trip to the PostgREST store.
const StoreRequest = 10 * time.Second

// WebhookRequest caps a single generation webhook call. Generation runs
// asynchronously on the remote side, so only the acknowledgement is awaited.
const WebhookRequest = 15 * time.Second
