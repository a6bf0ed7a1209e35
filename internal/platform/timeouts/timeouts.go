// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// HostRequest caps one read or write against a character host.
const HostRequest = 10 * time.Second

// HostListing caps host calls that read many records, such as full listings.
const HostListing = 30 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 10 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight MCP requests
// during graceful shutdown.
const Shutdown = 35 * time.Second
