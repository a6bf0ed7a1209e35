package domain

import "github.com/louisbranch/vttbridge/internal/platform/timeouts"

// hostCallTimeout caps the time for a single host store call from an MCP tool handler.
const hostCallTimeout = timeouts.HostRequest

// hostLongCallTimeout caps calls that read many records, such as full listings.
const hostLongCallTimeout = timeouts.HostListing
