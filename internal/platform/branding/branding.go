// Package branding holds product naming shared by commands and servers.
package branding

// AppName is the product name shown to MCP clients and in CLI usage.
const AppName = "VTT Bridge"

// Namespace prefixes machine-facing names: metric names, env variables
// and the OpenTelemetry service namespace.
const Namespace = "vttbridge"
