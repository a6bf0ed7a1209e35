// Package service runs the character bridge as an MCP server.
//
// It owns transport concerns only: stdio or streamable HTTP, host checks and
// tool/resource registration. Tool semantics live in the mcp domain package.
package service
