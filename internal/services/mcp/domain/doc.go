// Package domain translates MCP tool and resource calls into character
// bridge operations.
//
// Handlers resolve an actor through the host store, route it to the adapter
// for its game system, and return both structured output and a text block
// that chat clients can show directly. Updates are serialized per actor.
package domain
