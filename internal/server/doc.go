// Package server provides the dedicated Prometheus metrics HTTP server.
//
// The sync daemon has no request-facing surface of its own, so the only
// HTTP listener is the metrics endpoint. Keeping it on its own port means
// operational metrics never share a listener with anything else.
package server
