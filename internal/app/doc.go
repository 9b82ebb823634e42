// Package app wires the local function host: configuration, telemetry,
// the ingestion service and the chi router that exposes it.
//
// Routes:
//
//	GET|POST /api/http_trigger  run one ingestion
//	GET      /api/health        health status
//	GET      /api/health/live   liveness probe
//	GET      /metrics           Prometheus scrape endpoint
//
// Run blocks until its context is cancelled or SIGINT/SIGTERM arrives and
// then shuts the server down within Server.ShutdownTimeout.
package app
