// Package http implements the HTTP handlers of the function host.
//
// Handlers stay thin: they log, call a service and turn the result into a
// response. The trigger handler is the single error boundary of the
// ingestion flow, so every failure becomes a 500 with the error text.
//
//	POST /api/http_trigger → TriggerHandler → services.IngestionService
//	GET  /api/health       → HealthHandler  → services.HealthService
package http
