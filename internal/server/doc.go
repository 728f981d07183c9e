// Package server exposes the record store over a small JSON HTTP API built
// on gin.
//
// Routes:
//
//	GET    /health
//	GET    /api/v1/records?range=field=min:max
//	POST   /api/v1/records
//	DELETE /api/v1/records/:index?expectName=...
//	GET    /api/v1/chart?field=total&range=...
//
// Validation failures map to 422, unknown positions to 404, stale deletes to
// 409 and storage failures to 503.
package server
