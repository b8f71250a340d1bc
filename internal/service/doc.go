// Package service implements the business logic layer for the school portal.
//
// Services sit between HTTP handlers and repositories. They own credential
// verification, session lifecycle, and the per-feature loaders backing the
// student and teacher sections.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Consumer-side repository interfaces declared next to the service
//   - Constructor function accepting those interfaces
//   - Sentinel errors from errors.go so handlers can map them predictably
//   - context.Context threaded through every call
package service
