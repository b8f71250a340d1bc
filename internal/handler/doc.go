// Package handler implements the HTTP layer for the school portal API.
//
// Handlers are thin: they decode the request, call one or two services, and
// write the result through the response helpers. All error mapping funnels
// through MapServiceError so the same service failure always produces the
// same problem response.
//
// Routes are registered on a Go 1.22 method-pattern ServeMux in cmd/server;
// path parameters are read with r.PathValue.
package handler
