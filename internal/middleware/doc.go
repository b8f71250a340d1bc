// Package middleware provides HTTP middleware for the school portal API.
//
// Middleware are composed with Chain and applied outermost-first:
//
//	handler = middleware.Chain(mux,
//		middleware.Recovery,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.CORS(origins),
//		middleware.SessionAuth(sessions),
//		middleware.RateLimit(limiter),
//	)
//
// SessionAuth only annotates the request with its identity; per-section
// role enforcement lives in RequireRole so each route group names the role
// it serves and the login route to send strangers to.
package middleware
