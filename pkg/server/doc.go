// Package server provides the HTTP server that fronts the planning engine.
//
// The server is configured with functional options and serves caller-supplied
// handlers behind a common middleware chain:
//
//	s := server.New(
//	    server.WithName("batchplan-api"),
//	    server.WithVersion("v1.0.0"),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/plan": planHandler,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// The middleware chain applies, outermost first: Prometheus RED metrics,
// request ID propagation, panic recovery, token-bucket rate limiting
// (golang.org/x/time/rate), and request logging. System endpoints (/health,
// /ready, /metrics) bypass rate limiting.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully within the configured timeout.
package server
