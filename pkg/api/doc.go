// Package api exposes the planning engine over HTTP.
//
// A single endpoint, POST /v1/plan, accepts the full planning input as JSON
// (resource inventory, recipe catalog, requested instances, objective, and
// optional tuning) and returns the assembled schedule result. Validation
// failures map to 400, structural infeasibility to 422, and internal errors
// to 500, all as the server package's structured error body.
//
// Serve wires the handler into the HTTP server with structured logging and
// blocks until shutdown:
//
//	if err := api.Serve(); err != nil {
//	    os.Exit(1)
//	}
package api
