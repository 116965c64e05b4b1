// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Adds permissive CORS headers and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithMetrics: Records per-route latency; meant for gorilla/mux Router.Use.
//
// Provided helpers:
//   - MountPprof: Registers net/http/pprof handlers on a router.
package controller
