package controller

import (
	"net/http/pprof"

	"github.com/gorilla/mux"
)

// PprofPrefix is where MountPprof serves the profiling endpoints.
const PprofPrefix = "/debug/pprof"

// MountPprof registers the net/http/pprof handlers on r under PprofPrefix.
// Named profiles (heap, goroutine, ...) are served by the index handler.
func MountPprof(r *mux.Router) {
	sub := r.PathPrefix(PprofPrefix).Subrouter()

	sub.HandleFunc("/cmdline", pprof.Cmdline)
	sub.HandleFunc("/profile", pprof.Profile)
	sub.HandleFunc("/symbol", pprof.Symbol)
	sub.HandleFunc("/trace", pprof.Trace)
	sub.PathPrefix("/").HandlerFunc(pprof.Index)
}
