package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofMux builds a mux with the net/http/pprof handlers mounted at its
// root, for the server to hang under a debug prefix.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)

	return mux
}
