// Package controller holds the HTTP middlewares and helper handlers shared
// by the API server: permissive CORS with preflight handling (WithCORS), a
// request-ID and access-log middleware backed by the context logger
// (WithLogger), and a mux exposing the net/http/pprof handlers (PprofMux).
package controller
