package main

import (
	"net/http"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abczzz13/conninfo"
)

type server struct {
	resolver *conninfo.Resolver
	registry *prom.Registry
	render   renderer
	console  *console
	log      logr.Logger
}

func (s *server) router(withMetrics bool) *mux.Router {
	r := mux.NewRouter()
	r.Use(s.resolver.Middleware)

	if withMetrics {
		s.handleMetrics(r)
	}
	r.HandleFunc("/peer", s.peer).Methods(http.MethodGet)
	r.PathPrefix("/").HandlerFunc(s.echo)

	return r
}

func (s *server) metricsRouter() *mux.Router {
	r := mux.NewRouter()
	s.handleMetrics(r)
	return r
}

func (s *server) handleMetrics(r *mux.Router) {
	r.Handle("/metrics", promhttp.HandlerFor(
		s.registry,
		promhttp.HandlerOpts{EnableOpenMetrics: true}),
	).Methods(http.MethodGet)
}

func (s *server) echo(w http.ResponseWriter, r *http.Request) {
	info, ok := conninfo.FromRequest(r)
	if !ok {
		// Only reachable if the router is built without the middleware.
		info = s.resolver.Resolve(r)
	}

	s.console.request(r, info)
	s.log.V(1).Info("Resolved", "path", r.URL.Path, "info", info.String(), "provenance", info.Provenance())

	w.Header().Set("Content-Type", s.render.contentType())
	if err := s.render.info(w, info); err != nil {
		s.log.Error(err, "Failed to write response")
	}
}

func (s *server) peer(w http.ResponseWriter, r *http.Request) {
	addr, err := conninfo.PeerAddrFromRequest(r)
	if err != nil {
		conninfo.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", s.render.contentType())
	if err := s.render.peer(w, addr); err != nil {
		s.log.Error(err, "Failed to write response")
	}
}
