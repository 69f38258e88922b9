// Package monitoring serves the Prometheus metrics and pprof profiling
// endpoints on a separate debug port.
package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/openmeet/roomclient/pkg/config"
	"github.com/openmeet/roomclient/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

type Monitoring struct {
	conf config.Monitoring
	log  *logger.Logger

	server *http.Server
}

func New(conf config.Monitoring, reg *prometheus.Registry, log *logger.Logger) *Monitoring {
	mux := http.NewServeMux()
	prefix := conf.URLPrefix
	if conf.MetricEnabled {
		var handler http.Handler
		if reg != nil {
			handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		} else {
			handler = promhttp.Handler()
		}
		mux.Handle(prefix+"/metrics", handler)
	}
	if conf.ProfilingEnabled {
		mux.HandleFunc(prefix+"/debug/pprof/", pprof.Index)
		mux.HandleFunc(prefix+"/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc(prefix+"/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc(prefix+"/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc(prefix+"/debug/pprof/trace", pprof.Trace)
	}
	return &Monitoring{
		conf: conf,
		log:  log,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", conf.Port),
			Handler: mux,
		},
	}
}

func (m *Monitoring) Run() {
	m.log.Info().Msgf("Monitoring server on %s", m.server.Addr)
	if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		m.log.Error().Err(err).Msg("monitoring server failed")
	}
}

func (m *Monitoring) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return m.server.Shutdown(ctx)
}

func (m *Monitoring) String() string {
	return fmt.Sprintf("monitoring::%s:%d", m.conf.URLPrefix, m.conf.Port)
}
