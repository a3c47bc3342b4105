// Package health serves liveness and readiness probes for the worker.
package health

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const checkTimeout = 2 * time.Second

// ReadyCheck is a named dependency probe run on every /readyz request.
type ReadyCheck struct {
	Name  string
	Check func(context.Context) error
}

// NewRouter mounts /healthz, which always answers ok, and /readyz, which
// answers 503 listing every failing check.
func NewRouter(checks ...ReadyCheck) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusOK, "ok")
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		var failures []string
		for _, c := range checks {
			if c.Check == nil {
				continue
			}
			ctx, cancel := context.WithTimeout(req.Context(), checkTimeout)
			err := c.Check(ctx)
			cancel()
			if err != nil {
				name := c.Name
				if name == "" {
					name = "dependency"
				}
				failures = append(failures, name+": "+err.Error())
			}
		}
		if len(failures) > 0 {
			writeText(w, http.StatusServiceUnavailable, strings.Join(failures, "; "))
			return
		}
		writeText(w, http.StatusOK, "ok")
	})
	return r
}

// NewServer wraps the router in an http.Server with the timeouts the probes need.
func NewServer(addr string, checks ...ReadyCheck) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(checks...),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
