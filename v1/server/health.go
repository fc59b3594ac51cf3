package server

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/gpucatalog/v1/store"
)

const healthTimeout = 3 * time.Second

// healthHandler pings every store concurrently. It answers 200 when all
// respond and 503 otherwise, with the per-backend result in data.
func healthHandler(stores []store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		results := make([]string, len(stores))
		var g errgroup.Group
		for i, s := range stores {
			g.Go(func() error {
				if err := s.Ping(ctx); err != nil {
					results[i] = err.Error()
					return err
				}
				results[i] = "ok"
				return nil
			})
		}
		err := g.Wait()

		status := make(map[string]string, len(stores))
		for i, s := range stores {
			status[s.Backend()] = results[i]
		}

		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, Envelope{Success: false, Data: status, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, Envelope{Success: true, Data: status})
	}
}
