// Package flaghttp exposes a feature registry over HTTP for administrative
// toggling and diagnostics. It is a thin adapter: all resolution semantics
// live in the registry, all persistence in the attached store.
//
// Routes:
//
//	GET    /flags          list defined flag names
//	GET    /flags/{name}   resolve a flag; query parameters become the evaluation context
//	PUT    /flags/{name}   persist a stored value ({"enabled": bool})
//	DELETE /flags/{name}   remove a stored value
//
// Mount the handler under an authenticated admin router; the package itself
// performs no authentication.
package flaghttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flagkit/flagkit/pkg/feature"
)

type response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Handler returns an http.Handler serving the flag admin API. The store is
// the same one attached to the registry, passed explicitly because the
// registry deliberately exposes no delete operation; a nil store degrades
// the write routes to 409 responses.
func Handler(reg *feature.Registry, store feature.Store) http.Handler {
	r := chi.NewRouter()

	r.Get("/flags", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, response{Data: map[string]any{
			"flags": reg.DefinedFlags(),
		}})
	})

	r.Get("/flags/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")

		ec := make(feature.Context)
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				ec[key] = values[0]
			}
		}

		active, err := reg.Active(req.Context(), name, ec)
		if err != nil {
			if errors.Is(err, feature.ErrFlagNotFound) {
				writeJSON(w, http.StatusNotFound, response{Error: "flag not found"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, response{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, response{Data: map[string]any{
			"name":   name,
			"active": active,
		}})
	})

	r.Put("/flags/{name}", func(w http.ResponseWriter, req *http.Request) {
		if store == nil {
			writeJSON(w, http.StatusConflict, response{Error: "no flag store attached"})
			return
		}

		var body struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, response{Error: "malformed request body"})
			return
		}

		name := chi.URLParam(req, "name")
		if err := store.Set(req.Context(), name, body.Enabled); err != nil {
			writeJSON(w, http.StatusInternalServerError, response{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, response{Data: map[string]any{
			"name":    name,
			"enabled": body.Enabled,
		}})
	})

	r.Delete("/flags/{name}", func(w http.ResponseWriter, req *http.Request) {
		if store == nil {
			writeJSON(w, http.StatusConflict, response{Error: "no flag store attached"})
			return
		}

		if err := store.Delete(req.Context(), chi.URLParam(req, "name")); err != nil {
			writeJSON(w, http.StatusInternalServerError, response{Error: err.Error()})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
