package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/store"
)

const maxBodyBytes = 1 << 20

// cardsHandler serves one store under /api/{backend}/cards.
type cardsHandler struct {
	store   store.Store
	filters filter.Config
	log     logger.Logger
}

// routes mounts the handlers. Relational ids must be numeric to route.
func (h *cardsHandler) routes(r chi.Router) {
	idPath := "/{id}"
	if h.store.Kind() == store.KindRelational {
		idPath = "/{id:[0-9]+}"
	}

	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get(idPath, h.get)
	r.Put(idPath, h.update)
	r.Delete(idPath, h.delete)
}

func (h *cardsHandler) list(w http.ResponseWriter, r *http.Request) {
	set, err := h.filters.Parse(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.List(r.Context(), set)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: records})
}

func (h *cardsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in card.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, ID: id, Message: MsgCreated})
}

func (h *cardsHandler) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, MsgNotFound)
		return
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: rec})
}

func (h *cardsHandler) update(w http.ResponseWriter, r *http.Request) {
	var p card.Patch
	if !decode(w, r, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	matched, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	if !matched {
		writeError(w, http.StatusNotFound, MsgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: MsgUpdated})
}

func (h *cardsHandler) delete(w http.ResponseWriter, r *http.Request) {
	matched, err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	if !matched {
		writeError(w, http.StatusNotFound, MsgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: MsgDeleted})
}

// storeError answers 500 with the error text.
func (h *cardsHandler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorWithContext(r.Context(), "Store request failed", err, map[string]interface{}{
		"backend": h.store.Backend(),
		"method":  r.Method,
		"path":    r.URL.Path,
	})
	writeError(w, http.StatusInternalServerError, err.Error())
}

// decode reads a JSON body into v and answers 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
