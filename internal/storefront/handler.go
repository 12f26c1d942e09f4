// internal/storefront/handler.go
package storefront

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes the storefront over HTTP. The page opens a session, then
// posts intents and reads back the refreshed view.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/storefront", func(r chi.Router) {
		r.Post("/sessions", h.openSession)
		r.Get("/sessions/{id}/view", h.getView)
		r.Post("/sessions/{id}/intents", h.dispatchIntent)
		r.Delete("/sessions/{id}", h.closeSession)
	})
}

type sessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	View      View      `json:"view"`
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	sess := h.service.OpenSession(r.Context())
	respond(w, http.StatusCreated, sessionResponse{
		SessionID: sess.ID,
		View:      sess.View(),
	})
}

func (h *Handler) getView(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, sess.View())
}

func (h *Handler) dispatchIntent(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var in Intent
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := sess.Dispatch(r.Context(), in); err != nil {
		if errors.Is(err, ErrUnknownIntent) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Fetch failures degrade to inline view state, not error responses.
	}

	respond(w, http.StatusOK, sess.View())
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session ID", http.StatusBadRequest)
		return
	}
	h.service.CloseSession(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session ID", http.StatusBadRequest)
		return nil, false
	}

	sess, ok := h.service.Session(id)
	if !ok {
		http.Error(w, ErrSessionNotFound.Error(), http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
