package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vitrine/internal/core/domain"
)

// actorFrom reads the pre-authenticated caller identity injected by the
// fronting application. The engine performs its own ownership checks; it
// never re-authenticates.
func actorFrom(r *http.Request) (domain.Actor, bool) {
	id, err := uuid.Parse(r.Header.Get("X-User-Id"))
	if err != nil {
		return domain.Actor{}, false
	}
	role := domain.Role(r.Header.Get("X-User-Role"))
	if !role.Valid() {
		return domain.Actor{}, false
	}
	return domain.Actor{ID: id, Role: role}, true
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeErr maps the domain error taxonomy onto HTTP status codes. Anything
// outside the taxonomy is a 500 and gets logged.
func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	var (
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		notFound   *domain.NotFoundError
		ownership  *domain.OwnershipError
		upstream   *domain.UpstreamError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &conflict):
		status = http.StatusConflict
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &ownership):
		status = http.StatusForbidden
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("internal error", slog.Any("error", err))
		h.writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	h.writeJSON(w, status, errorBody{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// requireActor writes 401 and returns false when the identity headers are
// missing or malformed.
func (h *Handler) requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := actorFrom(r)
	if !ok {
		http.Error(w, "missing or invalid identity", http.StatusUnauthorized)
	}
	return actor, ok
}
