package report

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/antigravity-hq/antigravity/backend/internal/apperr"
	"github.com/antigravity-hq/antigravity/backend/internal/shared"
)

// Handler holds report HTTP handlers.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create runs the full analysis pipeline and stores the result.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		apperr.WriteError(w, apperr.Auth("not authorized to access this route"))
		return
	}

	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.WriteError(w, apperr.Validation("invalid request body"))
		return
	}

	report, details, err := h.service.Create(r.Context(), user.ID, input)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	apperr.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"report":  report,
			"details": details,
		},
	})
}

// List returns all reports for the current user, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		apperr.WriteError(w, apperr.Auth("not authorized to access this route"))
		return
	}

	reports, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"results": len(reports),
		"data":    map[string]interface{}{"reports": reports},
	})
}

// Get returns a single report owned by the current user.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		apperr.WriteError(w, apperr.Auth("not authorized to access this route"))
		return
	}

	report, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"report": report},
	})
}
