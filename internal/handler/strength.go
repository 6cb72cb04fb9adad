package handler

import (
	"errors"
	"net/http"

	"github.com/passforge/passforge-go/internal/model"
	"github.com/passforge/passforge-go/internal/service"
)

// StrengthHandler handles HTTP requests for strength checks.
type StrengthHandler struct {
	service *service.StrengthService
}

// NewStrengthHandler creates a new StrengthHandler.
func NewStrengthHandler(svc *service.StrengthService) *StrengthHandler {
	return &StrengthHandler{service: svc}
}

// HandleStrength handles POST /api/v1/strength requests.
func (h *StrengthHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	var req model.StrengthRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Evaluate(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordRequired), errors.Is(err, service.ErrPasswordTooLong):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
