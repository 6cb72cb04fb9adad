package handler

import (
	"errors"
	"net/http"

	"github.com/passforge/passforge-go/internal/engine"
	"github.com/passforge/passforge-go/internal/model"
	"github.com/passforge/passforge-go/internal/service"
)

// GeneratorHandler handles HTTP requests for password generation.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /api/v1/generate requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrLengthTooShort) || errors.Is(err, engine.ErrLengthTooLong) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
