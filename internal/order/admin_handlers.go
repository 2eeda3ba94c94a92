package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/alaminute/backend-prints/internal/common"
)

// AdminHandler provides administrative order management endpoints. Routes
// using it sit behind the admin token middleware.
type AdminHandler struct {
	Service *Service
	Logger  zerolog.Logger
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

// PatchStatus handles PATCH /api/v1/admin/orders/{orderNumber}/status with
// state-machine validation.
func (h *AdminHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	var req patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.ValidationError("invalid JSON body", nil))
		return
	}
	if req.Status == "" {
		common.WriteError(w, common.ValidationError("status is required", nil))
		return
	}
	orderNumber := chi.URLParam(r, "orderNumber")
	if err := h.Service.UpdateStatus(r.Context(), orderNumber, req.Status); err != nil {
		common.WriteErrorLogged(h.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
