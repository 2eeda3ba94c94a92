package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/alaminute/backend-prints/internal/common"
)

// Handler exposes the public order endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   zerolog.Logger
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service  *Service
	Validate *validator.Validate
	Logger   zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	v := cfg.Validate
	if v == nil {
		v = validator.New()
	}
	return &Handler{service: cfg.Service, validate: v, logger: cfg.Logger}
}

// Create handles POST /api/v1/orders.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.WriteError(w, common.ValidationError("invalid JSON body", nil))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		common.WriteError(w, common.ValidationError("validation failed", common.ValidationDetails(err)))
		return
	}
	out, err := h.service.Create(r.Context(), in)
	if err != nil {
		common.WriteErrorLogged(h.logger, w, r, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"orderId":     out.OrderID,
		"orderNumber": out.OrderNumber,
	})
}

// Lookup handles GET /api/v1/orders?orderNumber=...&email=...
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	q := r.URL.Query()
	order, err := h.service.Lookup(r.Context(), q.Get("orderNumber"), q.Get("email"))
	if err != nil {
		common.WriteErrorLogged(h.logger, w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": order})
}
