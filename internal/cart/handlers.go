package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/alaminute/backend-prints/internal/common"
)

// Handler exposes the cart endpoints.
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

// Create handles POST /api/v1/carts.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cart, err := h.service.Create(r.Context())
	if err != nil {
		common.WriteErrorLogged(h.logger, w, r, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": cart})
}

// Get handles GET /api/v1/carts/{cartId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cart, err := h.service.Get(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		common.WriteErrorLogged(h.logger, w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cart})
}

// AddItem handles POST /api/v1/carts/{cartId}/items.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var in AddItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.WriteError(w, common.ValidationError("invalid JSON body", nil))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		common.WriteError(w, common.ValidationError("validation failed", common.ValidationDetails(err)))
		return
	}
	cart, err := h.service.AddItem(r.Context(), chi.URLParam(r, "cartId"), in)
	if err != nil {
		common.WriteErrorLogged(h.logger, w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cart})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PATCH /api/v1/carts/{cartId}/items/{itemId}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.ValidationError("invalid JSON body", nil))
		return
	}
	cart, err := h.service.UpdateQuantity(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "itemId"), req.Quantity)
	if err != nil {
		common.WriteErrorLogged(h.logger, w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cart})
}

// RemoveItem handles DELETE /api/v1/carts/{cartId}/items/{itemId}.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cart, err := h.service.RemoveItem(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "itemId"))
	if err != nil {
		common.WriteErrorLogged(h.logger, w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cart})
}

// Clear handles DELETE /api/v1/carts/{cartId}.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	if err := h.service.Clear(r.Context(), chi.URLParam(r, "cartId")); err != nil {
		common.WriteErrorLogged(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/v1/carts/{cartId}/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	summary, err := h.service.Summary(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		common.WriteErrorLogged(h.logger, w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": summary})
}
