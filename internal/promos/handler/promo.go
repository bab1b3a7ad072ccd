package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"booklt/internal/promos/service"
	httputil "booklt/pkg/http"
	"booklt/pkg/logger"
	"booklt/pkg/model"
)

type PromoHandler struct {
	service service.PromoService
	log     *logger.Logger
}

func NewPromoHandler(service service.PromoService, log *logger.Logger) *PromoHandler {
	return &PromoHandler{
		service: service,
		log:     log,
	}
}

type applyRequest struct {
	Code string `json:"code"`
}

type applyResponse struct {
	Message         string `json:"message"`
	DiscountPercent int    `json:"discountPercent"`
}

type promoResponse struct {
	Message string             `json:"message"`
	Promo   *model.PromoCode   `json:"promo,omitempty"`
	Promos  []*model.PromoCode `json:"promos,omitempty"`
}

func (h *PromoHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Apply", "error", writeErr)
		}
		return
	}

	promo, err := h.service.Apply(r.Context(), req.Code)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Apply", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, applyResponse{
		Message:         "Promo applied successfully!",
		DiscountPercent: promo.DiscountPercent,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Apply", "error", err)
	}
}

func (h *PromoHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, promoResponse{
		Message: "Promos found",
		Promos:  promos,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *PromoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PromoCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	promo, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, promoResponse{
		Message: "Promo code created successfully",
		Promo:   promo,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "error", err)
	}
}

func (h *PromoHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/promo/apply", h.Apply).Methods(http.MethodPost)
	router.HandleFunc("/promo/promos", h.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/promo/create", h.Create).Methods(http.MethodPost)
}
