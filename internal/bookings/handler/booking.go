package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"booklt/internal/bookings/service"
	httputil "booklt/pkg/http"
	"booklt/pkg/logger"
	"booklt/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

type bookingResponse struct {
	Message  string               `json:"message"`
	Booking  *model.Booking       `json:"booking,omitempty"`
	Bookings []*model.BookingView `json:"bookings,omitempty"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if req.UserID == "" || req.ExpID == "" || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "All booking fields are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, bookingResponse{
		Message: "Booking created successfully!",
		Booking: booking,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) GetForUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	bookings, err := h.service.GetForUser(r.Context(), userID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetForUser", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, bookingResponse{
		Message:  "Bookings found",
		Bookings: bookings,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetForUser", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/book/exp", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/book/yourBooking/{userId}", h.GetForUser).Methods(http.MethodGet)
}
