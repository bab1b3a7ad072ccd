package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"booklt/internal/admins/service"
	httputil "booklt/pkg/http"
	"booklt/pkg/logger"
	"booklt/pkg/model"
)

type AdminHandler struct {
	service service.AdminService
	log     *logger.Logger
}

func NewAdminHandler(service service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

type adminResponse struct {
	Message string       `json:"message"`
	Admin   *model.Admin `json:"admin,omitempty"`
}

func (h *AdminHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var signup model.AdminSignup
	if err := json.NewDecoder(r.Body).Decode(&signup); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Signup", "error", writeErr)
		}
		return
	}

	admin, err := h.service.Signup(r.Context(), &signup)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Signup", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, adminResponse{
		Message: "Admin registered successfully",
		Admin:   admin,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Signup", "error", err)
	}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var login model.AdminLogin
	if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "error", writeErr)
		}
		return
	}

	admin, err := h.service.Login(r.Context(), &login)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, adminResponse{
		Message: "Admin login successful",
		Admin:   admin,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

func (h *AdminHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/admin/signup", h.Signup).Methods(http.MethodPost)
	router.HandleFunc("/admin/login", h.Login).Methods(http.MethodPost)
}
