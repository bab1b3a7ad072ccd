package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"booklt/internal/users/service"
	httputil "booklt/pkg/http"
	"booklt/pkg/logger"
	"booklt/pkg/model"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

type authResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user,omitempty"`
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var creds model.UserCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Signup", "error", writeErr)
		}
		return
	}

	user, err := h.service.Signup(r.Context(), &creds)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Signup", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, authResponse{
		Message: "User registered successfully",
		User:    user,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Signup", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.UserCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "error", writeErr)
		}
		return
	}

	user, err := h.service.Login(r.Context(), &creds)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, authResponse{
		Message: "Login successful",
		User:    user,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/userLogin/signup", h.Signup).Methods(http.MethodPost)
	router.HandleFunc("/userLogin/login", h.Login).Methods(http.MethodPost)
}
