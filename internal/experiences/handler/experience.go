package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"booklt/internal/experiences/service"
	httputil "booklt/pkg/http"
	"booklt/pkg/logger"
	"booklt/pkg/model"
)

// maxImageMemory caps how much of the multipart form is buffered in memory;
// larger image files spill to disk.
const maxImageMemory = 8 << 20

type ExperienceHandler struct {
	service service.ExperienceService
	log     *logger.Logger
}

func NewExperienceHandler(service service.ExperienceService, log *logger.Logger) *ExperienceHandler {
	return &ExperienceHandler{
		service: service,
		log:     log,
	}
}

type experienceResponse struct {
	Message     string              `json:"message"`
	Exp         *model.Experience   `json:"exp,omitempty"`
	Experiences []*model.Experience `json:"experiences,omitempty"`
}

func (h *ExperienceHandler) Post(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid multipart form",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Post", "error", writeErr)
		}
		return
	}

	input := &service.CreateInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		SlotsJSON:   r.FormValue("slots"),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		input.Image = file
		input.ImageFilename = header.Filename
	}

	exp, err := h.service.Create(r.Context(), input)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Post", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, experienceResponse{
		Message: "Experience posted successfully",
		Exp:     exp,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Post", "error", err)
	}
}

func (h *ExperienceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	exps, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, experienceResponse{
		Message:     "Experiences found",
		Experiences: exps,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *ExperienceHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	expID := mux.Vars(r)["expId"]

	exp, err := h.service.GetDetails(r.Context(), expID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetDetails", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, experienceResponse{
		Message: "Exp found",
		Exp:     exp,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetDetails", "error", err)
	}
}

func (h *ExperienceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/exp/post", h.Post).Methods(http.MethodPost)
	router.HandleFunc("/exp/all", h.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/exp/{expId}/details", h.GetDetails).Methods(http.MethodGet)
}
