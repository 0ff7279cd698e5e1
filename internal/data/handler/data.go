package handler

import (
	"net/http"

	"hotelbooking/internal/data/service"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type DataHandler struct {
	service service.DataService
	log     *logger.Logger
}

func NewDataHandler(service service.DataService, log *logger.Logger) *DataHandler {
	return &DataHandler{
		service: service,
		log:     log,
	}
}

func (h *DataHandler) Seed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summary, err := h.service.Seed(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Seed", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, summary); err != nil {
		h.log.Error("failed to write success response", "handler", "Seed", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DataHandler) Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.Clear(r.Context()); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Clear", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, MessageResponse{Message: "Data cleared successfully"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Clear", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DataHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/data/seed", h.Seed)
	router.DELETE("/api/v1/data/clear", h.Clear)
}
