package adaptor

import (
	"net/http"

	"movie-paradise/internal/dto/request"
	"movie-paradise/internal/usecase"
	"movie-paradise/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// GetDashboardStats handles GET /api/admin/stats
func (h *AdminHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDashboardStats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// GetAdmins handles GET /api/admin/admins
func (h *AdminHandler) GetAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.GetAdmins(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get admins")
		return
	}

	utils.ResponseSuccess(w, "success", admins)
}

// AddAdmin handles POST /api/admin/admins
func (h *AdminHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	var req request.AddAdminRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	admin, err := h.service.AddAdmin(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add admin")
		return
	}

	utils.ResponseCreated(w, "Admin granted", admin)
}
