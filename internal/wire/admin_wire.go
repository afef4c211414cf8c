package wire

import (
	"movie-paradise/internal/adaptor"
	"movie-paradise/internal/data/repository"
	"movie-paradise/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	uploadHandler *adaptor.UploadHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	admin := adminOnly(r, repo, log)
	admin.Get("/api/admin/stats", adminHandler.GetDashboardStats)
	admin.Get("/api/admin/admins", adminHandler.GetAdmins)
	admin.Post("/api/admin/admins", adminHandler.AddAdmin)
	admin.Post("/api/admin/uploads/presign", uploadHandler.PresignImageUpload)
}
