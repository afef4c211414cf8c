package adaptor

import (
	"net/http"

	"movie-paradise/internal/dto/request"
	"movie-paradise/internal/usecase"
	"movie-paradise/pkg/utils"

	"go.uber.org/zap"
)

type UploadHandler struct {
	service usecase.UploadService
	log     *zap.Logger
}

func NewUploadHandler(service usecase.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		log:     log.With(zap.String("handler", "upload")),
	}
}

// PresignImageUpload handles POST /api/admin/uploads/presign
func (h *UploadHandler) PresignImageUpload(w http.ResponseWriter, r *http.Request) {
	var req request.PresignUploadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	upload, err := h.service.PresignImageUpload(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "presign upload")
		return
	}

	utils.ResponseSuccess(w, "Upload URL created", upload)
}
