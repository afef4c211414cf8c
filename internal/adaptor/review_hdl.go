package adaptor

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"movie-paradise/internal/data/entity"
	"movie-paradise/internal/dto/request"
	"movie-paradise/internal/usecase"
	"movie-paradise/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service      usecase.ReviewService
	pollInterval time.Duration
	log          *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, pollInterval time.Duration, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:      service,
		pollInterval: pollInterval,
		log:          log.With(zap.String("handler", "review")),
	}
}

// ==================== PUBLIC ROUTES ====================

// CreateReview handles POST /api/movies/{id}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// Session opsional, review anonim tetap boleh
	var userID *uuid.UUID
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	review, err := h.service.CreateReview(r.Context(), chi.URLParam(r, "id"), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review submitted and waiting for approval", review)
}

// GetMovieReviews handles GET /api/movies/{id}/reviews
func (h *ReviewHandler) GetMovieReviews(w http.ResponseWriter, r *http.Request) {
	req := parsePagination(r)

	reviews, err := h.service.GetMovieReviews(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie reviews")
		return
	}

	utils.ResponsePaginated(w, "success", reviews.Data, reviews.Pagination)
}

// GetMovieReviewStats handles GET /api/movies/{id}/review-stats
func (h *ReviewHandler) GetMovieReviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetMovieReviewStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie review stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// ==================== ADMIN ROUTES ====================

// GetReviews handles GET /api/admin/reviews?status=pending|approved|all
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(entity.ReviewStatusPending)
	}

	req := &request.ReviewListRequest{
		PaginatedRequest: parsePagination(r),
		Status:           status,
	}

	reviews, err := h.service.GetReviews(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews")
		return
	}

	if h.pollInterval > 0 {
		w.Header().Set("X-Poll-Interval", strconv.Itoa(int(math.Ceil(h.pollInterval.Seconds()))))
	}
	utils.ResponsePaginated(w, "success", reviews.Data, reviews.Pagination)
}

// ApproveReview handles PUT /api/admin/reviews/{id}/approve
func (h *ReviewHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	h.setApproval(w, r, true)
}

// RejectReview handles PUT /api/admin/reviews/{id}/reject
func (h *ReviewHandler) RejectReview(w http.ResponseWriter, r *http.Request) {
	h.setApproval(w, r, false)
}

// DeleteReview handles DELETE /api/admin/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted successfully", nil)
}

// ==================== HELPER METHODS ====================

func (h *ReviewHandler) setApproval(w http.ResponseWriter, r *http.Request, approved bool) {
	review, err := h.service.SetApproval(r.Context(), chi.URLParam(r, "id"), approved)
	if err != nil {
		handleServiceError(w, h.log, err, "moderate review")
		return
	}

	message := "Review rejected"
	if approved {
		message = "Review approved"
	}
	utils.ResponseSuccess(w, message, review)
}
