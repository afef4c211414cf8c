package request

// CreateReviewRequest is what any visitor may submit; approval is never taken from the client
type CreateReviewRequest struct {
	Username string  `json:"username" validate:"required,notblank,max=50"`
	Rating   int     `json:"rating" validate:"required,gte=1,lte=10"`
	Comment  *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

type ReviewListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending approved all"`
}
