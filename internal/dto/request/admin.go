package request

// AddAdminRequest identifies the user to promote by id or by email
type AddAdminRequest struct {
	UserID string `json:"user_id,omitempty" validate:"required_without=Email,omitempty,uuid"`
	Email  string `json:"email,omitempty" validate:"required_without=UserID,omitempty,email"`
}
