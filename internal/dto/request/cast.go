package request

type CastMemberRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	Character   string  `json:"character" validate:"required,notblank,max=100"`
	ProfilePath *string `json:"profile_path,omitempty" validate:"omitempty,http_url"`
}
