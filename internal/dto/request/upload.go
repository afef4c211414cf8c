package request

type PresignUploadRequest struct {
	Filename    string `json:"filename" validate:"required,max=200"`
	ContentType string `json:"content_type" validate:"required,oneof=image/jpeg image/png image/webp"`
	Kind        string `json:"kind" validate:"required,oneof=poster background profile"`
}
