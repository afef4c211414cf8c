package response

import "time"

type PresignUploadResponse struct {
	Method    string    `json:"method"`
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}
