package dtos

type SubmissionRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Type     string  `json:"type" validate:"required,resource_type"`
	Address  string  `json:"address" validate:"required,max=500"`
	Hours    *string `json:"hours" validate:"omitempty,max=200"`
	PhotoURL *string `json:"photoUrl" validate:"omitempty,url"`
}

type PhotoUploadResponse struct {
	PhotoURL string `json:"photoUrl"`
}
