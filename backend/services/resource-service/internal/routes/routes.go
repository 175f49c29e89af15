package routes

const (
	// Health
	Health = "/health"

	// Resource endpoints
	Resources        = "/api/v1/resources"
	ResourceByID     = "/api/v1/resources/{id}"
	ResourceFavorite = "/api/v1/resources/{id}/favorite"

	// Submission endpoints
	Submissions      = "/api/v1/submissions"
	SubmissionPhotos = "/api/v1/submissions/photos"
)
