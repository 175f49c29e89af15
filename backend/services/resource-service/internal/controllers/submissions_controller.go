package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/dtos"
	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/services"
)

// multipart framing allowance on top of the photo itself
const multipartOverheadBytes = 64 << 10

type SubmissionsController struct {
	submissions services.SubmissionService
	photos      services.PhotoService
}

// NewSubmissionsController wires intake. photos may be nil when object
// storage is not configured; the photo route is then not registered.
func NewSubmissionsController(s services.SubmissionService, p services.PhotoService) *SubmissionsController {
	return &SubmissionsController{submissions: s, photos: p}
}

// -----------------------------------------------------------------------------
// POST /api/v1/submissions
// -----------------------------------------------------------------------------
func (c *SubmissionsController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Failed to create submission"

	var req dtos.SubmissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, failMsg, nil, err)
		return
	}
	if err := dtos.Validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, failMsg, nil, err)
		return
	}

	stored, err := c.submissions.Submit(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, utils.NewAppError(err, failMsg))
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, stored)
}

// -----------------------------------------------------------------------------
// POST /api/v1/submissions/photos  (multipart field "photo")
// -----------------------------------------------------------------------------
func (c *SubmissionsController) UploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Failed to upload photo"

	r.Body = http.MaxBytesReader(w, r.Body, services.MaxPhotoBytes+multipartOverheadBytes)
	if err := r.ParseMultipartForm(services.MaxPhotoBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			utils.RespondErrorWithCode(w, http.StatusRequestEntityTooLarge, utils.ErrCodePayloadTooLarge, "Photo exceeds 5 MiB", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, failMsg, nil, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing photo file", nil, err)
		return
	}
	defer file.Close()

	// Trust the bytes over the client's header when they are recognizable.
	sniff := make([]byte, 512)
	n, _ := io.ReadFull(file, sniff)
	contentType := http.DetectContentType(sniff[:n])
	if contentType == "application/octet-stream" {
		contentType = header.Header.Get("Content-Type")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, failMsg, nil, err)
		return
	}

	url, err := c.photos.UploadPhoto(r.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		utils.HandleAppError(w, utils.NewAppError(err, failMsg))
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.PhotoUploadResponse{PhotoURL: url})
}
