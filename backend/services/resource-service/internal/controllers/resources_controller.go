package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/dtos"
	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/services"
)

type ResourcesController struct {
	listing   services.ListingService
	resources services.ResourceService
}

func NewResourcesController(l services.ListingService, r services.ResourceService) *ResourcesController {
	return &ResourcesController{listing: l, resources: r}
}

// -----------------------------------------------------------------------------
// GET /api/v1/resources?lat=&lng=&type=&open=
// -----------------------------------------------------------------------------
func (c *ResourcesController) ListResourcesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, ok := parseListFilter(q)
	if !ok {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid filter", nil,
		)
		return
	}

	list, err := c.listing.ListWithDistance(r.Context(), parseObserver(q), filter)
	if err != nil {
		utils.HandleAppError(w, utils.NewAppError(err, "Failed to fetch resources"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// -----------------------------------------------------------------------------
// GET /api/v1/resources/{id}
// -----------------------------------------------------------------------------
func (c *ResourcesController) GetResourceHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	res, err := c.resources.GetResource(r.Context(), id)
	if err != nil {
		msg := "Failed to fetch resource"
		if errors.Is(err, utils.ErrNotFound) {
			msg = "Resource not found"
		}
		utils.HandleAppError(w, utils.NewAppError(err, msg))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// POST /api/v1/resources
// -----------------------------------------------------------------------------
func (c *ResourcesController) CreateResourceHandler(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Failed to create resource"

	var req dtos.CreateResourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, failMsg, nil, err)
		return
	}
	if err := dtos.Validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, failMsg, nil, err)
		return
	}

	created, err := c.resources.CreateResource(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, utils.NewAppError(err, failMsg))
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// -----------------------------------------------------------------------------
// PATCH /api/v1/resources/{id}/favorite
// -----------------------------------------------------------------------------
func (c *ResourcesController) SetFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dtos.SetFavoriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := dtos.Validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "isFavorite is required", nil, err)
		return
	}

	updated, err := c.resources.SetFavorite(r.Context(), id, *req.IsFavorite)
	if err != nil {
		msg := "Failed to update resource"
		if errors.Is(err, utils.ErrNotFound) {
			msg = "Resource not found"
		}
		utils.HandleAppError(w, utils.NewAppError(err, msg))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}
