package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/leetaniau/foodmap/backend/shared/go-middleware"

	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/controllers"
	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/routes"
)

// NewRouter registers every endpoint. The photo route exists only when photo
// storage is configured, and submission writes pass through the rate limiter
// when one is configured.
func (a *App) NewRouter() *mux.Router {
	healthCtrl := controllers.NewHealthController(a.ResourceService)
	resourcesCtrl := controllers.NewResourcesController(a.ListingService, a.ResourceService)
	submissionsCtrl := controllers.NewSubmissionsController(a.SubmissionService, a.PhotoService)

	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Resources, resourcesCtrl.ListResourcesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Resources, resourcesCtrl.CreateResourceHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.ResourceByID, resourcesCtrl.GetResourceHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ResourceFavorite, resourcesCtrl.SetFavoriteHandler).Methods(http.MethodPatch)

	router.Handle(routes.Submissions, a.limited(http.HandlerFunc(submissionsCtrl.SubmitHandler))).Methods(http.MethodPost)
	if a.PhotoService != nil {
		router.Handle(routes.SubmissionPhotos, a.limited(http.HandlerFunc(submissionsCtrl.UploadPhotoHandler))).Methods(http.MethodPost)
	}
	return router
}

func (a *App) limited(h http.Handler) http.Handler {
	if a.RateLimiter == nil {
		return h
	}
	return middleware.RateLimitMiddleware(a.RateLimiter)(h)
}
