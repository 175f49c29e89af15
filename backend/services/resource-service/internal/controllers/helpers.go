package controllers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/leetaniau/foodmap/backend/shared/go-models"

	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/services"
)

const maxJSONBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// parseObserver returns nil unless both lat and lng parse as finite numbers.
// A bad observer degrades to an unordered listing rather than an error.
func parseObserver(q url.Values) *services.Observer {
	lat, latOK := models.ParseCoordinate(q.Get("lat"))
	lng, lngOK := models.ParseCoordinate(q.Get("lng"))
	if !latOK || !lngOK {
		return nil
	}
	obs := &services.Observer{Lat: lat, Lng: lng}
	if !obs.Usable() {
		return nil
	}
	return obs
}

// parseListFilter reads the optional type and open query parameters.
// ok is false when either is present but malformed.
func parseListFilter(q url.Values) (services.ListFilter, bool) {
	var f services.ListFilter

	if raw := strings.TrimSpace(q.Get("type")); raw != "" {
		t, ok := models.ParseResourceType(raw)
		if !ok {
			return f, false
		}
		f.Type = &t
	}
	if raw := strings.TrimSpace(q.Get("open")); raw != "" {
		open, err := strconv.ParseBool(raw)
		if err != nil {
			return f, false
		}
		f.OpenNow = open
	}
	return f, true
}
