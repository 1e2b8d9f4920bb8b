package v1alpha1

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
)

// (GET /api/v1/datacenters)
// The fence applies only when all four bounds are present.
func (h *ServiceHandler) ListDataCenters(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var fence *api.GeoFence
	if query.Get("latMax") != "" || query.Get("lonMax") != "" || query.Get("latMin") != "" || query.Get("lonMin") != "" {
		latMax, err1 := strconv.ParseFloat(query.Get("latMax"), 64)
		lonMax, err2 := strconv.ParseFloat(query.Get("lonMax"), 64)
		latMin, err3 := strconv.ParseFloat(query.Get("latMin"), 64)
		lonMin, err4 := strconv.ParseFloat(query.Get("lonMin"), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			badRequest(w, r, "latMax, lonMax, latMin and lonMin must all be valid coordinates")
			return
		}
		fence = &api.GeoFence{
			TopRight:   api.GeoLocation{Latitude: latMax, Longitude: lonMax},
			BottomLeft: api.GeoLocation{Latitude: latMin, Longitude: lonMin},
		}
	}

	dataCenters, err := h.cloudSrv.ListDataCenters(r.Context(), fence)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, dataCenters)
}
