package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
)

// (GET /api/v1/providers)
func (h *ServiceHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providerID, err := intQueryParam(r, "providerId")
	if err != nil {
		badRequest(w, r, "providerId must be an integer")
		return
	}

	providers, err := h.cloudSrv.ListProviders(r.Context(), providerID, r.URL.Query().Get("providerName"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, providers)
}

// (GET /api/v1/locations)
func (h *ServiceHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locationID, err := intQueryParam(r, "locationId")
	if err != nil {
		badRequest(w, r, "locationId must be an integer")
		return
	}

	locations, err := h.cloudSrv.ListLocations(r.Context(), locationID, r.URL.Query().Get("locationName"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, locations)
}

// (GET /api/v1/operating-systems)
func (h *ServiceHandler) ListOperatingSystems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	systems, err := h.cloudSrv.ListOperatingSystems(r.Context(), query.Get("type"), query.Get("architecture"), query.Get("version"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, systems)
}
