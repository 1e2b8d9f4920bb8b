package v1alpha1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
	"github.com/emma-community/emma-portal-proxy/internal/handlers/validator"
)

// computeTypesFromQuery parses the repeatable computeType parameter.
func computeTypesFromQuery(r *http.Request) ([]api.ComputeType, error) {
	var computeTypes []api.ComputeType
	for _, raw := range r.URL.Query()["computeType"] {
		computeType, ok := api.ParseComputeType(raw)
		if !ok {
			return nil, fmt.Errorf("unknown compute type %q", raw)
		}
		computeTypes = append(computeTypes, computeType)
	}
	return computeTypes, nil
}

func computeTypeFromPath(r *http.Request) (api.ComputeType, error) {
	raw := chi.URLParam(r, "computeType")
	computeType, ok := api.ParseComputeType(raw)
	if !ok {
		return "", fmt.Errorf("unknown compute type %q", raw)
	}
	return computeType, nil
}

// (GET /api/v1/compute/configs)
func (h *ServiceHandler) ListComputeConfigs(w http.ResponseWriter, r *http.Request) {
	computeTypes, err := computeTypesFromQuery(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	providerID, err := intQueryParam(r, "providerId")
	if err != nil {
		badRequest(w, r, "providerId must be an integer")
		return
	}
	locationID, err := intQueryParam(r, "locationId")
	if err != nil {
		badRequest(w, r, "locationId must be an integer")
		return
	}
	var dataCenterID *string
	if raw := r.URL.Query().Get("dataCenterId"); raw != "" {
		dataCenterID = &raw
	}

	configs, err := h.cloudSrv.ListComputeConfigs(r.Context(), providerID, locationID, dataCenterID, computeTypes...)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, configs)
}

// (GET /api/v1/compute/entities)
func (h *ServiceHandler) ListComputeEntities(w http.ResponseWriter, r *http.Request) {
	computeTypes, err := computeTypesFromQuery(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	entityID, err := intQueryParam(r, "entityId")
	if err != nil {
		badRequest(w, r, "entityId must be an integer")
		return
	}

	entities, err := h.cloudSrv.ListComputeEntities(r.Context(), entityID, computeTypes...)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, entities)
}

func (h *ServiceHandler) decodeEntity(w http.ResponseWriter, r *http.Request) (*api.Vm, bool) {
	computeType, err := computeTypeFromPath(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return nil, false
	}

	var entity api.Vm
	if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
		badRequest(w, r, "invalid request body")
		return nil, false
	}
	entity.Type = computeType

	v := validator.NewValidator()
	v.Register(validator.NewComputeEntityValidationRules()...)
	if err := v.Struct(entity); err != nil {
		badRequest(w, r, err.Error())
		return nil, false
	}

	return &entity, true
}

// (POST /api/v1/compute/entities/{computeType}/add)
func (h *ServiceHandler) AddComputeEntity(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.decodeEntity(w, r)
	if !ok {
		return
	}

	id, err := h.cloudSrv.AddComputeEntity(r.Context(), *entity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, entityReply{ID: id})
}

// (POST /api/v1/compute/entities/{computeType}/{entityId}/update)
func (h *ServiceHandler) UpdateComputeEntity(w http.ResponseWriter, r *http.Request) {
	entityID, err := urlParamInt(r, "entityId")
	if err != nil {
		badRequest(w, r, "entityId must be an integer")
		return
	}

	entity, ok := h.decodeEntity(w, r)
	if !ok {
		return
	}
	entity.ID = entityID

	if err := h.cloudSrv.UpdateComputeEntity(r.Context(), *entity); err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, entityReply{ID: entityID})
}

// (GET /api/v1/compute/entities/{computeType}/{entityId}/delete)
// Deletion over GET is what the portal frontend calls; kept for
// compatibility with it.
func (h *ServiceHandler) DeleteComputeEntity(w http.ResponseWriter, r *http.Request) {
	computeType, err := computeTypeFromPath(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	entityID, err := urlParamInt(r, "entityId")
	if err != nil {
		badRequest(w, r, "entityId must be an integer")
		return
	}

	if err := h.cloudSrv.DeleteComputeEntity(r.Context(), entityID, computeType); err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, entityReply{ID: entityID})
}
