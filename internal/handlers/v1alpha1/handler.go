// Package v1alpha1 exposes the normalization facade over HTTP. Handlers only
// parse requests and map errors; all vendor reshaping lives in the service.
package v1alpha1

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/emma-community/emma-portal-proxy/internal/emma"
	"github.com/emma-community/emma-portal-proxy/internal/service"
)

// HealthReporter is the readiness signal surfaced on /health, fed by the
// token refresh loop.
type HealthReporter interface {
	Healthy() bool
}

type ServiceHandler struct {
	cloudSrv *service.CloudService
	health   HealthReporter
}

func NewServiceHandler(cloudService *service.CloudService, health HealthReporter) *ServiceHandler {
	return &ServiceHandler{
		cloudSrv: cloudService,
		health:   health,
	}
}

// RegisterRoutes mounts every route on the given router. Bearer enforcement
// for non-health routes is the hosting layer's concern.
func (h *ServiceHandler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/datacenters", h.ListDataCenters)
		r.Get("/providers", h.ListProviders)
		r.Get("/locations", h.ListLocations)
		r.Get("/operating-systems", h.ListOperatingSystems)
		r.Get("/ssh-keys", h.ListSshKeys)
		r.Post("/ssh-keys/{name}/add", h.AddSshKey)
		r.Get("/compute/configs", h.ListComputeConfigs)
		r.Get("/compute/entities", h.ListComputeEntities)
		r.Post("/compute/entities/{computeType}/add", h.AddComputeEntity)
		r.Post("/compute/entities/{computeType}/{entityId}/update", h.UpdateComputeEntity)
		r.Get("/compute/entities/{computeType}/{entityId}/delete", h.DeleteComputeEntity)
	})
}

type statusReply struct {
	Status string `json:"status"`
}

type errorReply struct {
	Message string `json:"message"`
}

type entityReply struct {
	ID int `json:"id"`
}

func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil && !h.health.Healthy() {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, statusReply{Status: "degraded"})
		return
	}
	render.JSON(w, r, statusReply{Status: "ok"})
}

// writeError maps service and vendor errors onto HTTP answers. Vendor
// failures keep the vendor's status and message; facade rejections are bad
// requests.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *service.ErrUnsupportedComputeType, *service.ErrInvalidEntity:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorReply{Message: err.Error()})
	case *service.ErrResourceNotFound:
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorReply{Message: err.Error()})
	case *emma.APIError:
		render.Status(r, e.StatusCode)
		render.JSON(w, r, errorReply{Message: e.Error()})
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorReply{Message: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorReply{Message: message})
}

// intQueryParam parses an optional integer query parameter, nil when absent.
func intQueryParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func urlParamInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}
