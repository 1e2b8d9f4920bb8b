package v1alpha1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
	"github.com/emma-community/emma-portal-proxy/internal/handlers/validator"
)

// (GET /api/v1/ssh-keys)
func (h *ServiceHandler) ListSshKeys(w http.ResponseWriter, r *http.Request) {
	keyID, err := intQueryParam(r, "sshKeyId")
	if err != nil {
		badRequest(w, r, "sshKeyId must be an integer")
		return
	}

	keys, err := h.cloudSrv.ListSshKeys(r.Context(), keyID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, keys)
}

// (POST /api/v1/ssh-keys/{name}/add)
func (h *ServiceHandler) AddSshKey(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var form api.SshKeyImport
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewSshKeyValidationRules()...)
	if err := v.Struct(form); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	key, err := h.cloudSrv.AddSshKey(r.Context(), name, form.KeyOrKeyType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, key)
}
