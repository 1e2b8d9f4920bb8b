package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
)

var (
	sshRegex = []*regexp.Regexp{
		regexp.MustCompile(`^ssh-rsa AAAAB3NzaC1yc2[0-9A-Za-z+/]+[=]{0,3}(\s.*)?$`),
		regexp.MustCompile(`^ssh-ed25519 AAAAC3NzaC1lZDI1NTE5[0-9A-Za-z+/]+[=]{0,3}(\s.*)?$`),
	}

	entityNameValidRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._-]*[a-zA-Z0-9])?$`)
)

func computeTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(api.ComputeType)
	if !ok {
		return false
	}
	_, known := api.ParseComputeType(string(val))
	return known
}

func vCpuTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(api.VCpuType)
	if !ok {
		return false
	}
	_, known := api.ParseVCpuType(string(val))
	return known
}

func cloudNetworkTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(api.CloudNetworkType)
	if !ok {
		return false
	}
	_, known := api.ParseCloudNetworkType(string(val))
	return known
}

func diskTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(api.DiskType)
	if !ok {
		return false
	}
	_, known := api.ParseDiskType(string(val))
	return known
}

func entityNameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if val == "" {
		return true
	}
	return entityNameValidRegex.MatchString(val)
}

// keyOrKeyTypeValidator accepts either a bare key type or raw public key
// material in one of the supported formats.
func keyOrKeyTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	if _, known := api.ParseSshKeyType(val); known {
		return true
	}

	for _, r := range sshRegex {
		if r.MatchString(val) {
			return true
		}
	}

	return false
}
