package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewComputeEntityValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("compute_type", computeTypeValidator),
		},
		{
			Rule: registerFn("vcpu_type", vCpuTypeValidator),
		},
		{
			Rule: registerFn("network_type", cloudNetworkTypeValidator),
		},
		{
			Rule: registerFn("disk_type", diskTypeValidator),
		},
		{
			Rule: registerFn("entity_name", entityNameValidator),
		},
	}
}

func NewSshKeyValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("key_or_key_type", keyOrKeyTypeValidator),
		},
	}
}
