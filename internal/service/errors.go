package service

import (
	"fmt"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
)

type ErrUnsupportedComputeType struct {
	error
}

func NewErrUnsupportedComputeType(computeType api.ComputeType) *ErrUnsupportedComputeType {
	return &ErrUnsupportedComputeType{fmt.Errorf("Unsupported compute type: %s", computeType)}
}

type ErrInvalidEntity struct {
	error
}

func NewErrInvalidEntity(message string) *ErrInvalidEntity {
	return &ErrInvalidEntity{fmt.Errorf("invalid compute entity: %s", message)}
}

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(resourceType string, id any) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %v not found", resourceType, id)}
}
