package service

import (
	"errors"
	"net/http"

	commonerrors "github.com/AlibekovAA/app-registry/internal/common/errors"
)

var ErrServiceUnavailable = commonerrors.NewDomainError(
	"SERVICE_UNAVAILABLE",
	commonerrors.CategoryExternal,
	http.StatusServiceUnavailable,
	"service temporarily unavailable",
)

var ErrIdentityGeneration = commonerrors.NewDomainError(
	"IDENTITY_GENERATION_FAILED",
	commonerrors.CategoryInternal,
	http.StatusInternalServerError,
	"failed to generate app identity",
)

func handleCircuitBreakerError(err error) error {
	if errors.Is(err, commonerrors.ErrCircuitOpen) {
		return ErrServiceUnavailable.WithCause(err)
	}
	return err
}
