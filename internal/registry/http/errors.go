package http

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/app-registry/internal/common/errors"
)

// loginSegment is routed as GET /apps/{id}/login, so a user with that name
// could never be shown. It is refused at the edge.
const loginSegment = "login"

var ErrReservedUsername = commonerrors.NewDomainError(
	"RESERVED_USERNAME",
	commonerrors.CategoryValidation,
	http.StatusBadRequest,
	`username "login" is reserved`,
)

func checkUsername(username string) error {
	if username == loginSegment {
		return ErrReservedUsername
	}
	return nil
}
