package domain

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/app-registry/internal/common/errors"
)

var (
	ErrAppNotFound = commonerrors.NewDomainError(
		"APP_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"app not found",
	)

	ErrUserNotRegistered = commonerrors.NewDomainError(
		"USER_NOT_REGISTERED",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"user is not registered in this app",
	)

	ErrUsernameAlreadyExists = commonerrors.NewDomainError(
		"USERNAME_ALREADY_EXISTS",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"username already exists",
	)

	ErrAliasAlreadyExists = commonerrors.NewDomainError(
		"ALIAS_ALREADY_EXISTS",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"alias already exists",
	)
)
