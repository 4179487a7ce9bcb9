package http

import commonhttp "github.com/AlibekovAA/app-registry/internal/common/http"

type createUserRequest struct {
	Alias    *string `param:"alias" validate:"required"`
	Username *string `param:"username" validate:"required"`
	Password *string `param:"password" validate:"required"`
}

func newCreateUserRequest(p commonhttp.Params) createUserRequest {
	return createUserRequest{
		Alias:    p.Lookup("alias"),
		Username: p.Lookup("username"),
		Password: p.Lookup("password"),
	}
}

type loginRequest struct {
	Username *string `param:"username" validate:"required"`
	Password *string `param:"password" validate:"required"`
}

func newLoginRequest(p commonhttp.Params) loginRequest {
	return loginRequest{
		Username: p.Lookup("username"),
		Password: p.Lookup("password"),
	}
}

type changePasswordRequest struct {
	NewPassword *string `param:"newPassword" validate:"required"`
}

type changeAliasRequest struct {
	NewAlias *string `param:"newAlias" validate:"required"`
}

type changeUsernameRequest struct {
	NewUsername *string `param:"newUsername" validate:"required"`
}

// legacyChangePasswordRequest matches the query-string form used by /app.
type legacyChangePasswordRequest struct {
	Password *string `param:"password" validate:"required"`
}

type createAppResponse struct {
	ID string `json:"id"`
}
