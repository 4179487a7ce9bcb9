package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	commonhttp "github.com/AlibekovAA/app-registry/internal/common/http"
	"github.com/AlibekovAA/app-registry/internal/registry/service"
)

// mountLegacy serves the older /app surface. It accepts any method, reads
// every field from the query string and answers mutations with an empty
// body.
func (h *Handler) mountLegacy(r chi.Router) {
	r.Route("/app", func(r chi.Router) {
		r.HandleFunc("/", h.listApps)
		r.HandleFunc("/create", h.legacyCreateApp)

		r.Route("/{id}", func(r chi.Router) {
			r.HandleFunc("/", h.showApp)
			r.HandleFunc("/create", h.legacyCreateUser)
			r.HandleFunc("/login", h.login)
			r.HandleFunc("/{username}/changePassword", h.legacyChangePassword)
			r.HandleFunc("/{username}/delete", h.legacyDeleteUser)
		})
	})
}

func (h *Handler) legacyCreateApp(w http.ResponseWriter, r *http.Request) {
	if _, err := h.registry.CreateApp(r.Context()); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteEmpty(w, http.StatusOK)
}

func (h *Handler) legacyCreateUser(w http.ResponseWriter, r *http.Request) {
	req := newCreateUserRequest(commonhttp.QueryParams(r))
	if err := commonhttp.Validate(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	if err := checkUsername(*req.Username); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	err := h.registry.CreateUser(r.Context(), service.CreateUserInput{
		AppID:    pathParam(r, "id"),
		Alias:    *req.Alias,
		Username: *req.Username,
		Password: *req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteEmpty(w, http.StatusOK)
}

func (h *Handler) legacyChangePassword(w http.ResponseWriter, r *http.Request) {
	req := legacyChangePasswordRequest{Password: commonhttp.QueryParams(r).Lookup("password")}
	if err := commonhttp.Validate(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	if err := h.registry.ChangePassword(r.Context(), pathParam(r, "id"), pathParam(r, "username"), *req.Password); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteEmpty(w, http.StatusOK)
}

func (h *Handler) legacyDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.DeleteUser(r.Context(), pathParam(r, "id"), pathParam(r, "username")); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteEmpty(w, http.StatusOK)
}
