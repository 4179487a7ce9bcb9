package http

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/app-registry/internal/common/constants"
	commonhttp "github.com/AlibekovAA/app-registry/internal/common/http"
	"github.com/AlibekovAA/app-registry/internal/common/logger"
	"github.com/AlibekovAA/app-registry/internal/registry/domain"
	"github.com/AlibekovAA/app-registry/internal/registry/service"
)

// Registry is the set of operations the HTTP layer needs.
type Registry interface {
	ListApps(ctx context.Context) ([]*domain.App, error)
	CreateApp(ctx context.Context) (*domain.App, error)
	GetApp(ctx context.Context, appID string) (*domain.App, error)
	GetUser(ctx context.Context, appID, username string) (domain.User, error)
	CreateUser(ctx context.Context, input service.CreateUserInput) error
	Login(ctx context.Context, input service.LoginInput) (bool, error)
	ChangePassword(ctx context.Context, appID, username, newPassword string) error
	ChangeAlias(ctx context.Context, appID, username, newAlias string) error
	ChangeUsername(ctx context.Context, appID, username, newUsername string) error
	DeleteUser(ctx context.Context, appID, username string) error
}

type Options struct {
	RequestTimeout time.Duration
	LegacyRoutes   bool
	HealthCheck    commonhttp.HealthCheck
}

type Handler struct {
	registry Registry
	errors   *commonhttp.ErrorHandler
	log      *logger.Logger
}

func NewHandler(registry Registry, opts Options, log *logger.Logger) http.Handler {
	h := &Handler{
		registry: registry,
		errors:   commonhttp.NewErrorHandler(log),
		log:      log,
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	r := chi.NewRouter()
	r.NotFound(commonhttp.NotFoundHandler)
	r.MethodNotAllowed(commonhttp.MethodNotAllowedHandler)

	r.Get("/health", commonhttp.HealthHandler(log, opts.HealthCheck))

	r.Group(func(r chi.Router) {
		r.Use(commonhttp.TimeoutMiddleware(timeout))

		r.Route("/apps", func(r chi.Router) {
			r.Get("/", h.listApps)
			r.Post("/", h.createApp)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.showApp)
				r.Post("/", h.createUser)
				r.Get("/login", h.login)
				r.Get("/{username}", h.showUser)
				r.Delete("/{username}", h.deleteUser)
				r.Put("/{username}/changePassword", h.changePassword)
				r.Put("/{username}/changeAlias", h.changeAlias)
				r.Put("/{username}/changeUsername", h.changeUsername)
			})
		})

		if opts.LegacyRoutes {
			h.mountLegacy(r)
		}
	})

	return r
}

// pathParam returns the decoded segment. chi matches on RawPath when the
// request carries one, so only then is the value still escaped.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (h *Handler) listApps(w http.ResponseWriter, r *http.Request) {
	apps, err := h.registry.ListApps(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	if apps == nil {
		apps = []*domain.App{}
	}
	commonhttp.WriteJSON(w, http.StatusOK, apps)
}

func (h *Handler) createApp(w http.ResponseWriter, r *http.Request) {
	app, err := h.registry.CreateApp(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, createAppResponse{ID: app.ID()})
}

func (h *Handler) showApp(w http.ResponseWriter, r *http.Request) {
	app, err := h.registry.GetApp(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	params, err := commonhttp.BodyParams(r)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	req := newCreateUserRequest(params)
	if err := commonhttp.Validate(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	if err := checkUsername(*req.Username); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	err = h.registry.CreateUser(r.Context(), service.CreateUserInput{
		AppID:    pathParam(r, "id"),
		Alias:    *req.Alias,
		Username: *req.Username,
		Password: *req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, "")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	req := newLoginRequest(commonhttp.QueryParams(r))
	if err := commonhttp.Validate(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	ok, err := h.registry.Login(r.Context(), service.LoginInput{
		AppID:    pathParam(r, "id"),
		Username: *req.Username,
		Password: *req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, ok)
}

func (h *Handler) showUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.registry.GetUser(r.Context(), pathParam(r, "id"), pathParam(r, "username"))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.DeleteUser(r.Context(), pathParam(r, "id"), pathParam(r, "username")); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteEmpty(w, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	params, err := commonhttp.BodyParams(r)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	req := changePasswordRequest{NewPassword: params.Lookup("newPassword")}
	h.applyChange(w, r, req, req.NewPassword, h.registry.ChangePassword)
}

func (h *Handler) changeAlias(w http.ResponseWriter, r *http.Request) {
	params, err := commonhttp.BodyParams(r)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	req := changeAliasRequest{NewAlias: params.Lookup("newAlias")}
	h.applyChange(w, r, req, req.NewAlias, h.registry.ChangeAlias)
}

func (h *Handler) changeUsername(w http.ResponseWriter, r *http.Request) {
	params, err := commonhttp.BodyParams(r)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	req := changeUsernameRequest{NewUsername: params.Lookup("newUsername")}
	if req.NewUsername != nil {
		if err := checkUsername(*req.NewUsername); err != nil {
			h.errors.HandleError(w, r, err)
			return
		}
	}
	h.applyChange(w, r, req, req.NewUsername, h.registry.ChangeUsername)
}

type changeFunc func(ctx context.Context, appID, username, value string) error

// applyChange validates req and hands value to change. It answers with an
// empty JSON string, which is what the /apps surface returns for updates.
func (h *Handler) applyChange(w http.ResponseWriter, r *http.Request, req any, value *string, change changeFunc) {
	if err := commonhttp.Validate(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	if err := change(r.Context(), pathParam(r, "id"), pathParam(r, "username"), *value); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, "")
}
