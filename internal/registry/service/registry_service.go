package service

import (
	"context"

	commoncrypto "github.com/AlibekovAA/app-registry/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/app-registry/internal/common/errors"
	"github.com/AlibekovAA/app-registry/internal/common/logger"
	"github.com/AlibekovAA/app-registry/internal/common/resilience"
	"github.com/AlibekovAA/app-registry/internal/registry/domain"
	"github.com/AlibekovAA/app-registry/internal/registry/repository"
)

type Config struct {
	UniqueAlias bool
}

// RegistryService runs one aggregate operation per call: load the app,
// apply the change, save it.
type RegistryService struct {
	repo        repository.Repository
	idGenerator commoncrypto.IdentityGenerator
	breaker     *resilience.CircuitBreaker
	policy      domain.Policy
	log         *logger.Logger
}

func NewRegistryService(
	repo repository.Repository,
	idGenerator commoncrypto.IdentityGenerator,
	breaker *resilience.CircuitBreaker,
	cfg Config,
	log *logger.Logger,
) *RegistryService {
	return &RegistryService{
		repo:        repo,
		idGenerator: idGenerator,
		breaker:     breaker,
		policy:      domain.Policy{UniqueAlias: cfg.UniqueAlias},
		log:         log,
	}
}

type CreateUserInput struct {
	AppID    string
	Alias    string
	Username string
	Password string
}

type LoginInput struct {
	AppID    string
	Username string
	Password string
}

func (s *RegistryService) call(ctx context.Context, fn func(context.Context) error) error {
	if s.breaker == nil {
		return fn(ctx)
	}
	return handleCircuitBreakerError(s.breaker.Call(ctx, fn))
}

func (s *RegistryService) load(ctx context.Context, appID string) (*domain.App, error) {
	var app *domain.App
	err := s.call(ctx, func(ctx context.Context) error {
		var err error
		app, err = s.repo.Get(ctx, appID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return app.WithPolicy(s.policy), nil
}

func (s *RegistryService) save(ctx context.Context, app *domain.App) error {
	return s.call(ctx, func(ctx context.Context) error {
		return s.repo.Save(ctx, app)
	})
}

// mutate loads the app, applies fn and saves the result. Nothing is saved
// when fn fails.
func (s *RegistryService) mutate(ctx context.Context, appID string, fn func(*domain.App) error) (*domain.App, error) {
	app, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := fn(app); err != nil {
		return nil, err
	}
	if err := s.save(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *RegistryService) ListApps(ctx context.Context) ([]*domain.App, error) {
	var apps []*domain.App
	err := s.call(ctx, func(ctx context.Context) error {
		var err error
		apps, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "list_apps_failed"}).Errorf("list apps failed: %v", err)
		return nil, err
	}
	for _, app := range apps {
		app.WithPolicy(s.policy)
	}
	return apps, nil
}

func (s *RegistryService) CreateApp(ctx context.Context) (*domain.App, error) {
	id, err := s.idGenerator.NextIdentity()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "create_app_id_generation_failed",
		}).Errorf("create app failed: %v", err)
		return nil, ErrIdentityGeneration.WithCause(err)
	}

	app := domain.Create(id).WithPolicy(s.policy)
	if err := s.save(ctx, app); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"app_id": id,
			"action": "create_app_failed",
		}).Errorf("create app failed: %v", err)
		return nil, err
	}

	incrementAppsCreated()
	s.log.WithFields(ctx, logger.Fields{
		"app_id": id,
		"action": "create_app_success",
	}).Info("app created")
	return app, nil
}

func (s *RegistryService) GetApp(ctx context.Context, appID string) (*domain.App, error) {
	return s.load(ctx, appID)
}

func (s *RegistryService) GetUser(ctx context.Context, appID, username string) (domain.User, error) {
	app, err := s.load(ctx, appID)
	if err != nil {
		return domain.User{}, err
	}
	return app.FindUserByUsername(username)
}

func (s *RegistryService) CreateUser(ctx context.Context, input CreateUserInput) error {
	fields := logger.Fields{
		"app_id":   input.AppID,
		"username": input.Username,
	}

	s.log.WithFields(ctx, withAction(fields, "create_user_attempt")).Info("create user attempt")

	_, err := s.mutate(ctx, input.AppID, func(app *domain.App) error {
		return app.CreateUser(input.Alias, input.Username, input.Password)
	})
	if err != nil {
		s.logFailure(ctx, fields, "create_user", err)
		return err
	}

	incrementUsersRegistered()
	s.log.WithFields(ctx, withAction(fields, "create_user_success")).Info("user created")
	return nil
}

// Login checks credentials without saving anything. Unknown users yield
// false rather than an error.
func (s *RegistryService) Login(ctx context.Context, input LoginInput) (bool, error) {
	fields := logger.Fields{
		"app_id":   input.AppID,
		"username": input.Username,
	}

	app, err := s.load(ctx, input.AppID)
	if err != nil {
		s.logFailure(ctx, fields, "login", err)
		return false, err
	}

	ok := app.Login(input.Username, input.Password)
	recordLogin(ok)

	action := "login_success"
	if !ok {
		action = "login_rejected"
	}
	s.log.WithFields(ctx, withAction(fields, action)).Info("login checked")
	return ok, nil
}

func (s *RegistryService) ChangePassword(ctx context.Context, appID, username, newPassword string) error {
	return s.updateUser(ctx, appID, username, "password", func(app *domain.App) error {
		_, err := app.UpdateUserPassword(username, newPassword)
		return err
	})
}

func (s *RegistryService) ChangeAlias(ctx context.Context, appID, username, newAlias string) error {
	return s.updateUser(ctx, appID, username, "alias", func(app *domain.App) error {
		_, err := app.UpdateUserAlias(username, newAlias)
		return err
	})
}

func (s *RegistryService) ChangeUsername(ctx context.Context, appID, username, newUsername string) error {
	return s.updateUser(ctx, appID, username, "username", func(app *domain.App) error {
		_, err := app.UpdateUserUsername(username, newUsername)
		return err
	})
}

func (s *RegistryService) updateUser(ctx context.Context, appID, username, field string, fn func(*domain.App) error) error {
	fields := logger.Fields{
		"app_id":   appID,
		"username": username,
		"field":    field,
	}

	if _, err := s.mutate(ctx, appID, fn); err != nil {
		s.logFailure(ctx, fields, "update_user", err)
		return err
	}

	incrementUserUpdates(field)
	s.log.WithFields(ctx, withAction(fields, "update_user_success")).Info("user updated")
	return nil
}

func (s *RegistryService) DeleteUser(ctx context.Context, appID, username string) error {
	fields := logger.Fields{
		"app_id":   appID,
		"username": username,
	}

	_, err := s.mutate(ctx, appID, func(app *domain.App) error {
		_, err := app.RemoveUser(username)
		return err
	})
	if err != nil {
		s.logFailure(ctx, fields, "delete_user", err)
		return err
	}

	incrementUsersDeleted()
	s.log.WithFields(ctx, withAction(fields, "delete_user_success")).Info("user deleted")
	return nil
}

// logFailure logs business rejections at warning level and everything else
// as an error.
func (s *RegistryService) logFailure(ctx context.Context, fields logger.Fields, op string, err error) {
	if de, ok := commonerrors.AsDomainError(err); ok && de.HTTPStatus() < 500 {
		s.log.WithFields(ctx, withAction(fields, op+"_rejected")).Warnf("%s rejected: %s", op, de.Code())
		return
	}
	s.log.WithFields(ctx, withAction(fields, op+"_failed")).Errorf("%s failed: %v", op, err)
}

func withAction(fields logger.Fields, action string) logger.Fields {
	out := make(logger.Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["action"] = action
	return out
}
