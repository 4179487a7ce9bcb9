package repository

import (
	"context"
	"net/http"

	commonerrors "github.com/AlibekovAA/app-registry/internal/common/errors"
	"github.com/AlibekovAA/app-registry/internal/registry/domain"
)

// Repository loads and stores whole App aggregates.
type Repository interface {
	// List returns every app in creation order.
	List(ctx context.Context) ([]*domain.App, error)
	// Get fails with domain.ErrAppNotFound for an unknown id.
	Get(ctx context.Context, id string) (*domain.App, error)
	// Save stores the app and its users, then assigns ids to unsaved users.
	Save(ctx context.Context, app *domain.App) error
}

// ErrStaleSnapshot is returned when a saved user vanished between load and
// save, which means a concurrent request changed the same app.
var ErrStaleSnapshot = commonerrors.NewDomainError(
	"STALE_APP_SNAPSHOT",
	commonerrors.CategoryConflict,
	http.StatusConflict,
	"app was modified concurrently, retry the request",
)
