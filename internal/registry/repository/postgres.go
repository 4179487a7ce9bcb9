package repository

import (
	"context"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/app-registry/internal/common/db"
	"github.com/AlibekovAA/app-registry/internal/common/logger"
	"github.com/AlibekovAA/app-registry/internal/registry/domain"
)

type pgxPool interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// PgRepository keeps apps in "apps" and their users in "app_users", ordered
// by a position column. Username uniqueness per app is also enforced by a
// deferred unique constraint so that concurrent writers cannot both win.
type PgRepository struct {
	pool pgxPool
	log  *logger.Logger
}

func NewPgRepository(pool pgxPool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, log: log}
}

func (r *PgRepository) List(ctx context.Context) ([]*domain.App, error) {
	var apps []*domain.App
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func() error {
		var err error
		apps, err = r.list(ctx)
		return err
	})
	return apps, err
}

func (r *PgRepository) list(ctx context.Context) ([]*domain.App, error) {
	start := time.Now()

	rows, err := r.pool.Query(ctx, `SELECT id FROM apps ORDER BY created_at, id`)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list apps", start)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan app: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "list apps", start)
	}

	usersByApp, err := r.queryUsers(ctx,
		`SELECT id, app_id, alias, username, password FROM app_users ORDER BY app_id, position, id`)
	if err != nil {
		return nil, err
	}

	apps := make([]*domain.App, 0, len(ids))
	for _, id := range ids {
		apps = append(apps, domain.Restore(id, usersByApp[id]))
	}
	db.MeasureQueryDuration("list apps", start)
	return apps, nil
}

func (r *PgRepository) Get(ctx context.Context, id string) (*domain.App, error) {
	var app *domain.App
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func() error {
		var err error
		app, err = r.get(ctx, id)
		return err
	})
	return app, err
}

func (r *PgRepository) get(ctx context.Context, id string) (*domain.App, error) {
	start := time.Now()

	var appID string
	err := r.pool.QueryRow(ctx, `SELECT id FROM apps WHERE id = $1`, id).Scan(&appID)
	if err != nil {
		return nil, db.HandleQueryError(err, domain.ErrAppNotFound, "get app", start)
	}

	usersByApp, err := r.queryUsers(ctx,
		`SELECT id, app_id, alias, username, password FROM app_users WHERE app_id = $1 ORDER BY position, id`,
		appID)
	if err != nil {
		return nil, err
	}

	db.MeasureQueryDuration("get app", start)
	return domain.Restore(appID, usersByApp[appID]), nil
}

func (r *PgRepository) queryUsers(ctx context.Context, sql string, args ...interface{}) (map[string][]domain.User, error) {
	start := time.Now()

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list app users", start)
	}
	defer rows.Close()

	users := make(map[string][]domain.User)
	for rows.Next() {
		var id int64
		var appID, alias, username, password string
		if err := rows.Scan(&id, &appID, &alias, &username, &password); err != nil {
			return nil, fmt.Errorf("failed to scan app user: %w", err)
		}
		users[appID] = append(users[appID], domain.RestoreUser(id, appID, alias, username, password))
	}

	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "list app users", start)
	}
	db.MeasureQueryDuration("list app users", start)
	return users, nil
}

// Save replaces the stored user set of the app with the snapshot in a
// single transaction. Rows not in the snapshot are deleted, saved users are
// rewritten in place and unsaved users are inserted.
func (r *PgRepository) Save(ctx context.Context, app *domain.App) error {
	start := time.Now()
	users := app.Users()

	kept := make([]int64, 0, len(users))
	for _, u := range users {
		if id, ok := u.ID(); ok {
			kept = append(kept, id)
		}
	}

	var inserted []int64
	err := db.WithTx(ctx, r.pool, pgx.TxOptions{}, func(ctx context.Context, tx pgx.Tx) error {
		inserted = inserted[:0]

		if _, err := tx.Exec(ctx,
			`INSERT INTO apps (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`,
			app.ID(),
		); err != nil {
			return db.HandleExecError(err, "insert app", start)
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM app_users WHERE app_id = $1 AND NOT (id = ANY($2))`,
			app.ID(), kept,
		); err != nil {
			return db.HandleExecError(err, "delete app users", start)
		}

		for position, u := range users {
			id, ok := u.ID()
			if ok {
				tag, err := tx.Exec(ctx,
					`UPDATE app_users SET position = $1, alias = $2, username = $3, password = $4
					 WHERE id = $5 AND app_id = $6`,
					position, u.Alias(), u.Username(), u.Password(), id, app.ID(),
				)
				if err != nil {
					return db.HandleExecError(err, "update app user", start)
				}
				if tag.RowsAffected() == 0 {
					return ErrStaleSnapshot
				}
				continue
			}

			var newID int64
			if err := tx.QueryRow(ctx,
				`INSERT INTO app_users (app_id, position, alias, username, password)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				app.ID(), position, u.Alias(), u.Username(), u.Password(),
			).Scan(&newID); err != nil {
				return db.HandleExecError(err, "insert app user", start)
			}
			inserted = append(inserted, newID)
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrUsernameAlreadyExists.WithCause(err)
		}
		return err
	}

	db.MeasureQueryDuration("save app", start)

	next := 0
	return app.AssignUserIDs(func(domain.User) (int64, error) {
		if next >= len(inserted) {
			return 0, fmt.Errorf("missing id for inserted user %d", next)
		}
		id := inserted[next]
		next++
		return id, nil
	})
}
