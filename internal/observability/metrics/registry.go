package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registry_apps_created_total",
			Help: "Total number of apps created",
		},
	)

	UsersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registry_users_registered_total",
			Help: "Total number of users registered across apps",
		},
	)

	UsersDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registry_users_deleted_total",
			Help: "Total number of users unregistered across apps",
		},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_login_attempts_total",
			Help: "Total number of login checks by result",
		},
		[]string{"result"},
	)

	UserUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_user_updates_total",
			Help: "Total number of user field updates by field",
		},
		[]string{"field"},
	)
)
