package service

import (
	"github.com/AlibekovAA/app-registry/internal/observability/metrics"
)

func incrementAppsCreated() {
	metrics.AppsCreatedTotal.Inc()
}

func incrementUsersRegistered() {
	metrics.UsersRegisteredTotal.Inc()
}

func incrementUsersDeleted() {
	metrics.UsersDeletedTotal.Inc()
}

func recordLogin(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
}

func incrementUserUpdates(field string) {
	metrics.UserUpdatesTotal.WithLabelValues(field).Inc()
}
