package service

import (
	"github.com/chatter-app/chatter/backend/internal/observability/metrics"
)

func incrementUsersRegistered() {
	metrics.UsersRegistered.Inc()
}

func incrementLoginsSucceeded() {
	metrics.LoginsSucceeded.Inc()
}

func incrementLoginsFailed() {
	metrics.LoginsFailed.Inc()
}

func incrementSessionsIssued() {
	metrics.SessionsIssued.Inc()
}
