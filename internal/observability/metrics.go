// Package observability bundles metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// TweetsCreated counts tweets successfully persisted.
	TweetsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_tweets_created_total",
		Help: "Total number of tweets created",
	})

	// LikesTotal counts like increments applied.
	LikesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_likes_total",
		Help: "Total number of like increments applied",
	})

	// Registrations counts completed account registrations.
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_registrations_total",
		Help: "Total number of accounts registered",
	})

	// Logins counts authentication attempts by result.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_logins_total",
		Help: "Total number of login attempts by result",
	}, []string{"result"})
)
