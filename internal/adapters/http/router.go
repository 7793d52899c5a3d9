// Package http
package http

import (
	"net/http"

	"usermgmt/internal/adapters/http/middleware"
	"usermgmt/internal/adapters/http/response"
	"usermgmt/internal/config"
	"usermgmt/internal/logger"
)

const (
	APIPrefix  = "/api/v1"
	APIVersion = "1.0.0"
)

type RouterDeps struct {
	User *UserHandler

	Writer response.ResponseWriter
	Log    logger.Logger
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.RequestID())
	globalMw.Use(middleware.Logger(deps.Log))
	globalMw.Use(middleware.Recover(deps.Log, deps.Writer))
	globalMw.Use(middleware.CORS(cfg))

	// ROOT
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		deps.Writer.Write(w, http.StatusOK, map[string]string{
			"message": "Welcome to User Management API",
			"version": APIVersion,
			"api":     APIPrefix,
		})
	})

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		deps.Writer.Write(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// USERS
	mux.HandleFunc("GET "+APIPrefix+"/users", deps.User.Index)
	mux.HandleFunc("POST "+APIPrefix+"/users", deps.User.Store)
	mux.HandleFunc("GET "+APIPrefix+"/users/{id}", deps.User.Show)
	mux.HandleFunc("PUT "+APIPrefix+"/users/{id}", deps.User.Update)
	mux.HandleFunc("DELETE "+APIPrefix+"/users/{id}", deps.User.Destroy)

	return globalMw.Apply(mux)
}
