// Package api handles routes and their associated handlers
package api

import (
	"net/http"
)

func SetupMux(cfg *APIConfig, static http.Handler) http.Handler {
	mux := http.NewServeMux()

	// middleware
	mdAuth := cfg.middlewareAuthenticate

	// REGISTER API HANDLERS
	// ======================

	// Admin & State
	mux.HandleFunc("GET /v1/healthz", cfg.handleReadiness)
	mux.HandleFunc("POST /v1/admin/reset", cfg.handleReset)
	// Auth
	mux.HandleFunc("POST /v1/auth/register", cfg.handleRegister)
	mux.HandleFunc("POST /v1/auth/login", cfg.handleLogin)
	mux.HandleFunc("GET /v1/auth/me", mdAuth(cfg.handleMe))
	mux.HandleFunc("POST /v1/auth/logout", mdAuth(cfg.handleLogout))
	// Tasks
	mux.HandleFunc("GET /v1/tasks", mdAuth(cfg.handleListTasks))
	mux.HandleFunc("POST /v1/tasks", mdAuth(cfg.handleCreateTask))
	mux.HandleFunc("POST /v1/tasks/rollover", mdAuth(cfg.handleRollover))
	mux.HandleFunc("GET /v1/tasks/{task_id}", mdAuth(cfg.handleGetTask))
	mux.HandleFunc("PUT /v1/tasks/{task_id}", mdAuth(cfg.handleUpdateTask))
	mux.HandleFunc("DELETE /v1/tasks/{task_id}", mdAuth(cfg.handleDeleteTask))
	// Client UI
	if static != nil {
		mux.Handle("/", static)
	}

	return cfg.middlewareLogRequest(mux)
}
