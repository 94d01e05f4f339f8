package controllers

import (
	"net/http"

	"github.com/jalvarez-dev/employee-gateway/api/responses"
	"github.com/jalvarez-dev/employee-gateway/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Employee-Gateway-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Employee-Gateway-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
