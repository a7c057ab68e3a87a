package main

import (
	"net/http"

	"github.com/callil/tax-ui/internal/api"
	"github.com/callil/tax-ui/internal/config"
	"github.com/callil/tax-ui/internal/infrastructure"
	"github.com/callil/tax-ui/pkg/handlers"
	"github.com/callil/tax-ui/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

type readiness struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks"`
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		checks := infra.Lifecycle.Status()
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, readiness{Status: "not ready", Checks: checks})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, readiness{Status: "ready", Checks: checks})
	})

	return router
}
