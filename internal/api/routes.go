package api

import (
	"net/http"

	"github.com/callil/tax-ui/internal/config"
	"github.com/callil/tax-ui/pkg/handlers"
	"github.com/callil/tax-ui/pkg/routes"
)

// ConfigStatus reports whether the server can call the inference provider
// without a per-request key.
type ConfigStatus struct {
	HasKey bool `json:"hasKey"`
}

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	patterns := routes.Register(
		mux,
		configRoutes(runtime),
		domain.Prompts.Handler().Routes(),
		domain.Returns.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)

	runtime.Logger.Info("routes registered", "count", len(patterns))
}

func configRoutes(runtime *Runtime) routes.Group {
	return routes.Group{
		Prefix: "/config",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: func(w http.ResponseWriter, r *http.Request) {
				handlers.RespondJSON(w, http.StatusOK, ConfigStatus{HasKey: runtime.Inference.HasKey()})
			}},
		},
	}
}
