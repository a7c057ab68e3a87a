package api

import (
	"github.com/callil/tax-ui/internal/config"
	"github.com/callil/tax-ui/internal/inference"
	"github.com/callil/tax-ui/internal/infrastructure"
	"github.com/callil/tax-ui/internal/prompts"
	"github.com/callil/tax-ui/internal/workflow"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Classify config.ClassifyConfig
	Models   inference.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Inference: infra.Inference,
		},
		Classify: cfg.Classify,
		Models:   cfg.Inference,
	}
}

// Pipeline returns a function building a workflow runtime per request. A
// request key is applied to a copy of the client; the shared client is
// never modified.
func (rt *Runtime) Pipeline(src prompts.Source) func(apiKey string) (*workflow.Runtime, error) {
	return func(apiKey string) (*workflow.Runtime, error) {
		client := rt.Inference
		if apiKey != "" {
			client = client.WithKey(apiKey)
		}
		if !client.HasKey() {
			return nil, inference.ErrNoAPIKey
		}

		return &workflow.Runtime{
			Inference:        client,
			Prompts:          src,
			Logger:           rt.Logger.With("system", "workflow"),
			ClassifyModel:    rt.Models.ClassifyModel,
			ExtractModel:     rt.Models.ExtractModel,
			ExtractMaxTokens: rt.Models.ExtractMaxTokens,
			ChunkSize:        rt.Classify.ChunkSize,
			SkipThreshold:    rt.Classify.SkipThreshold,
			ChunkTimeout:     rt.Classify.ChunkTimeoutDuration(),
			MaxConcurrency:   rt.Classify.MaxConcurrency,
		}, nil
	}
}
