package api

import (
	"github.com/callil/tax-ui/internal/prompts"
	"github.com/callil/tax-ui/internal/returns"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts prompts.System
	Returns returns.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	returnsSystem := returns.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Pipeline(promptsSystem),
		runtime.Logger,
	)

	return &Domain{
		Prompts: promptsSystem,
		Returns: returnsSystem,
	}
}
