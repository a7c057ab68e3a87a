package prompts

import (
	"context"

	"github.com/google/uuid"
)

// Source resolves the instruction text and response spec for a stage.
type Source interface {
	Instructions(ctx context.Context, stage Stage) (string, error)
	Spec(ctx context.Context, stage Stage) (string, error)
}

// System is the prompt override domain.
type System interface {
	Source
	Handler() *Handler

	List(ctx context.Context, filters Filters) ([]Prompt, error)
	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error)
}

type defaults struct{}

// Defaults is a Source that always returns the built-in text.
func Defaults() Source {
	return defaults{}
}

func (defaults) Instructions(_ context.Context, stage Stage) (string, error) {
	return Instructions(stage)
}

func (defaults) Spec(_ context.Context, stage Stage) (string, error) {
	return Spec(stage)
}
