// Package prompts manages the instruction text sent with each inference
// call. Built-in defaults can be replaced per stage by a stored override; at
// most one override per stage is active at a time.
package prompts

import (
	"time"

	"github.com/google/uuid"
)

// Prompt is a named instruction override for one stage.
type Prompt struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Stage        Stage     `json:"stage"`
	Instructions string    `json:"instructions"`
	Description  *string   `json:"description"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateCommand struct {
	Name         string  `json:"name"`
	Stage        Stage   `json:"stage"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

type UpdateCommand struct {
	Name         string  `json:"name"`
	Stage        Stage   `json:"stage"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

func (c CreateCommand) validate() error {
	if c.Name == "" || c.Instructions == "" {
		return ErrEmptyPrompt
	}
	_, err := ParseStage(string(c.Stage))
	return err
}

func (c UpdateCommand) validate() error {
	return CreateCommand(c).validate()
}
