package prompts

import (
	"encoding/json"
	"slices"
)

// Stage is a pipeline step whose instructions can be overridden.
type Stage string

const (
	StageClassify Stage = "classify"
	StageExtract  Stage = "extract"
)

var stages = []Stage{
	StageClassify,
	StageExtract,
}

func Stages() []Stage {
	return slices.Clone(stages)
}

// UnmarshalJSON rejects unknown stage values.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseStage(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStage returns ErrInvalidStage for unknown values.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
