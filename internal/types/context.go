package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Level is the candidate's experience level. It is always supplied by the
// caller, never inferred by the engine.
type Level string

// Experience levels.
const (
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// Levels lists every supported experience level.
var Levels = []Level{LevelJunior, LevelMid, LevelSenior}

// ScoringContext carries the target role, level, and optional job description
// for one scoring request.
type ScoringContext struct {
	Role           string `json:"role" validate:"required"`
	Level          Level  `json:"level" validate:"required,oneof=junior mid senior"`
	JobDescription string `json:"job_description,omitempty"`
}

var contextValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the context is complete. An unknown level is a fatal
// boundary error: letting it through would silently select no threshold
// tier and mis-score the whole request.
func (c *ScoringContext) Validate() error {
	if c == nil {
		return fmt.Errorf("scoring context is nil")
	}
	if err := contextValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid scoring context: %w", err)
	}
	return nil
}
