package valueobjects

import (
	pkgerrors "editor-backend/pkg/errors"
)

// Difficulty is a rubric difficulty level
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties returns the levels in ascending order
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty validates a difficulty string
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.IsValid() {
		return "", pkgerrors.NewValidationError("invalid difficulty value passed: %q", s)
	}
	return d, nil
}

// IsValid reports whether d is one of the known levels
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// String returns the string representation
func (d Difficulty) String() string {
	return string(d)
}
