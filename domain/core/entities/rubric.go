package entities

import (
	"editor-backend/domain/core/valueobjects"
)

// Rubric describes what a question of one difficulty should test
type Rubric struct {
	difficulty   valueobjects.Difficulty
	explanations []string
}

// RubricDict is the backend shape of a rubric
type RubricDict struct {
	Difficulty   string   `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Explanations []string `json:"explanations"`
}

// NewRubric creates a rubric
func NewRubric(difficulty valueobjects.Difficulty, explanations []string) (*Rubric, error) {
	if _, err := valueobjects.ParseDifficulty(string(difficulty)); err != nil {
		return nil, err
	}
	return &Rubric{difficulty: difficulty, explanations: cloneStrings(explanations)}, nil
}

// RubricFromDict rebuilds a rubric from its backend dict
func RubricFromDict(d RubricDict) (*Rubric, error) {
	return NewRubric(valueobjects.Difficulty(d.Difficulty), d.Explanations)
}

// ToDict converts the rubric to its backend dict
func (r *Rubric) ToDict() RubricDict {
	return RubricDict{Difficulty: string(r.difficulty), Explanations: cloneStrings(r.explanations)}
}

// Difficulty returns the difficulty level
func (r *Rubric) Difficulty() valueobjects.Difficulty {
	return r.difficulty
}

// Explanations returns a copy of the explanations
func (r *Rubric) Explanations() []string {
	return cloneStrings(r.explanations)
}

// SetExplanations replaces the explanations with a copy
func (r *Rubric) SetExplanations(explanations []string) {
	r.explanations = cloneStrings(explanations)
}

// Clone returns a deep copy
func (r *Rubric) Clone() *Rubric {
	if r == nil {
		return nil
	}
	return &Rubric{difficulty: r.difficulty, explanations: cloneStrings(r.explanations)}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
