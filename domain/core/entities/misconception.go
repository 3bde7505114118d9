package entities

import (
	"strings"

	pkgerrors "editor-backend/pkg/errors"
)

// Misconception is a common learner mistake attached to a skill
type Misconception struct {
	id              string
	name            string
	notes           string
	feedback        string
	mustBeAddressed bool
}

// MisconceptionDict is the backend shape of a misconception
type MisconceptionDict struct {
	ID              string `json:"id" validate:"required"`
	Name            string `json:"name"`
	Notes           string `json:"notes"`
	Feedback        string `json:"feedback"`
	MustBeAddressed bool   `json:"must_be_addressed"`
}

// NewMisconception creates a misconception
func NewMisconception(id, name, notes, feedback string, mustBeAddressed bool) (*Misconception, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.NewValidationError("misconception id cannot be empty")
	}
	return &Misconception{
		id:              id,
		name:            name,
		notes:           notes,
		feedback:        feedback,
		mustBeAddressed: mustBeAddressed,
	}, nil
}

// MisconceptionFromDict rebuilds a misconception from its backend dict
func MisconceptionFromDict(d MisconceptionDict) (*Misconception, error) {
	return NewMisconception(d.ID, d.Name, d.Notes, d.Feedback, d.MustBeAddressed)
}

// ToDict converts the misconception to its backend dict
func (m *Misconception) ToDict() MisconceptionDict {
	return MisconceptionDict{
		ID:              m.id,
		Name:            m.name,
		Notes:           m.notes,
		Feedback:        m.feedback,
		MustBeAddressed: m.mustBeAddressed,
	}
}

func (m *Misconception) ID() string            { return m.id }
func (m *Misconception) Name() string          { return m.name }
func (m *Misconception) Notes() string         { return m.notes }
func (m *Misconception) Feedback() string      { return m.feedback }
func (m *Misconception) MustBeAddressed() bool { return m.mustBeAddressed }

func (m *Misconception) SetName(name string)         { m.name = name }
func (m *Misconception) SetNotes(notes string)       { m.notes = notes }
func (m *Misconception) SetFeedback(feedback string) { m.feedback = feedback }
func (m *Misconception) SetMustBeAddressed(v bool)   { m.mustBeAddressed = v }

// Clone returns a copy
func (m *Misconception) Clone() *Misconception {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
