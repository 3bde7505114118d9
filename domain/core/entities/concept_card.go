package entities

import (
	"editor-backend/domain/core/valueobjects"
)

// ConceptCard is the explanation side of a skill
type ConceptCard struct {
	explanation        valueobjects.SubtitledHTML
	workedExamples     []WorkedExample
	recordedVoiceovers valueobjects.VoiceoversMapping
}

// RecordedVoiceoversDict wraps the voiceovers mapping on the wire
type RecordedVoiceoversDict struct {
	VoiceoversMapping valueobjects.VoiceoversMapping `json:"voiceovers_mapping"`
}

// ConceptCardDict is the backend shape of a concept card (skill_contents)
type ConceptCardDict struct {
	Explanation        valueobjects.SubtitledHTML `json:"explanation"`
	WorkedExamples     []WorkedExample            `json:"worked_examples"`
	RecordedVoiceovers RecordedVoiceoversDict     `json:"recorded_voiceovers"`
}

// NewConceptCard creates a concept card
func NewConceptCard(explanation valueobjects.SubtitledHTML, workedExamples []WorkedExample, voiceovers valueobjects.VoiceoversMapping) *ConceptCard {
	if voiceovers == nil {
		voiceovers = valueobjects.VoiceoversMapping{}
	}
	return &ConceptCard{
		explanation:        explanation,
		workedExamples:     CloneWorkedExamples(workedExamples),
		recordedVoiceovers: voiceovers.Clone(),
	}
}

// ConceptCardFromDict rebuilds a concept card from its backend dict
func ConceptCardFromDict(d ConceptCardDict) *ConceptCard {
	return NewConceptCard(d.Explanation, d.WorkedExamples, d.RecordedVoiceovers.VoiceoversMapping)
}

// ToDict converts the concept card to its backend dict
func (c *ConceptCard) ToDict() ConceptCardDict {
	return ConceptCardDict{
		Explanation:    c.explanation,
		WorkedExamples: CloneWorkedExamples(c.workedExamples),
		RecordedVoiceovers: RecordedVoiceoversDict{
			VoiceoversMapping: c.recordedVoiceovers.Clone(),
		},
	}
}

// Explanation returns the main explanation
func (c *ConceptCard) Explanation() valueobjects.SubtitledHTML {
	return c.explanation
}

// SetExplanation replaces the main explanation
func (c *ConceptCard) SetExplanation(explanation valueobjects.SubtitledHTML) {
	c.explanation = explanation
}

// WorkedExamples returns a copy of the worked examples
func (c *ConceptCard) WorkedExamples() []WorkedExample {
	return CloneWorkedExamples(c.workedExamples)
}

// SetWorkedExamples replaces the worked examples with a copy
func (c *ConceptCard) SetWorkedExamples(examples []WorkedExample) {
	c.workedExamples = CloneWorkedExamples(examples)
}

// RecordedVoiceovers returns a copy of the voiceovers mapping
func (c *ConceptCard) RecordedVoiceovers() valueobjects.VoiceoversMapping {
	return c.recordedVoiceovers.Clone()
}

// Clone returns a deep copy
func (c *ConceptCard) Clone() *ConceptCard {
	if c == nil {
		return nil
	}
	return &ConceptCard{
		explanation:        c.explanation,
		workedExamples:     CloneWorkedExamples(c.workedExamples),
		recordedVoiceovers: c.recordedVoiceovers.Clone(),
	}
}
