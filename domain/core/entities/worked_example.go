package entities

import (
	"encoding/json"

	"editor-backend/domain/core/valueobjects"
	"editor-backend/pkg/utils"
)

// WorkedExample is a question with a fully explained answer shown on a
// skill's concept card
type WorkedExample struct {
	question    valueobjects.SubtitledHTML
	explanation valueobjects.SubtitledHTML
}

type workedExampleDict struct {
	Question    valueobjects.SubtitledHTML `json:"question"`
	Explanation valueobjects.SubtitledHTML `json:"explanation"`
}

// NewWorkedExample creates a worked example
func NewWorkedExample(question, explanation valueobjects.SubtitledHTML) WorkedExample {
	return WorkedExample{question: question, explanation: explanation}
}

func (w WorkedExample) Question() valueobjects.SubtitledHTML    { return w.question }
func (w WorkedExample) Explanation() valueobjects.SubtitledHTML { return w.explanation }

// WithHTML returns a copy with both html bodies replaced, keeping content ids
func (w WorkedExample) WithHTML(questionHTML, explanationHTML string) WorkedExample {
	return WorkedExample{
		question:    w.question.WithHTML(questionHTML),
		explanation: w.explanation.WithHTML(explanationHTML),
	}
}

// MarshalJSON implements json.Marshaler
func (w WorkedExample) MarshalJSON() ([]byte, error) {
	return utils.MarshalJSON(workedExampleDict{Question: w.question, Explanation: w.explanation})
}

// UnmarshalJSON implements json.Unmarshaler
func (w *WorkedExample) UnmarshalJSON(data []byte) error {
	var d workedExampleDict
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	w.question = d.Question
	w.explanation = d.Explanation
	return nil
}

// CloneWorkedExamples copies a worked example list. WorkedExample is a pure
// value so a shallow slice copy is a deep copy.
func CloneWorkedExamples(in []WorkedExample) []WorkedExample {
	if in == nil {
		return nil
	}
	out := make([]WorkedExample, len(in))
	copy(out, in)
	return out
}
