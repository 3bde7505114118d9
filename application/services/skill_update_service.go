package services

import (
	"go.uber.org/zap"

	"editor-backend/application/undoredo"
	"editor-backend/domain/changes"
	"editor-backend/domain/core/aggregates"
	"editor-backend/domain/core/entities"
	"editor-backend/domain/core/valueobjects"
	"editor-backend/domain/operations"
	pkgerrors "editor-backend/pkg/errors"
)

// SkillUpdateService turns skill edits into change records and registers
// them, with their inverses, on the session's coordinator.
type SkillUpdateService struct {
	coordinator *undoredo.Coordinator[*aggregates.Skill]
	logger      *zap.Logger
}

// NewSkillUpdateService creates a new skill update service
func NewSkillUpdateService(
	coordinator *undoredo.Coordinator[*aggregates.Skill],
	logger *zap.Logger,
) *SkillUpdateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkillUpdateService{
		coordinator: coordinator,
		logger:      logger,
	}
}

// SetSkillDescription changes the description
func (s *SkillUpdateService) SetSkillDescription(skill *aggregates.Skill, description string) error {
	return s.applySkillPropertyChange(skill, changes.SkillPropertyDescription, description, skill.Description())
}

// SetSkillLanguageCode changes the language code
func (s *SkillUpdateService) SetSkillLanguageCode(skill *aggregates.Skill, languageCode string) error {
	return s.applySkillPropertyChange(skill, changes.SkillPropertyLanguageCode, languageCode, skill.LanguageCode())
}

// SetSupersedingSkillID marks the skill as superseded by another one
func (s *SkillUpdateService) SetSupersedingSkillID(skill *aggregates.Skill, skillID string) error {
	return s.applySkillPropertyChange(skill, changes.SkillPropertySupersedingSkillID, skillID, skill.SupersedingSkillID())
}

// SetAllQuestionsMerged records whether the skill's questions were merged
// into the superseding skill
func (s *SkillUpdateService) SetAllQuestionsMerged(skill *aggregates.Skill, merged bool) error {
	return s.applySkillPropertyChange(skill, changes.SkillPropertyAllQuestionsMerged, merged, skill.AllQuestionsMerged())
}

// SetConceptCardExplanation replaces the concept card explanation
func (s *SkillUpdateService) SetConceptCardExplanation(skill *aggregates.Skill, explanation valueobjects.SubtitledHTML) error {
	old := skill.ConceptCard().Explanation()
	return s.applySkillContentsPropertyChange(skill, changes.SkillContentsPropertyExplanation, explanation, old)
}

// AddWorkedExample appends a worked example to the concept card
func (s *SkillUpdateService) AddWorkedExample(skill *aggregates.Skill, example entities.WorkedExample) error {
	examples := append(skill.WorkedExamples(), example)
	return s.UpdateWorkedExamples(skill, examples)
}

// DeleteWorkedExample removes the worked example at index
func (s *SkillUpdateService) DeleteWorkedExample(skill *aggregates.Skill, index int) error {
	current := skill.WorkedExamples()
	if err := checkWorkedExampleIndex(index, len(current)); err != nil {
		return err
	}
	examples := make([]entities.WorkedExample, 0, len(current)-1)
	examples = append(examples, current[:index]...)
	examples = append(examples, current[index+1:]...)
	return s.UpdateWorkedExamples(skill, examples)
}

// UpdateWorkedExample rewrites the HTML of the worked example at index,
// keeping its content ids
func (s *SkillUpdateService) UpdateWorkedExample(skill *aggregates.Skill, index int, questionHTML, explanationHTML string) error {
	examples := skill.WorkedExamples()
	if err := checkWorkedExampleIndex(index, len(examples)); err != nil {
		return err
	}
	examples[index] = examples[index].WithHTML(questionHTML, explanationHTML)
	return s.UpdateWorkedExamples(skill, examples)
}

// UpdateWorkedExamples replaces the whole worked example list
func (s *SkillUpdateService) UpdateWorkedExamples(skill *aggregates.Skill, examples []entities.WorkedExample) error {
	newExamples := entities.CloneWorkedExamples(examples)
	if newExamples == nil {
		newExamples = []entities.WorkedExample{}
	}
	return s.applySkillContentsPropertyChange(skill,
		changes.SkillContentsPropertyWorkedExamples, newExamples, skill.WorkedExamples())
}

// AddMisconception appends a misconception. Undo also restores the next
// misconception id the append may have moved.
func (s *SkillUpdateService) AddMisconception(skill *aggregates.Skill, misconception *entities.Misconception) error {
	if misconception == nil {
		return pkgerrors.NewValidationError("misconception cannot be nil")
	}
	nextID := skill.NextMisconceptionID()
	return s.applyChange(skill,
		changes.AddSkillMisconception{NewMisconceptionDict: misconception.ToDict()},
		operations.InsertMisconception{Index: operations.AppendIndex, Misconception: misconception.Clone()},
		operations.DeleteMisconception{ID: misconception.ID(), RestoreNextID: &nextID},
	)
}

// DeleteMisconception removes the misconception with id. Undo puts the same
// misconception back where it was.
func (s *SkillUpdateService) DeleteMisconception(skill *aggregates.Skill, id string) error {
	index, err := skill.MisconceptionIndex(id)
	if err != nil {
		return err
	}
	old, err := skill.FindMisconceptionByID(id)
	if err != nil {
		return err
	}
	return s.applyChange(skill,
		changes.DeleteSkillMisconception{MisconceptionID: id},
		operations.DeleteMisconception{ID: id},
		operations.InsertMisconception{Index: index, Misconception: old},
	)
}

// UpdateMisconceptionName renames a misconception
func (s *SkillUpdateService) UpdateMisconceptionName(skill *aggregates.Skill, id, oldName, newName string) error {
	m, err := skill.FindMisconceptionByID(id)
	if err != nil {
		return err
	}
	return s.applyMisconceptionPropertyChange(skill, id, changes.MisconceptionPropertyName, newName, oldName, m.Name())
}

// UpdateMisconceptionNotes changes a misconception's notes
func (s *SkillUpdateService) UpdateMisconceptionNotes(skill *aggregates.Skill, id, oldNotes, newNotes string) error {
	m, err := skill.FindMisconceptionByID(id)
	if err != nil {
		return err
	}
	return s.applyMisconceptionPropertyChange(skill, id, changes.MisconceptionPropertyNotes, newNotes, oldNotes, m.Notes())
}

// UpdateMisconceptionFeedback changes a misconception's feedback
func (s *SkillUpdateService) UpdateMisconceptionFeedback(skill *aggregates.Skill, id, oldFeedback, newFeedback string) error {
	m, err := skill.FindMisconceptionByID(id)
	if err != nil {
		return err
	}
	return s.applyMisconceptionPropertyChange(skill, id, changes.MisconceptionPropertyFeedback, newFeedback, oldFeedback, m.Feedback())
}

// UpdateMisconceptionMustBeAddressed changes whether a misconception must be
// addressed by every question
func (s *SkillUpdateService) UpdateMisconceptionMustBeAddressed(skill *aggregates.Skill, id string, oldValue, newValue bool) error {
	m, err := skill.FindMisconceptionByID(id)
	if err != nil {
		return err
	}
	return s.applyMisconceptionPropertyChange(skill, id, changes.MisconceptionPropertyMustBeAddressed, newValue, oldValue, m.MustBeAddressed())
}

// AddPrerequisiteSkill appends a prerequisite skill id
func (s *SkillUpdateService) AddPrerequisiteSkill(skill *aggregates.Skill, skillID string) error {
	return s.applyChange(skill,
		changes.AddPrerequisiteSkill{SkillID: skillID},
		operations.InsertPrerequisiteSkill{Index: operations.AppendIndex, SkillID: skillID},
		operations.DeletePrerequisiteSkill{SkillID: skillID},
	)
}

// DeletePrerequisiteSkill removes a prerequisite skill id. Undo puts it back
// where it was.
func (s *SkillUpdateService) DeletePrerequisiteSkill(skill *aggregates.Skill, skillID string) error {
	index, err := skill.PrerequisiteSkillIndex(skillID)
	if err != nil {
		return err
	}
	return s.applyChange(skill,
		changes.DeletePrerequisiteSkill{SkillID: skillID},
		operations.DeletePrerequisiteSkill{SkillID: skillID},
		operations.InsertPrerequisiteSkill{Index: index, SkillID: skillID},
	)
}

// UpdateRubricForDifficulty replaces the explanations of the rubric for
// difficulty. Undo restores the old explanations, or drops the rubric if
// this change created it.
func (s *SkillUpdateService) UpdateRubricForDifficulty(skill *aggregates.Skill, difficulty string, explanations []string) error {
	d, err := valueobjects.ParseDifficulty(difficulty)
	if err != nil {
		return err
	}
	newExplanations := cloneStrings(explanations)
	if newExplanations == nil {
		newExplanations = []string{}
	}

	var inverse operations.SkillOperation = operations.RemoveRubric{Difficulty: d}
	if old, ok := skill.RubricForDifficulty(d); ok {
		inverse = operations.SetRubricExplanations{Difficulty: d, Explanations: old.Explanations()}
	}

	return s.applyChange(skill,
		changes.UpdateRubrics{Difficulty: d.String(), Explanations: cloneStrings(newExplanations)},
		operations.SetRubricExplanations{Difficulty: d, Explanations: newExplanations},
		inverse,
	)
}

func (s *SkillUpdateService) applySkillPropertyChange(
	skill *aggregates.Skill,
	property changes.SkillProperty,
	newValue, oldValue any,
) error {
	return s.applyChange(skill,
		changes.UpdateSkillProperty{PropertyName: property, NewValue: newValue, OldValue: oldValue},
		operations.SetSkillProperty{Property: property, Value: newValue},
		operations.SetSkillProperty{Property: property, Value: oldValue},
	)
}

func (s *SkillUpdateService) applySkillContentsPropertyChange(
	skill *aggregates.Skill,
	property changes.SkillContentsProperty,
	newValue, oldValue any,
) error {
	return s.applyChange(skill,
		changes.UpdateSkillContentsProperty{
			PropertyName: property,
			NewValue:     changes.CloneValue(newValue),
			OldValue:     changes.CloneValue(oldValue),
		},
		operations.SetSkillContentsProperty{Property: property, Value: newValue},
		operations.SetSkillContentsProperty{Property: property, Value: oldValue},
	)
}

// The record keeps the caller's old value; the inverse uses the value the
// skill actually held.
func (s *SkillUpdateService) applyMisconceptionPropertyChange(
	skill *aggregates.Skill,
	id string,
	property changes.MisconceptionProperty,
	newValue, recordedOld, currentValue any,
) error {
	return s.applyChange(skill,
		changes.UpdateSkillMisconceptionsProperty{
			PropertyName:    property,
			NewValue:        newValue,
			OldValue:        recordedOld,
			MisconceptionID: id,
		},
		operations.SetMisconceptionProperty{ID: id, Property: property, Value: newValue},
		operations.SetMisconceptionProperty{ID: id, Property: property, Value: currentValue},
	)
}

func (s *SkillUpdateService) applyChange(
	skill *aggregates.Skill,
	record changes.Record,
	forward, inverse operations.SkillOperation,
) error {
	change := undoredo.NewChange[*aggregates.Skill](record, forward, inverse)
	if err := s.coordinator.ApplyChange(change, skill); err != nil {
		s.logger.Warn("skill change rejected",
			zap.String("skill_id", skill.ID()),
			zap.String("cmd", record.Command().String()),
			zap.Error(err))
		return err
	}
	return nil
}

func checkWorkedExampleIndex(index, n int) error {
	if index < 0 || index >= n {
		return pkgerrors.NewValidationError("worked example index %d out of range [0, %d)", index, n)
	}
	return nil
}
