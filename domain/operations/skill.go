package operations

import (
	"editor-backend/domain/changes"
	"editor-backend/domain/core/aggregates"
	"editor-backend/domain/core/entities"
	"editor-backend/domain/core/valueobjects"
	pkgerrors "editor-backend/pkg/errors"
)

// SkillOperation is one mutation of a skill
type SkillOperation interface {
	Apply(s *aggregates.Skill) error
}

// SetSkillProperty sets one scalar skill property
type SetSkillProperty struct {
	Property changes.SkillProperty
	Value    any
}

// Apply implements SkillOperation
func (op SetSkillProperty) Apply(s *aggregates.Skill) error {
	name := string(op.Property)
	if op.Property == changes.SkillPropertyAllQuestionsMerged {
		v, err := valueAs[bool](name, op.Value)
		if err != nil {
			return err
		}
		s.SetAllQuestionsMerged(v)
		return nil
	}

	v, err := valueAs[string](name, op.Value)
	if err != nil {
		return err
	}
	switch op.Property {
	case changes.SkillPropertyDescription:
		s.SetDescription(v)
	case changes.SkillPropertyLanguageCode:
		s.SetLanguageCode(v)
	case changes.SkillPropertySupersedingSkillID:
		s.SetSupersedingSkillID(v)
	default:
		return pkgerrors.NewValidationError("unknown skill property %q", op.Property)
	}
	return nil
}

// SetSkillContentsProperty replaces part of the concept card
type SetSkillContentsProperty struct {
	Property changes.SkillContentsProperty
	Value    any
}

// Apply implements SkillOperation
func (op SetSkillContentsProperty) Apply(s *aggregates.Skill) error {
	name := string(op.Property)
	switch op.Property {
	case changes.SkillContentsPropertyExplanation:
		v, err := valueAs[valueobjects.SubtitledHTML](name, op.Value)
		if err != nil {
			return err
		}
		s.SetConceptCardExplanation(v)
	case changes.SkillContentsPropertyWorkedExamples:
		v, err := valueAs[[]entities.WorkedExample](name, op.Value)
		if err != nil {
			return err
		}
		s.SetWorkedExamples(v)
	default:
		return pkgerrors.NewValidationError("unknown skill contents property %q", op.Property)
	}
	return nil
}

// InsertMisconception places a misconception at Index, or appends it for
// AppendIndex
type InsertMisconception struct {
	Index         int
	Misconception *entities.Misconception
}

// Apply implements SkillOperation
func (op InsertMisconception) Apply(s *aggregates.Skill) error {
	if op.Index == AppendIndex {
		return s.AppendMisconception(op.Misconception)
	}
	return s.InsertMisconception(op.Index, op.Misconception)
}

// DeleteMisconception removes a misconception. When RestoreNextID is set the
// skill's next misconception id is put back to it, undoing the bump an
// append made.
type DeleteMisconception struct {
	ID            string
	RestoreNextID *int
}

// Apply implements SkillOperation
func (op DeleteMisconception) Apply(s *aggregates.Skill) error {
	if err := s.DeleteMisconception(op.ID); err != nil {
		return err
	}
	if op.RestoreNextID != nil {
		s.SetNextMisconceptionID(*op.RestoreNextID)
	}
	return nil
}

// SetMisconceptionProperty sets one field of one misconception
type SetMisconceptionProperty struct {
	ID       string
	Property changes.MisconceptionProperty
	Value    any
}

// Apply implements SkillOperation
func (op SetMisconceptionProperty) Apply(s *aggregates.Skill) error {
	name := string(op.Property)
	if op.Property == changes.MisconceptionPropertyMustBeAddressed {
		v, err := valueAs[bool](name, op.Value)
		if err != nil {
			return err
		}
		return s.SetMisconceptionMustBeAddressed(op.ID, v)
	}

	v, err := valueAs[string](name, op.Value)
	if err != nil {
		return err
	}
	switch op.Property {
	case changes.MisconceptionPropertyName:
		return s.SetMisconceptionName(op.ID, v)
	case changes.MisconceptionPropertyNotes:
		return s.SetMisconceptionNotes(op.ID, v)
	case changes.MisconceptionPropertyFeedback:
		return s.SetMisconceptionFeedback(op.ID, v)
	}
	return pkgerrors.NewValidationError("unknown misconception property %q", op.Property)
}

// InsertPrerequisiteSkill places a prerequisite skill id at Index, or
// appends it for AppendIndex
type InsertPrerequisiteSkill struct {
	Index   int
	SkillID string
}

// Apply implements SkillOperation
func (op InsertPrerequisiteSkill) Apply(s *aggregates.Skill) error {
	if op.Index == AppendIndex {
		return s.AddPrerequisiteSkill(op.SkillID)
	}
	return s.InsertPrerequisiteSkill(op.Index, op.SkillID)
}

// DeletePrerequisiteSkill removes a prerequisite skill id
type DeletePrerequisiteSkill struct {
	SkillID string
}

// Apply implements SkillOperation
func (op DeletePrerequisiteSkill) Apply(s *aggregates.Skill) error {
	return s.DeletePrerequisiteSkill(op.SkillID)
}

// SetRubricExplanations sets the explanations for a difficulty, creating
// the rubric when missing
type SetRubricExplanations struct {
	Difficulty   valueobjects.Difficulty
	Explanations []string
}

// Apply implements SkillOperation
func (op SetRubricExplanations) Apply(s *aggregates.Skill) error {
	return s.UpdateRubricForDifficulty(op.Difficulty, op.Explanations)
}

// RemoveRubric drops the rubric for a difficulty
type RemoveRubric struct {
	Difficulty valueobjects.Difficulty
}

// Apply implements SkillOperation
func (op RemoveRubric) Apply(s *aggregates.Skill) error {
	return s.RemoveRubric(op.Difficulty)
}
