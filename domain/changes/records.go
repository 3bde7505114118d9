package changes

import (
	"editor-backend/domain/core/entities"
)

// Record is one serializable edit. The concrete types below are the only
// implementations.
type Record interface {
	Command() Command
	isRecord()
}

// EditCollectionProperty sets a scalar collection property
type EditCollectionProperty struct {
	PropertyName CollectionProperty `json:"property_name" validate:"required,oneof=title category objective language_code tags"`
	NewValue     any                `json:"new_value"`
	OldValue     any                `json:"old_value"`
}

// AddCollectionNode appends a node for an exploration
type AddCollectionNode struct {
	ExplorationID string `json:"exploration_id" validate:"required"`
}

// DeleteCollectionNode removes the node for an exploration
type DeleteCollectionNode struct {
	ExplorationID string `json:"exploration_id" validate:"required"`
}

// SwapCollectionNodes exchanges two node positions
type SwapCollectionNodes struct {
	FirstIndex  int `json:"first_index" validate:"min=0"`
	SecondIndex int `json:"second_index" validate:"min=0"`
}

// UpdateSkillProperty sets a scalar skill property
type UpdateSkillProperty struct {
	PropertyName SkillProperty `json:"property_name" validate:"required,oneof=description language_code superseding_skill_id all_questions_merged"`
	NewValue     any           `json:"new_value"`
	OldValue     any           `json:"old_value"`
}

// UpdateSkillContentsProperty replaces part of the concept card
type UpdateSkillContentsProperty struct {
	PropertyName SkillContentsProperty `json:"property_name" validate:"required,oneof=explanation worked_examples"`
	NewValue     any                   `json:"new_value"`
	OldValue     any                   `json:"old_value"`
}

// AddSkillMisconception appends a misconception
type AddSkillMisconception struct {
	NewMisconceptionDict entities.MisconceptionDict `json:"new_misconception_dict"`
}

// DeleteSkillMisconception removes a misconception
type DeleteSkillMisconception struct {
	MisconceptionID string `json:"misconception_id" validate:"required"`
}

// UpdateSkillMisconceptionsProperty sets one field of one misconception
type UpdateSkillMisconceptionsProperty struct {
	PropertyName    MisconceptionProperty `json:"property_name" validate:"required,oneof=name notes feedback must_be_addressed"`
	NewValue        any                   `json:"new_value"`
	OldValue        any                   `json:"old_value"`
	MisconceptionID string                `json:"misconception_id" validate:"required"`
}

// AddPrerequisiteSkill appends a prerequisite skill id
type AddPrerequisiteSkill struct {
	SkillID string `json:"skill_id" validate:"required"`
}

// DeletePrerequisiteSkill removes a prerequisite skill id
type DeletePrerequisiteSkill struct {
	SkillID string `json:"skill_id" validate:"required"`
}

// UpdateRubrics replaces the explanations of the rubric for a difficulty
type UpdateRubrics struct {
	Difficulty   string   `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Explanations []string `json:"explanations"`
}

func (EditCollectionProperty) Command() Command            { return CmdEditCollectionProperty }
func (AddCollectionNode) Command() Command                 { return CmdAddCollectionNode }
func (DeleteCollectionNode) Command() Command              { return CmdDeleteCollectionNode }
func (SwapCollectionNodes) Command() Command               { return CmdSwapCollectionNodes }
func (UpdateSkillProperty) Command() Command               { return CmdUpdateSkillProperty }
func (UpdateSkillContentsProperty) Command() Command       { return CmdUpdateSkillContentsProperty }
func (AddSkillMisconception) Command() Command             { return CmdAddSkillMisconception }
func (DeleteSkillMisconception) Command() Command          { return CmdDeleteSkillMisconception }
func (UpdateSkillMisconceptionsProperty) Command() Command { return CmdUpdateSkillMisconceptionsProperty }
func (AddPrerequisiteSkill) Command() Command              { return CmdAddPrerequisiteSkill }
func (DeletePrerequisiteSkill) Command() Command           { return CmdDeletePrerequisiteSkill }
func (UpdateRubrics) Command() Command                     { return CmdUpdateRubrics }

func (EditCollectionProperty) isRecord()            {}
func (AddCollectionNode) isRecord()                 {}
func (DeleteCollectionNode) isRecord()              {}
func (SwapCollectionNodes) isRecord()               {}
func (UpdateSkillProperty) isRecord()               {}
func (UpdateSkillContentsProperty) isRecord()       {}
func (AddSkillMisconception) isRecord()             {}
func (DeleteSkillMisconception) isRecord()          {}
func (UpdateSkillMisconceptionsProperty) isRecord() {}
func (AddPrerequisiteSkill) isRecord()              {}
func (DeletePrerequisiteSkill) isRecord()           {}
func (UpdateRubrics) isRecord()                     {}

// CloneValue copies the slice values a property record can carry. Other
// values are immutable and come back as is.
func CloneValue(v any) any {
	switch v := v.(type) {
	case []string:
		return cloneStrings(v)
	case []entities.WorkedExample:
		return entities.CloneWorkedExamples(v)
	}
	return v
}

// CloneRecord returns a copy of r that shares no memory with it
func CloneRecord(r Record) Record {
	switch v := r.(type) {
	case EditCollectionProperty:
		v.NewValue, v.OldValue = CloneValue(v.NewValue), CloneValue(v.OldValue)
		return v
	case UpdateSkillProperty:
		v.NewValue, v.OldValue = CloneValue(v.NewValue), CloneValue(v.OldValue)
		return v
	case UpdateSkillContentsProperty:
		v.NewValue, v.OldValue = CloneValue(v.NewValue), CloneValue(v.OldValue)
		return v
	case UpdateSkillMisconceptionsProperty:
		v.NewValue, v.OldValue = CloneValue(v.NewValue), CloneValue(v.OldValue)
		return v
	case UpdateRubrics:
		v.Explanations = cloneStrings(v.Explanations)
		return v
	}
	return r
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
