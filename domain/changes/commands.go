// Package changes defines the change records the editor sends to the
// backend. A record is tagged by its cmd and carries exactly the fields that
// command needs; the backend replays records from those fields alone.
package changes

// Command tags a change record
type Command string

const (
	CmdEditCollectionProperty Command = "edit_collection_property"
	CmdAddCollectionNode      Command = "add_collection_node"
	CmdDeleteCollectionNode   Command = "delete_collection_node"
	CmdSwapCollectionNodes    Command = "swap_collection_nodes"

	CmdUpdateSkillProperty               Command = "update_skill_property"
	CmdUpdateSkillContentsProperty       Command = "update_skill_contents_property"
	CmdAddSkillMisconception             Command = "add_skill_misconception"
	CmdDeleteSkillMisconception          Command = "delete_skill_misconception"
	CmdUpdateSkillMisconceptionsProperty Command = "update_skill_misconceptions_property"
	CmdAddPrerequisiteSkill              Command = "add_prerequisite_skill"
	CmdDeletePrerequisiteSkill           Command = "delete_prerequisite_skill"
	CmdUpdateRubrics                     Command = "update_rubrics"
)

// AggregateKind names the aggregate a command edits
type AggregateKind string

const (
	AggregateCollection AggregateKind = "collection"
	AggregateSkill      AggregateKind = "skill"
)

// Aggregate returns the aggregate kind the command edits, or "" for an
// unknown command
func (c Command) Aggregate() AggregateKind {
	switch c {
	case CmdEditCollectionProperty, CmdAddCollectionNode, CmdDeleteCollectionNode, CmdSwapCollectionNodes:
		return AggregateCollection
	case CmdUpdateSkillProperty, CmdUpdateSkillContentsProperty, CmdAddSkillMisconception,
		CmdDeleteSkillMisconception, CmdUpdateSkillMisconceptionsProperty, CmdAddPrerequisiteSkill,
		CmdDeletePrerequisiteSkill, CmdUpdateRubrics:
		return AggregateSkill
	}
	return ""
}

// String returns the wire value
func (c Command) String() string {
	return string(c)
}

// CollectionProperty names an editable scalar property of a collection
type CollectionProperty string

const (
	CollectionPropertyTitle        CollectionProperty = "title"
	CollectionPropertyCategory     CollectionProperty = "category"
	CollectionPropertyObjective    CollectionProperty = "objective"
	CollectionPropertyLanguageCode CollectionProperty = "language_code"
	CollectionPropertyTags         CollectionProperty = "tags"
)

// SkillProperty names an editable scalar property of a skill
type SkillProperty string

const (
	SkillPropertyDescription        SkillProperty = "description"
	SkillPropertyLanguageCode       SkillProperty = "language_code"
	SkillPropertySupersedingSkillID SkillProperty = "superseding_skill_id"
	SkillPropertyAllQuestionsMerged SkillProperty = "all_questions_merged"
)

// SkillContentsProperty names an editable part of a skill's concept card
type SkillContentsProperty string

const (
	SkillContentsPropertyExplanation    SkillContentsProperty = "explanation"
	SkillContentsPropertyWorkedExamples SkillContentsProperty = "worked_examples"
)

// MisconceptionProperty names an editable field of a misconception
type MisconceptionProperty string

const (
	MisconceptionPropertyName            MisconceptionProperty = "name"
	MisconceptionPropertyNotes           MisconceptionProperty = "notes"
	MisconceptionPropertyFeedback        MisconceptionProperty = "feedback"
	MisconceptionPropertyMustBeAddressed MisconceptionProperty = "must_be_addressed"
)
