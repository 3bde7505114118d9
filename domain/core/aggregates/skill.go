package aggregates

import (
	"strconv"
	"strings"

	"editor-backend/domain/core/entities"
	"editor-backend/domain/core/valueobjects"
	pkgerrors "editor-backend/pkg/errors"
)

// Skill is the aggregate root for one teachable skill: its concept card,
// the misconceptions learners tend to have, the rubrics per difficulty and
// the skills it depends on.
type Skill struct {
	id                   string
	description          string
	languageCode         string
	version              int
	misconceptions       []*entities.Misconception
	rubrics              []*entities.Rubric
	conceptCard          *entities.ConceptCard
	nextMisconceptionID  int
	prerequisiteSkillIDs []string
	supersedingSkillID   string
	allQuestionsMerged   bool
}

// SkillDict is the backend shape of a skill
type SkillDict struct {
	ID                   string                       `json:"id" validate:"required"`
	Description          string                       `json:"description"`
	LanguageCode         string                       `json:"language_code"`
	Version              int                          `json:"version"`
	Misconceptions       []entities.MisconceptionDict `json:"misconceptions" validate:"dive"`
	Rubrics              []entities.RubricDict        `json:"rubrics" validate:"dive"`
	SkillContents        entities.ConceptCardDict     `json:"skill_contents"`
	NextMisconceptionID  int                          `json:"next_misconception_id"`
	PrerequisiteSkillIDs []string                     `json:"prerequisite_skill_ids"`
	SupersedingSkillID   string                       `json:"superseding_skill_id"`
	AllQuestionsMerged   bool                         `json:"all_questions_merged"`
}

// NewSkillFromBackendDict reconstructs a skill from stored data
func NewSkillFromBackendDict(d SkillDict) (*Skill, error) {
	if strings.TrimSpace(d.ID) == "" {
		return nil, pkgerrors.NewValidationError("skill id is required")
	}

	s := &Skill{
		id:                   d.ID,
		description:          d.Description,
		languageCode:         d.LanguageCode,
		version:              d.Version,
		misconceptions:       []*entities.Misconception{},
		rubrics:              []*entities.Rubric{},
		conceptCard:          entities.ConceptCardFromDict(d.SkillContents),
		nextMisconceptionID:  d.NextMisconceptionID,
		prerequisiteSkillIDs: cloneStrings(d.PrerequisiteSkillIDs),
		supersedingSkillID:   d.SupersedingSkillID,
		allQuestionsMerged:   d.AllQuestionsMerged,
	}

	for _, md := range d.Misconceptions {
		m, err := entities.MisconceptionFromDict(md)
		if err != nil {
			return nil, err
		}
		if s.misconceptionIndex(m.ID()) >= 0 {
			return nil, pkgerrors.NewConflictError("duplicate misconception id %s", m.ID())
		}
		s.misconceptions = append(s.misconceptions, m)
	}
	for _, rd := range d.Rubrics {
		r, err := entities.RubricFromDict(rd)
		if err != nil {
			return nil, err
		}
		s.rubrics = append(s.rubrics, r)
	}
	return s, nil
}

// ToBackendDict converts the skill to its backend shape
func (s *Skill) ToBackendDict() SkillDict {
	misconceptions := make([]entities.MisconceptionDict, 0, len(s.misconceptions))
	for _, m := range s.misconceptions {
		misconceptions = append(misconceptions, m.ToDict())
	}
	rubrics := make([]entities.RubricDict, 0, len(s.rubrics))
	for _, r := range s.rubrics {
		rubrics = append(rubrics, r.ToDict())
	}
	return SkillDict{
		ID:                   s.id,
		Description:          s.description,
		LanguageCode:         s.languageCode,
		Version:              s.version,
		Misconceptions:       misconceptions,
		Rubrics:              rubrics,
		SkillContents:        s.conceptCard.ToDict(),
		NextMisconceptionID:  s.nextMisconceptionID,
		PrerequisiteSkillIDs: cloneStrings(s.prerequisiteSkillIDs),
		SupersedingSkillID:   s.supersedingSkillID,
		AllQuestionsMerged:   s.allQuestionsMerged,
	}
}

// ID returns the skill's unique identifier
func (s *Skill) ID() string {
	return s.id
}

// Version returns the version the skill was loaded at
func (s *Skill) Version() int {
	return s.version
}

// Description returns the skill description
func (s *Skill) Description() string {
	return s.description
}

// SetDescription sets the skill description
func (s *Skill) SetDescription(description string) {
	s.description = description
}

// LanguageCode returns the skill language code
func (s *Skill) LanguageCode() string {
	return s.languageCode
}

// SetLanguageCode sets the skill language code
func (s *Skill) SetLanguageCode(languageCode string) {
	s.languageCode = languageCode
}

// SupersedingSkillID returns the id of the skill this one was merged into
func (s *Skill) SupersedingSkillID() string {
	return s.supersedingSkillID
}

// SetSupersedingSkillID sets the id of the skill this one was merged into
func (s *Skill) SetSupersedingSkillID(id string) {
	s.supersedingSkillID = id
}

// AllQuestionsMerged reports whether all questions moved to the superseding skill
func (s *Skill) AllQuestionsMerged() bool {
	return s.allQuestionsMerged
}

// SetAllQuestionsMerged sets the all-questions-merged flag
func (s *Skill) SetAllQuestionsMerged(merged bool) {
	s.allQuestionsMerged = merged
}

// ConceptCard returns a copy of the concept card
func (s *Skill) ConceptCard() *entities.ConceptCard {
	return s.conceptCard.Clone()
}

// SetConceptCardExplanation replaces the concept card explanation
func (s *Skill) SetConceptCardExplanation(explanation valueobjects.SubtitledHTML) {
	s.conceptCard.SetExplanation(explanation)
}

// WorkedExamples returns a copy of the concept card worked examples
func (s *Skill) WorkedExamples() []entities.WorkedExample {
	return s.conceptCard.WorkedExamples()
}

// SetWorkedExamples replaces the concept card worked examples
func (s *Skill) SetWorkedExamples(examples []entities.WorkedExample) {
	s.conceptCard.SetWorkedExamples(examples)
}

// Misconceptions returns copies of the misconceptions in order
func (s *Skill) Misconceptions() []*entities.Misconception {
	out := make([]*entities.Misconception, len(s.misconceptions))
	for i, m := range s.misconceptions {
		out[i] = m.Clone()
	}
	return out
}

// NextMisconceptionID returns the id the next new misconception should get
func (s *Skill) NextMisconceptionID() int {
	return s.nextMisconceptionID
}

// SetNextMisconceptionID overrides the next misconception id
func (s *Skill) SetNextMisconceptionID(id int) {
	s.nextMisconceptionID = id
}

// FindMisconceptionByID returns a copy of the misconception with id
func (s *Skill) FindMisconceptionByID(id string) (*entities.Misconception, error) {
	idx, err := s.MisconceptionIndex(id)
	if err != nil {
		return nil, err
	}
	return s.misconceptions[idx].Clone(), nil
}

// MisconceptionIndex returns the position of the misconception with id
func (s *Skill) MisconceptionIndex(id string) (int, error) {
	idx := s.misconceptionIndex(id)
	if idx < 0 {
		return -1, pkgerrors.NewNotFoundError("misconception", id)
	}
	return idx, nil
}

// AppendMisconception adds a copy of m at the end
func (s *Skill) AppendMisconception(m *entities.Misconception) error {
	return s.InsertMisconception(len(s.misconceptions), m)
}

// InsertMisconception places a copy of m at index. A numeric id at or past
// the next misconception id moves the counter beyond it.
func (s *Skill) InsertMisconception(index int, m *entities.Misconception) error {
	if m == nil {
		return pkgerrors.NewValidationError("misconception cannot be nil")
	}
	if s.misconceptionIndex(m.ID()) >= 0 {
		return pkgerrors.NewConflictError("skill already has misconception %s", m.ID())
	}
	if index < 0 || index > len(s.misconceptions) {
		return pkgerrors.NewValidationError("misconception index %d out of range [0, %d]", index, len(s.misconceptions))
	}

	s.misconceptions = append(s.misconceptions, nil)
	copy(s.misconceptions[index+1:], s.misconceptions[index:])
	s.misconceptions[index] = m.Clone()

	if n, err := strconv.Atoi(m.ID()); err == nil && n >= s.nextMisconceptionID {
		s.nextMisconceptionID = n + 1
	}
	return nil
}

// DeleteMisconception removes the misconception with id
func (s *Skill) DeleteMisconception(id string) error {
	idx, err := s.MisconceptionIndex(id)
	if err != nil {
		return err
	}
	s.misconceptions = append(s.misconceptions[:idx], s.misconceptions[idx+1:]...)
	return nil
}

// SetMisconceptionName renames the misconception with id
func (s *Skill) SetMisconceptionName(id, name string) error {
	return s.updateMisconception(id, func(m *entities.Misconception) { m.SetName(name) })
}

// SetMisconceptionNotes sets the notes of the misconception with id
func (s *Skill) SetMisconceptionNotes(id, notes string) error {
	return s.updateMisconception(id, func(m *entities.Misconception) { m.SetNotes(notes) })
}

// SetMisconceptionFeedback sets the feedback of the misconception with id
func (s *Skill) SetMisconceptionFeedback(id, feedback string) error {
	return s.updateMisconception(id, func(m *entities.Misconception) { m.SetFeedback(feedback) })
}

// SetMisconceptionMustBeAddressed sets whether the misconception with id is mandatory
func (s *Skill) SetMisconceptionMustBeAddressed(id string, mustBeAddressed bool) error {
	return s.updateMisconception(id, func(m *entities.Misconception) { m.SetMustBeAddressed(mustBeAddressed) })
}

// PrerequisiteSkillIDs returns a copy of the prerequisite skill ids
func (s *Skill) PrerequisiteSkillIDs() []string {
	return cloneStrings(s.prerequisiteSkillIDs)
}

// PrerequisiteSkillIndex returns the position of a prerequisite skill id
func (s *Skill) PrerequisiteSkillIndex(skillID string) (int, error) {
	for i, id := range s.prerequisiteSkillIDs {
		if id == skillID {
			return i, nil
		}
	}
	return -1, pkgerrors.NewNotFoundError("prerequisite skill", skillID)
}

// AddPrerequisiteSkill appends a prerequisite skill id
func (s *Skill) AddPrerequisiteSkill(skillID string) error {
	return s.InsertPrerequisiteSkill(len(s.prerequisiteSkillIDs), skillID)
}

// InsertPrerequisiteSkill places a prerequisite skill id at index
func (s *Skill) InsertPrerequisiteSkill(index int, skillID string) error {
	if strings.TrimSpace(skillID) == "" {
		return pkgerrors.NewValidationError("prerequisite skill id cannot be empty")
	}
	if skillID == s.id {
		return pkgerrors.NewValidationError("skill %s cannot be its own prerequisite", skillID)
	}
	if _, err := s.PrerequisiteSkillIndex(skillID); err == nil {
		return pkgerrors.NewConflictError("skill %s is already a prerequisite", skillID)
	}
	if index < 0 || index > len(s.prerequisiteSkillIDs) {
		return pkgerrors.NewValidationError("prerequisite index %d out of range [0, %d]", index, len(s.prerequisiteSkillIDs))
	}

	s.prerequisiteSkillIDs = append(s.prerequisiteSkillIDs, "")
	copy(s.prerequisiteSkillIDs[index+1:], s.prerequisiteSkillIDs[index:])
	s.prerequisiteSkillIDs[index] = skillID
	return nil
}

// DeletePrerequisiteSkill removes a prerequisite skill id
func (s *Skill) DeletePrerequisiteSkill(skillID string) error {
	idx, err := s.PrerequisiteSkillIndex(skillID)
	if err != nil {
		return err
	}
	s.prerequisiteSkillIDs = append(s.prerequisiteSkillIDs[:idx], s.prerequisiteSkillIDs[idx+1:]...)
	return nil
}

// Rubrics returns copies of the rubrics
func (s *Skill) Rubrics() []*entities.Rubric {
	out := make([]*entities.Rubric, len(s.rubrics))
	for i, r := range s.rubrics {
		out[i] = r.Clone()
	}
	return out
}

// RubricForDifficulty returns a copy of the rubric for difficulty, if any
func (s *Skill) RubricForDifficulty(difficulty valueobjects.Difficulty) (*entities.Rubric, bool) {
	idx := s.rubricIndex(difficulty)
	if idx < 0 {
		return nil, false
	}
	return s.rubrics[idx].Clone(), true
}

// UpdateRubricForDifficulty sets the explanations of the rubric for
// difficulty, creating the rubric if the skill has none for it yet
func (s *Skill) UpdateRubricForDifficulty(difficulty valueobjects.Difficulty, explanations []string) error {
	if !difficulty.IsValid() {
		return pkgerrors.NewValidationError("invalid difficulty value passed: %q", difficulty)
	}
	if idx := s.rubricIndex(difficulty); idx >= 0 {
		s.rubrics[idx].SetExplanations(explanations)
		return nil
	}
	r, err := entities.NewRubric(difficulty, explanations)
	if err != nil {
		return err
	}
	s.rubrics = append(s.rubrics, r)
	return nil
}

// RemoveRubric drops the rubric for difficulty
func (s *Skill) RemoveRubric(difficulty valueobjects.Difficulty) error {
	idx := s.rubricIndex(difficulty)
	if idx < 0 {
		return pkgerrors.NewNotFoundError("rubric", difficulty)
	}
	s.rubrics = append(s.rubrics[:idx], s.rubrics[idx+1:]...)
	return nil
}

// Clone returns a deep copy of the skill
func (s *Skill) Clone() *Skill {
	out := *s
	out.misconceptions = s.Misconceptions()
	out.rubrics = s.Rubrics()
	out.conceptCard = s.conceptCard.Clone()
	out.prerequisiteSkillIDs = cloneStrings(s.prerequisiteSkillIDs)
	return &out
}

func (s *Skill) updateMisconception(id string, update func(*entities.Misconception)) error {
	idx, err := s.MisconceptionIndex(id)
	if err != nil {
		return err
	}
	update(s.misconceptions[idx])
	return nil
}

func (s *Skill) misconceptionIndex(id string) int {
	for i, m := range s.misconceptions {
		if m.ID() == id {
			return i
		}
	}
	return -1
}

func (s *Skill) rubricIndex(difficulty valueobjects.Difficulty) int {
	for i, r := range s.rubrics {
		if r.Difficulty() == difficulty {
			return i
		}
	}
	return -1
}
