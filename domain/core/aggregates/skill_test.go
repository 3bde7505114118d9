package aggregates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"editor-backend/domain/core/aggregates"
	"editor-backend/domain/core/aggregates/aggregatestest"
	"editor-backend/domain/core/entities"
	"editor-backend/domain/core/valueobjects"
	pkgerrors "editor-backend/pkg/errors"
)

func newMisconception(t *testing.T, id string) *entities.Misconception {
	t.Helper()
	m, err := entities.MisconceptionFromDict(aggregatestest.MisconceptionDict(id))
	require.NoError(t, err)
	return m
}

func misconceptionIDs(s *aggregates.Skill) []string {
	var ids []string
	for _, m := range s.Misconceptions() {
		ids = append(ids, m.ID())
	}
	return ids
}

func TestSkill_DictRoundTrip(t *testing.T) {
	d := aggregatestest.NewSkillBuilder().Dict()

	s, err := aggregates.NewSkillFromBackendDict(d)
	require.NoError(t, err)

	assert.Equal(t, d, s.ToBackendDict())
	assert.Equal(t, 5, s.NextMisconceptionID())
	assert.Equal(t, []string{"skill_1"}, s.PrerequisiteSkillIDs())
}

func TestSkill_FromDictValidation(t *testing.T) {
	d := aggregatestest.NewSkillBuilder().WithID("").Dict()
	_, err := aggregates.NewSkillFromBackendDict(d)
	assert.True(t, pkgerrors.IsValidation(err))

	d = aggregatestest.NewSkillBuilder().Dict()
	d.Misconceptions = append(d.Misconceptions, aggregatestest.MisconceptionDict("2"))
	_, err = aggregates.NewSkillFromBackendDict(d)
	assert.True(t, pkgerrors.IsConflict(err))

	d = aggregatestest.NewSkillBuilder().Dict()
	d.Rubrics = []entities.RubricDict{{Difficulty: "Trivial"}}
	_, err = aggregates.NewSkillFromBackendDict(d)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestSkill_Misconceptions(t *testing.T) {
	t.Run("append bumps next id", func(t *testing.T) {
		s := aggregatestest.NewSkillBuilder().Build()

		require.NoError(t, s.AppendMisconception(newMisconception(t, "5")))
		assert.Equal(t, []string{"2", "4", "5"}, misconceptionIDs(s))
		assert.Equal(t, 6, s.NextMisconceptionID())
	})

	t.Run("lower id leaves next id alone", func(t *testing.T) {
		s := aggregatestest.NewSkillBuilder().Build()

		require.NoError(t, s.InsertMisconception(1, newMisconception(t, "3")))
		assert.Equal(t, []string{"2", "3", "4"}, misconceptionIDs(s))
		assert.Equal(t, 5, s.NextMisconceptionID())
	})

	t.Run("duplicate id", func(t *testing.T) {
		s := aggregatestest.NewSkillBuilder().Build()
		assert.True(t, pkgerrors.IsConflict(s.AppendMisconception(newMisconception(t, "4"))))
	})

	t.Run("index out of range", func(t *testing.T) {
		s := aggregatestest.NewSkillBuilder().Build()
		assert.True(t, pkgerrors.IsValidation(s.InsertMisconception(3, newMisconception(t, "9"))))
	})

	t.Run("delete", func(t *testing.T) {
		s := aggregatestest.NewSkillBuilder().Build()

		require.NoError(t, s.DeleteMisconception("2"))
		assert.Equal(t, []string{"4"}, misconceptionIDs(s))
		assert.True(t, pkgerrors.IsNotFound(s.DeleteMisconception("2")))
	})
}

func TestSkill_MisconceptionSetters(t *testing.T) {
	s := aggregatestest.NewSkillBuilder().Build()

	require.NoError(t, s.SetMisconceptionName("2", "new name"))
	require.NoError(t, s.SetMisconceptionNotes("2", "new notes"))
	require.NoError(t, s.SetMisconceptionFeedback("2", "new feedback"))
	require.NoError(t, s.SetMisconceptionMustBeAddressed("2", false))

	m, err := s.FindMisconceptionByID("2")
	require.NoError(t, err)
	assert.Equal(t, entities.MisconceptionDict{
		ID:              "2",
		Name:            "new name",
		Notes:           "new notes",
		Feedback:        "new feedback",
		MustBeAddressed: false,
	}, m.ToDict())

	assert.True(t, pkgerrors.IsNotFound(s.SetMisconceptionName("9", "x")))
}

func TestSkill_PrerequisiteSkills(t *testing.T) {
	s := aggregatestest.NewSkillBuilder().Build()

	require.NoError(t, s.AddPrerequisiteSkill("skill_2"))
	require.NoError(t, s.InsertPrerequisiteSkill(0, "skill_0"))
	assert.Equal(t, []string{"skill_0", "skill_1", "skill_2"}, s.PrerequisiteSkillIDs())

	assert.True(t, pkgerrors.IsConflict(s.AddPrerequisiteSkill("skill_1")))
	assert.True(t, pkgerrors.IsValidation(s.AddPrerequisiteSkill("1")))
	assert.True(t, pkgerrors.IsValidation(s.AddPrerequisiteSkill("")))

	require.NoError(t, s.DeletePrerequisiteSkill("skill_1"))
	assert.Equal(t, []string{"skill_0", "skill_2"}, s.PrerequisiteSkillIDs())
	assert.True(t, pkgerrors.IsNotFound(s.DeletePrerequisiteSkill("skill_1")))
}

func TestSkill_Rubrics(t *testing.T) {
	s := aggregatestest.NewSkillBuilder().Build()

	require.NoError(t, s.UpdateRubricForDifficulty(valueobjects.DifficultyEasy, []string{"a", "b"}))
	easy, ok := s.RubricForDifficulty(valueobjects.DifficultyEasy)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, easy.Explanations())

	_, ok = s.RubricForDifficulty(valueobjects.DifficultyHard)
	assert.False(t, ok)
	require.NoError(t, s.UpdateRubricForDifficulty(valueobjects.DifficultyHard, []string{"hard"}))
	assert.Len(t, s.Rubrics(), 2)

	require.NoError(t, s.RemoveRubric(valueobjects.DifficultyHard))
	assert.Len(t, s.Rubrics(), 1)
	assert.True(t, pkgerrors.IsNotFound(s.RemoveRubric(valueobjects.DifficultyHard)))
	assert.True(t, pkgerrors.IsValidation(s.UpdateRubricForDifficulty("Trivial", nil)))
}

func TestSkill_ConceptCard(t *testing.T) {
	s := aggregatestest.NewSkillBuilder().Build()

	s.SetConceptCardExplanation(valueobjects.MustSubtitledHTML("new", "explanation"))
	s.SetWorkedExamples([]entities.WorkedExample{aggregatestest.WorkedExample(2)})

	card := s.ConceptCard()
	assert.Equal(t, "new", card.Explanation().HTML())
	assert.Equal(t, []entities.WorkedExample{aggregatestest.WorkedExample(2)}, s.WorkedExamples())
	assert.Len(t, card.RecordedVoiceovers(), 5)
}

func TestSkill_Clone(t *testing.T) {
	s := aggregatestest.NewSkillBuilder().Build()
	clone := s.Clone()

	clone.SetDescription("other")
	require.NoError(t, clone.SetMisconceptionName("2", "other"))
	require.NoError(t, clone.UpdateRubricForDifficulty(valueobjects.DifficultyEasy, []string{"other"}))
	require.NoError(t, clone.AddPrerequisiteSkill("skill_9"))
	clone.SetWorkedExamples(nil)

	assert.Equal(t, aggregatestest.NewSkillBuilder().Dict(), s.ToBackendDict())
}
