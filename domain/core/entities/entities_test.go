package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"editor-backend/domain/core/valueobjects"
	pkgerrors "editor-backend/pkg/errors"
)

func TestCollectionNode(t *testing.T) {
	_, err := NewCollectionNode("")
	assert.True(t, pkgerrors.IsValidation(err))

	node, err := NewCollectionNode("exp_1")
	require.NoError(t, err)
	assert.False(t, node.DoesExplorationExist())
	assert.False(t, node.IsExplorationPrivate())

	summary := &valueobjects.ExplorationSummary{ID: "exp_1", Status: valueobjects.ExplorationStatusPrivate}
	node.SetExplorationSummary(summary)
	summary.Title = "changed after set"

	assert.True(t, node.DoesExplorationExist())
	assert.True(t, node.IsExplorationPrivate())
	assert.Empty(t, node.ExplorationSummary().Title)
}

func TestCollectionNode_DictRoundTrip(t *testing.T) {
	d := CollectionNodeDict{
		ExplorationID:      "exp_1",
		ExplorationSummary: &valueobjects.ExplorationSummary{ID: "exp_1", Title: "Fractions"},
	}
	node, err := CollectionNodeFromDict(d)
	require.NoError(t, err)

	assert.Equal(t, d, node.ToDict())

	clone := node.Clone()
	clone.SetExplorationSummary(nil)
	assert.True(t, node.DoesExplorationExist())
}

func TestMisconception(t *testing.T) {
	_, err := NewMisconception(" ", "name", "notes", "feedback", true)
	assert.True(t, pkgerrors.IsValidation(err))

	d := MisconceptionDict{ID: "3", Name: "n", Notes: "o", Feedback: "f", MustBeAddressed: true}
	m, err := MisconceptionFromDict(d)
	require.NoError(t, err)
	assert.Equal(t, d, m.ToDict())

	clone := m.Clone()
	clone.SetName("other")
	clone.SetMustBeAddressed(false)

	assert.Equal(t, "n", m.Name())
	assert.True(t, m.MustBeAddressed())
}

func TestRubric(t *testing.T) {
	_, err := NewRubric("Impossible", nil)
	assert.True(t, pkgerrors.IsValidation(err))

	explanations := []string{"a"}
	r, err := NewRubric(valueobjects.DifficultyEasy, explanations)
	require.NoError(t, err)
	explanations[0] = "mutated"

	assert.Equal(t, []string{"a"}, r.Explanations())

	clone := r.Clone()
	clone.SetExplanations([]string{"b", "c"})
	assert.Equal(t, []string{"a"}, r.Explanations())
	assert.Equal(t, RubricDict{Difficulty: "Easy", Explanations: []string{"a"}}, r.ToDict())
}

func TestWorkedExample_JSON(t *testing.T) {
	w := NewWorkedExample(
		valueobjects.MustSubtitledHTML("question", "q_1"),
		valueobjects.MustSubtitledHTML("explanation", "e_1"),
	)
	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"question": {"html": "question", "content_id": "q_1"},
		"explanation": {"html": "explanation", "content_id": "e_1"}
	}`, string(data))

	var decoded WorkedExample
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, w, decoded)

	edited := w.WithHTML("new question", "new explanation")
	assert.Equal(t, "q_1", edited.Question().ContentID())
	assert.Equal(t, "new explanation", edited.Explanation().HTML())
}

func TestConceptCard_CopiesOnReadAndWrite(t *testing.T) {
	examples := []WorkedExample{
		NewWorkedExample(valueobjects.MustSubtitledHTML("q", "q_1"), valueobjects.MustSubtitledHTML("e", "e_1")),
	}
	card := NewConceptCard(valueobjects.MustSubtitledHTML("text", "explanation"), examples, nil)
	examples[0] = WorkedExample{}

	got := card.WorkedExamples()
	require.Len(t, got, 1)
	assert.Equal(t, "q", got[0].Question().HTML())
	assert.NotNil(t, card.RecordedVoiceovers())

	got[0] = WorkedExample{}
	assert.Equal(t, "q", card.WorkedExamples()[0].Question().HTML())

	clone := card.Clone()
	clone.SetExplanation(valueobjects.MustSubtitledHTML("other", "explanation"))
	assert.Equal(t, "text", card.Explanation().HTML())
}
