package changelist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"editor-backend/application/services"
	"editor-backend/application/undoredo"
	"editor-backend/domain/changes"
	"editor-backend/domain/core/aggregates"
	"editor-backend/domain/core/aggregates/aggregatestest"
	"editor-backend/domain/core/entities"
	"editor-backend/domain/core/valueobjects"
	pkgerrors "editor-backend/pkg/errors"
	"editor-backend/pkg/observability"
)

func newTestApplier(t *testing.T, lookup ExplorationSummaryLookup) (*Applier, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return NewApplier(lookup, provider.Tracer("test"), observability.NewCollector("test"), zap.NewNop()), recorder
}

// Replaying the committable list onto the original backend state must give
// the same aggregate the editor ended up with.
func TestApplier_CollectionReplayMatchesEditorState(t *testing.T) {
	builder := aggregatestest.NewCollectionBuilder().
		WithExploration("exp0").
		WithExploration("exp1").
		WithExploration("exp2")
	edited := builder.Build()

	coordinator := undoredo.NewCoordinator[*aggregates.Collection](changes.AggregateCollection, zap.NewNop(), nil)
	svc := services.NewCollectionUpdateService(coordinator, zap.NewNop())

	require.NoError(t, svc.SetCollectionTitle(edited, "Replayed"))
	require.NoError(t, svc.AddCollectionNode(edited, "exp3", aggregatestest.ExplorationSummary("exp3")))
	require.NoError(t, svc.SwapNodes(edited, 0, 3))
	require.NoError(t, svc.DeleteCollectionNode(edited, "exp1"))
	require.NoError(t, svc.SetCollectionTags(edited, []string{"x", "y"}))
	require.NoError(t, svc.SetCollectionCategory(edited, "undone"))
	_, err := coordinator.UndoChange(edited)
	require.NoError(t, err)

	lookup := NewSummaryMap([]*valueobjects.ExplorationSummary{aggregatestest.ExplorationSummary("exp3")})
	applier, recorder := newTestApplier(t, lookup)

	replayed, err := aggregates.NewCollectionFromBackendDict(builder.Dict())
	require.NoError(t, err)
	require.NoError(t, applier.ApplyToCollection(context.Background(), replayed, coordinator.CommittableChangeList()))
	assert.Equal(t, edited, replayed)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "changelist.apply", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("changes.count", 5))
	assert.Contains(t, spans[0].Attributes(), attribute.String("aggregate.kind", "collection"))
}

func TestApplier_SkillReplayMatchesEditorState(t *testing.T) {
	builder := aggregatestest.NewSkillBuilder()
	edited := builder.Build()

	coordinator := undoredo.NewCoordinator[*aggregates.Skill](changes.AggregateSkill, zap.NewNop(), nil)
	svc := services.NewSkillUpdateService(coordinator, zap.NewNop())

	m, err := entities.NewMisconception("9", "new", "notes", "feedback", false)
	require.NoError(t, err)

	require.NoError(t, svc.SetSkillDescription(edited, "replayed"))
	require.NoError(t, svc.SetConceptCardExplanation(edited, valueobjects.MustSubtitledHTML("new", "explanation")))
	require.NoError(t, svc.AddWorkedExample(edited, aggregatestest.WorkedExample(3)))
	require.NoError(t, svc.UpdateWorkedExample(edited, 1, "q", "e"))
	require.NoError(t, svc.AddMisconception(edited, m))
	require.NoError(t, svc.DeleteMisconception(edited, "2"))
	require.NoError(t, svc.UpdateMisconceptionMustBeAddressed(edited, "4", true, false))
	require.NoError(t, svc.AddPrerequisiteSkill(edited, "skill_2"))
	require.NoError(t, svc.DeletePrerequisiteSkill(edited, "skill_1"))
	require.NoError(t, svc.UpdateRubricForDifficulty(edited, "Medium", []string{"medium"}))
	require.NoError(t, svc.SetAllQuestionsMerged(edited, true))

	applier, _ := newTestApplier(t, nil)
	replayed, err := aggregates.NewSkillFromBackendDict(builder.Dict())
	require.NoError(t, err)
	require.NoError(t, applier.ApplyToSkill(context.Background(), replayed, coordinator.CommittableChangeList()))

	assert.Equal(t, edited, replayed)
	assert.Equal(t, 10, replayed.NextMisconceptionID())
}

func TestApplier_ReplayFromJSON(t *testing.T) {
	builder := aggregatestest.NewSkillBuilder()
	edited := builder.Build()

	coordinator := undoredo.NewCoordinator[*aggregates.Skill](changes.AggregateSkill, zap.NewNop(), nil)
	svc := services.NewSkillUpdateService(coordinator, zap.NewNop())
	require.NoError(t, svc.UpdateMisconceptionName(edited, "2", "test name", "new name"))
	require.NoError(t, svc.DeleteWorkedExample(edited, 0))
	require.NoError(t, svc.UpdateRubricForDifficulty(edited, "Easy", nil))

	data, err := changes.List(coordinator.CommittableChangeList()).MarshalJSON()
	require.NoError(t, err)
	records, err := DecodeList(data, true)
	require.NoError(t, err)

	applier, _ := newTestApplier(t, nil)
	replayed := builder.Build()
	require.NoError(t, applier.ApplyToSkill(context.Background(), replayed, records))
	assert.Equal(t, edited, replayed)
}

func TestApplier_WrongAggregateKind(t *testing.T) {
	applier, recorder := newTestApplier(t, nil)
	c := aggregatestest.NewCollectionBuilder().WithExploration("exp0").Build()
	before := c.Clone()

	err := applier.ApplyToCollection(context.Background(), c, []changes.Record{
		changes.EditCollectionProperty{PropertyName: changes.CollectionPropertyTitle, NewValue: "t", OldValue: "o"},
		changes.AddPrerequisiteSkill{SkillID: "s"},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Contains(t, err.Error(), "change 1")
	assert.Equal(t, before, c, "a failed replay leaves the collection untouched")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestApplier_FailingRecordLeavesSkillUntouched(t *testing.T) {
	applier, _ := newTestApplier(t, nil)
	s := aggregatestest.NewSkillBuilder().Build()
	before := s.Clone()

	err := applier.ApplyToSkill(context.Background(), s, []changes.Record{
		changes.UpdateSkillProperty{PropertyName: changes.SkillPropertyDescription, NewValue: "d", OldValue: "x"},
		changes.DeleteSkillMisconception{MisconceptionID: "404"},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Equal(t, before, s)
}

type failingLookup struct{}

func (failingLookup) ExplorationSummary(context.Context, string) (*valueobjects.ExplorationSummary, error) {
	return nil, errors.New("backend unavailable")
}

func TestApplier_LookupFailure(t *testing.T) {
	applier, _ := newTestApplier(t, failingLookup{})
	c := aggregatestest.NewCollectionBuilder().Build()

	err := applier.ApplyToCollection(context.Background(), c, []changes.Record{
		changes.AddCollectionNode{ExplorationID: "exp9"},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInternal(err))
	assert.Equal(t, 0, c.NodeCount())
}

func TestApplier_AddNodeWithoutLookup(t *testing.T) {
	applier, _ := newTestApplier(t, nil)
	c := aggregatestest.NewCollectionBuilder().Build()

	require.NoError(t, applier.ApplyToCollection(context.Background(), c, []changes.Record{
		changes.AddCollectionNode{ExplorationID: "exp9"},
	}))
	node, err := c.GetCollectionNodeByExplorationID("exp9")
	require.NoError(t, err)
	assert.False(t, node.DoesExplorationExist())
}
