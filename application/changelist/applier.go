// Package changelist replays committed change records onto an aggregate.
// Replay uses nothing but each record's cmd and fields, which is how the
// backend reconstructs the editor's edits.
package changelist

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"editor-backend/domain/changes"
	"editor-backend/domain/core/aggregates"
	"editor-backend/domain/core/entities"
	"editor-backend/domain/core/valueobjects"
	"editor-backend/domain/operations"
	pkgerrors "editor-backend/pkg/errors"
	"editor-backend/pkg/observability"
)

const tracerName = "editor-backend/changelist"

// Applier replays change lists onto collections and skills
type Applier struct {
	lookup  ExplorationSummaryLookup
	tracer  trace.Tracer
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewApplier creates an applier. lookup, tracer and metrics may be nil; a
// nil tracer uses the global provider.
func NewApplier(lookup ExplorationSummaryLookup, tracer trace.Tracer, metrics *observability.Collector, logger *zap.Logger) *Applier {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applier{
		lookup:  lookup,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// DecodeList decodes a JSON array of change records
func DecodeList(data []byte, strict bool) ([]changes.Record, error) {
	return changes.NewDecoder(strict).DecodeList(data)
}

// ApplyToCollection replays records onto c in order. Either every record
// applies or c is left untouched.
func (a *Applier) ApplyToCollection(ctx context.Context, c *aggregates.Collection, records []changes.Record) (err error) {
	ctx, span := a.startSpan(ctx, changes.AggregateCollection, c.ID(), records)
	defer func() { endSpan(span, err) }()

	work := c.Clone()
	for i, r := range records {
		op, err := a.collectionOperation(ctx, r)
		if err != nil {
			return fmt.Errorf("change %d: %w", i, err)
		}
		if err := op.Apply(work); err != nil {
			return fmt.Errorf("change %d (%s): %w", i, r.Command(), err)
		}
		a.metrics.RecordReplayed(r.Command().String())
	}
	*c = *work

	a.logger.Debug("change list applied",
		zap.String("collection_id", c.ID()),
		zap.Int("changes", len(records)))
	return nil
}

// ApplyToSkill replays records onto s in order. Either every record applies
// or s is left untouched.
func (a *Applier) ApplyToSkill(ctx context.Context, s *aggregates.Skill, records []changes.Record) (err error) {
	_, span := a.startSpan(ctx, changes.AggregateSkill, s.ID(), records)
	defer func() { endSpan(span, err) }()

	work := s.Clone()
	for i, r := range records {
		op, err := skillOperation(r)
		if err != nil {
			return fmt.Errorf("change %d: %w", i, err)
		}
		if err := op.Apply(work); err != nil {
			return fmt.Errorf("change %d (%s): %w", i, r.Command(), err)
		}
		a.metrics.RecordReplayed(r.Command().String())
	}
	*s = *work

	a.logger.Debug("change list applied",
		zap.String("skill_id", s.ID()),
		zap.Int("changes", len(records)))
	return nil
}

func (a *Applier) collectionOperation(ctx context.Context, r changes.Record) (operations.CollectionOperation, error) {
	switch r := r.(type) {
	case changes.EditCollectionProperty:
		return operations.SetCollectionProperty{Property: r.PropertyName, Value: r.NewValue}, nil
	case changes.AddCollectionNode:
		node, err := entities.NewCollectionNode(r.ExplorationID)
		if err != nil {
			return nil, err
		}
		if a.lookup != nil {
			summary, err := a.lookup.ExplorationSummary(ctx, r.ExplorationID)
			if err != nil {
				return nil, pkgerrors.Wrap(err, "look up exploration summary")
			}
			node.SetExplorationSummary(summary)
		}
		return operations.InsertCollectionNode{Index: operations.AppendIndex, Node: node}, nil
	case changes.DeleteCollectionNode:
		return operations.DeleteCollectionNode{ExplorationID: r.ExplorationID}, nil
	case changes.SwapCollectionNodes:
		return operations.SwapCollectionNodes{First: r.FirstIndex, Second: r.SecondIndex}, nil
	}
	return nil, wrongAggregate(r, changes.AggregateCollection)
}

func skillOperation(r changes.Record) (operations.SkillOperation, error) {
	switch r := r.(type) {
	case changes.UpdateSkillProperty:
		return operations.SetSkillProperty{Property: r.PropertyName, Value: r.NewValue}, nil
	case changes.UpdateSkillContentsProperty:
		return operations.SetSkillContentsProperty{Property: r.PropertyName, Value: r.NewValue}, nil
	case changes.AddSkillMisconception:
		m, err := entities.MisconceptionFromDict(r.NewMisconceptionDict)
		if err != nil {
			return nil, err
		}
		return operations.InsertMisconception{Index: operations.AppendIndex, Misconception: m}, nil
	case changes.DeleteSkillMisconception:
		return operations.DeleteMisconception{ID: r.MisconceptionID}, nil
	case changes.UpdateSkillMisconceptionsProperty:
		return operations.SetMisconceptionProperty{ID: r.MisconceptionID, Property: r.PropertyName, Value: r.NewValue}, nil
	case changes.AddPrerequisiteSkill:
		return operations.InsertPrerequisiteSkill{Index: operations.AppendIndex, SkillID: r.SkillID}, nil
	case changes.DeletePrerequisiteSkill:
		return operations.DeletePrerequisiteSkill{SkillID: r.SkillID}, nil
	case changes.UpdateRubrics:
		d, err := valueobjects.ParseDifficulty(r.Difficulty)
		if err != nil {
			return nil, err
		}
		return operations.SetRubricExplanations{Difficulty: d, Explanations: r.Explanations}, nil
	}
	return nil, wrongAggregate(r, changes.AggregateSkill)
}

func wrongAggregate(r changes.Record, kind changes.AggregateKind) error {
	if r == nil {
		return pkgerrors.NewValidationError("nil change record")
	}
	return pkgerrors.NewValidationError("%s cannot be applied to a %s", r.Command(), kind).
		WithDetail("cmd", r.Command().String())
}

func (a *Applier) startSpan(ctx context.Context, kind changes.AggregateKind, id string, records []changes.Record) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("aggregate.kind", string(kind)),
		attribute.String("aggregate.id", id),
		attribute.Int("changes.count", len(records)),
	}
	for cmd, n := range countCommands(records) {
		attrs = append(attrs, attribute.Int("changes.cmd."+string(cmd), n))
	}
	return a.tracer.Start(ctx, "changelist.apply", trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func countCommands(records []changes.Record) map[changes.Command]int {
	counts := make(map[changes.Command]int)
	for _, r := range records {
		if r != nil {
			counts[r.Command()]++
		}
	}
	return counts
}
