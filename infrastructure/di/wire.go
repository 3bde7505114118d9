//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"editor-backend/application/changelist"
	"editor-backend/application/services"
	"editor-backend/application/undoredo"
	"editor-backend/domain/core/aggregates"
	"editor-backend/infrastructure/config"
	"editor-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config                *config.Config
	Logger                *zap.Logger
	Level                 zap.AtomicLevel
	Watcher               *config.Watcher
	Metrics               *observability.Collector
	CollectionCoordinator *undoredo.Coordinator[*aggregates.Collection]
	SkillCoordinator      *undoredo.Coordinator[*aggregates.Skill]
	CollectionUpdates     *services.CollectionUpdateService
	SkillUpdates          *services.SkillUpdateService
	Applier               *changelist.Applier
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideWatcher,
	ProvideMetrics,
	ProvideTracer,
	ProvideCollectionCoordinator,
	ProvideSkillCoordinator,
	ProvideCollectionUpdateService,
	ProvideSkillUpdateService,
	ProvideApplier,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config, lookup changelist.ExplorationSummaryLookup) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
