package di

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"editor-backend/application/changelist"
	"editor-backend/application/services"
	"editor-backend/application/undoredo"
	"editor-backend/domain/changes"
	"editor-backend/domain/core/aggregates"
	"editor-backend/infrastructure/config"
	"editor-backend/pkg/observability"
)

// ProvideLogLevel creates the level shared by the logger and the config watcher
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, err
	}
	return zap.NewAtomicLevelAt(level), nil
}

// ProvideLogger creates the application logger
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level
	zcfg.Encoding = cfg.LogFormat

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("environment", cfg.Environment)), nil
}

// ProvideWatcher creates the config file watcher that feeds level, or nil
// when the configuration did not come from a file
func ProvideWatcher(cfg *config.Config, level zap.AtomicLevel, logger *zap.Logger) (*config.Watcher, error) {
	if cfg.ConfigFile == "" {
		return nil, nil
	}
	return config.NewWatcher(cfg, level, logger)
}

// ProvideMetrics creates the metrics collector, or nil when metrics are off
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.MetricsEnabled {
		return nil
	}
	return observability.NewCollector(cfg.MetricsNamespace)
}

// ProvideTracer returns the tracer used for change list replay
func ProvideTracer() trace.Tracer {
	return otel.Tracer("editor-backend")
}

// ProvideCollectionCoordinator creates the undo/redo coordinator for collections
func ProvideCollectionCoordinator(logger *zap.Logger, metrics *observability.Collector) *undoredo.Coordinator[*aggregates.Collection] {
	return undoredo.NewCoordinator[*aggregates.Collection](changes.AggregateCollection, logger, metrics)
}

// ProvideSkillCoordinator creates the undo/redo coordinator for skills
func ProvideSkillCoordinator(logger *zap.Logger, metrics *observability.Collector) *undoredo.Coordinator[*aggregates.Skill] {
	return undoredo.NewCoordinator[*aggregates.Skill](changes.AggregateSkill, logger, metrics)
}

// ProvideCollectionUpdateService creates the collection update service
func ProvideCollectionUpdateService(
	coordinator *undoredo.Coordinator[*aggregates.Collection],
	logger *zap.Logger,
) *services.CollectionUpdateService {
	return services.NewCollectionUpdateService(coordinator, logger)
}

// ProvideSkillUpdateService creates the skill update service
func ProvideSkillUpdateService(
	coordinator *undoredo.Coordinator[*aggregates.Skill],
	logger *zap.Logger,
) *services.SkillUpdateService {
	return services.NewSkillUpdateService(coordinator, logger)
}

// ProvideApplier creates the change list applier
func ProvideApplier(
	lookup changelist.ExplorationSummaryLookup,
	tracer trace.Tracer,
	metrics *observability.Collector,
	logger *zap.Logger,
) *changelist.Applier {
	return changelist.NewApplier(lookup, tracer, metrics, logger)
}
