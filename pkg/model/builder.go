package model

import (
	"log/slog"

	"github.com/goliatone/go-modelgen/internal/model"
	"github.com/goliatone/go-modelgen/pkg/jsonvalue"
)

// Builder infers a Schema from a sample value.
type Builder interface {
	Build(value jsonvalue.Value, rootName string) Schema
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	collision CollisionPolicy
	logger    *slog.Logger
	reserved  []string
}

// WithCollisionPolicy selects how clashing derived record names are settled.
func WithCollisionPolicy(policy CollisionPolicy) BuilderOption {
	return func(opts *builderOptions) {
		opts.collision = policy
	}
}

// WithLogger routes builder diagnostics (qualified names, overwrites) to the
// supplied logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// WithReservedNames replaces the names nested records may not take under
// CollisionQualify (BaseModel, Field and Any by default). Calling it with no
// names lifts every reservation except the root name.
func WithReservedNames(names ...string) BuilderOption {
	return func(opts *builderOptions) {
		opts.reserved = append([]string{}, names...)
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return model.New(model.Options{
		Collision: cfg.collision,
		Logger:    cfg.logger,
		Reserved:  cfg.reserved,
	})
}
