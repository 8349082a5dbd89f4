// Package rulevalfx provides an fx module for a configured evaluator.
package rulevalfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/ruleval"
	"github.com/discochess/ruleval/internal/codec/zstdcodec"
	"github.com/discochess/ruleval/internal/stats"
	"github.com/discochess/ruleval/internal/stats/logger"
	"github.com/discochess/ruleval/internal/store/cachedstore"
	"github.com/discochess/ruleval/internal/store/diskstore"
)

// Config holds configuration for the evaluator.
type Config struct {
	// Preset names the initial ruleset. Ignored when Document is set.
	Preset string

	// Document is an initial ruleset JSON document.
	Document []byte

	// DataDir, when set, enables a disk-backed ruleset library for
	// LoadRuleset and SaveRuleset.
	DataDir string

	// RulesetCacheSize is the number of decoded ruleset documents to
	// cache in front of the disk store. Default is 16.
	RulesetCacheSize int

	// ScoreCacheSize is the number of scored positions to cache.
	// Zero disables the score cache.
	ScoreCacheSize int
}

// Module provides a *ruleval.Evaluator.
// Requires a *zap.Logger and a Config to be provided.
var Module = fx.Module("ruleval",
	fx.Provide(
		newStatsCollector,
		newEvaluator,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("ruleval.stats"))
}

// Params holds dependencies for creating the evaluator.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided evaluator.
type Result struct {
	fx.Out

	Evaluator *ruleval.Evaluator
}

func newEvaluator(p Params) (Result, error) {
	opts := []ruleval.Option{
		ruleval.WithStats(p.Collector),
		ruleval.WithLogger(p.Logger.Named("ruleval")),
	}

	switch {
	case p.Config.Document != nil:
		opt, err := ruleval.WithDocument(p.Config.Document)
		if err != nil {
			return Result{}, err
		}
		opts = append(opts, opt)
	default:
		preset := p.Config.Preset
		if preset == "" {
			preset = "shannon1950"
		}
		opt, err := ruleval.WithPreset(preset)
		if err != nil {
			return Result{}, err
		}
		opts = append(opts, opt)
	}

	if p.Config.DataDir != "" {
		zc, err := zstdcodec.New()
		if err != nil {
			return Result{}, err
		}
		base, err := diskstore.New(p.Config.DataDir, zc)
		if err != nil {
			return Result{}, err
		}

		cacheSize := p.Config.RulesetCacheSize
		if cacheSize <= 0 {
			cacheSize = 16
		}
		st, err := cachedstore.New(base, cacheSize)
		if err != nil {
			return Result{}, err
		}
		opts = append(opts, ruleval.WithRulesetStore(st))
	}

	if p.Config.ScoreCacheSize > 0 {
		opts = append(opts, ruleval.WithCacheSize(p.Config.ScoreCacheSize))
	}

	eval, err := ruleval.New(opts...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return eval.Close()
		},
	})

	return Result{Evaluator: eval}, nil
}
