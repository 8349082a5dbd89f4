package ruleval

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/discochess/ruleval/internal/codec/zstdcodec"
	"github.com/discochess/ruleval/internal/config"
	"github.com/discochess/ruleval/internal/presets"
	"github.com/discochess/ruleval/internal/stats"
	"github.com/discochess/ruleval/internal/store"
	"github.com/discochess/ruleval/internal/store/diskstore"
)

// Option configures an Evaluator.
type Option interface {
	apply(*options)
}

// options holds the evaluator configuration.
type options struct {
	doc       *config.Document
	weights   map[string]float64
	cacheSize int
	store     store.Store
	stats     stats.Collector
	logger    *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithDocument sets the initial ruleset from a JSON document.
// The document is parsed and validated eagerly so malformed rules
// fail here rather than at score time.
func WithDocument(data []byte) (Option, error) {
	doc, err := config.Parse(data)
	if err != nil {
		return nil, err
	}
	if _, _, err := doc.Build(); err != nil {
		return nil, fmt.Errorf("validating document: %w", err)
	}

	return optionFunc(func(o *options) {
		o.doc = doc
	}), nil
}

// WithPreset sets the initial ruleset to a named historical preset.
// See presets.Names for the available names.
func WithPreset(name string) (Option, error) {
	doc, err := presets.Load(name)
	if err != nil {
		return nil, err
	}

	return optionFunc(func(o *options) {
		o.doc = doc
	}), nil
}

// WithCategoryWeight overrides the multiplier for a rule category.
// May be repeated for different categories.
func WithCategoryWeight(category string, weight float64) Option {
	return optionFunc(func(o *options) {
		if o.weights == nil {
			o.weights = make(map[string]float64)
		}
		o.weights[category] = weight
	})
}

// WithCacheSize enables an LRU score cache holding up to n positions.
// Zero (the default) disables caching.
func WithCacheSize(n int) Option {
	return optionFunc(func(o *options) {
		o.cacheSize = n
	})
}

// WithRulesetStore sets the store used by LoadRuleset and SaveRuleset.
// The evaluator takes ownership and closes it on Close.
func WithRulesetStore(s store.Store) Option {
	return optionFunc(func(o *options) {
		o.store = s
	})
}

// WithDataDir configures a disk-backed ruleset store with zstd
// compression rooted at dir. This is the recommended way to persist
// rulesets locally.
func WithDataDir(dir string) (Option, error) {
	zc, err := zstdcodec.New()
	if err != nil {
		return nil, fmt.Errorf("creating codec: %w", err)
	}
	st, err := diskstore.New(dir, zc)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	return optionFunc(func(o *options) {
		o.store = st
	}), nil
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}
