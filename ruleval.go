// Package ruleval scores chess positions with user-configurable
// evaluation rules.
//
// Example usage:
//
//	preset, err := ruleval.WithPreset("shannon1950")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	eval, err := ruleval.New(preset)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eval.Close()
//
//	score, err := eval.Score("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ruleval.White)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Score: %+.0f centipawns\n", score)
package ruleval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/discochess/ruleval/internal/board"
	"github.com/discochess/ruleval/internal/config"
	"github.com/discochess/ruleval/internal/rules"
	"github.com/discochess/ruleval/internal/scorecache"
	"github.com/discochess/ruleval/internal/stats"
	"github.com/discochess/ruleval/internal/store"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrNoRules indicates no ruleset was provided at construction.
	ErrNoRules = errors.New("ruleval: no rules provided")

	// ErrClosed indicates the evaluator has been closed.
	ErrClosed = errors.New("ruleval: evaluator closed")

	// ErrNoStore indicates a persistence operation was attempted
	// without a configured ruleset store.
	ErrNoStore = errors.New("ruleval: no ruleset store provided")

	// ErrNotFound indicates the named ruleset is not in the store.
	ErrNotFound = errors.New("ruleval: ruleset not found")

	// ErrInvalidWeight indicates a non-finite category weight.
	ErrInvalidWeight = errors.New("ruleval: category weight must be finite")
)

// Color selects the perspective a position is scored from.
type Color int

const (
	White Color = Color(board.White)
	Black Color = Color(board.Black)
)

func (c Color) String() string {
	return board.Color(c).String()
}

// snapshot is an immutable view of the evaluator's configuration.
// Edits build a new snapshot and publish it atomically, so in-flight
// evaluations always see a consistent rule list.
type snapshot struct {
	doc        *config.Document
	rules      []*rules.Rule
	weights    map[rules.Category]float64
	generation uint64
}

// Evaluator scores positions against a configured ruleset.
// An Evaluator is safe for concurrent use by multiple goroutines.
type Evaluator struct {
	snap       atomic.Pointer[snapshot]
	generation atomic.Uint64
	cache      *scorecache.Cache
	store      store.Store
	stats      stats.Collector
	logger     *zap.Logger
	closed     atomic.Bool
}

// New creates a new Evaluator with the given options. A ruleset must
// be supplied via WithDocument or WithPreset.
func New(opts ...Option) (*Evaluator, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.doc == nil {
		return nil, ErrNoRules
	}

	e := &Evaluator{
		store:  cfg.store,
		stats:  cfg.stats,
		logger: cfg.logger,
	}

	if cfg.cacheSize > 0 {
		cache, err := scorecache.New(cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating score cache: %w", err)
		}
		e.cache = cache
	}

	if err := e.install(cfg.doc); err != nil {
		return nil, err
	}
	for category, weight := range cfg.weights {
		if err := e.SetCategoryWeight(category, weight); err != nil {
			return nil, err
		}
	}

	snap := e.snap.Load()
	e.logger.Debug("evaluator initialized",
		zap.String("ruleset", snap.doc.Name),
		zap.Int("rules", len(snap.rules)),
		zap.Int("cacheSize", cfg.cacheSize),
	)

	return e, nil
}

// Score evaluates a FEN position from the given perspective and
// returns the total in centipawns. The hot path never fails for a
// well-formed FEN; all rule validation happens at load time.
func (e *Evaluator) Score(fen string, color Color) (float64, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		return 0, fmt.Errorf("parsing position: %w", err)
	}

	snap := e.snap.Load()
	e.stats.IncCounter(stats.MetricEvaluations, 1)

	var key scorecache.Key
	if e.cache != nil {
		key = scorecache.Key{
			PositionHash: pos.Hash(),
			Color:        uint8(color),
			Generation:   snap.generation,
		}
		if score, ok := e.cache.Get(key); ok {
			e.stats.IncCounter(stats.MetricCacheHits, 1)
			return score, nil
		}
		e.stats.IncCounter(stats.MetricCacheMisses, 1)
	}

	score := e.evaluate(&pos, board.Color(color), snap)
	e.stats.ObserveHistogram(stats.MetricScore, score)

	if e.cache != nil {
		e.cache.Add(key, score)
		e.stats.SetGauge(stats.MetricCacheSize, int64(e.cache.Len()))
	}
	return score, nil
}

// evaluate runs every enabled rule against the position and sums the
// category-weighted contributions.
func (e *Evaluator) evaluate(pos *board.Position, color board.Color, snap *snapshot) float64 {
	baseCtx := rules.NewContext(pos, color)

	var total float64
	var applied, gated int64
	for _, r := range snap.rules {
		if !r.Enabled || r.Condition == nil || r.Target == nil || r.Value == nil {
			continue
		}
		if !r.Condition.Evaluate(baseCtx) {
			gated++
			continue
		}
		applied++

		var sum float64
		for _, ctx := range r.Target.Select(baseCtx) {
			sum += r.Value.Compute(ctx.Measurement)
		}
		total += sum * snap.weight(r.Category)
	}

	if applied > 0 {
		e.stats.IncCounter(stats.MetricRulesApplied, applied)
	}
	if gated > 0 {
		e.stats.IncCounter(stats.MetricRulesGated, gated)
	}
	return total
}

// RuleScore is one rule's contribution to a Breakdown.
type RuleScore struct {
	ID       string
	Name     string
	Category string
	Matched  bool
	Raw      float64
	Weighted float64
}

// Breakdown explains how a score decomposes across rules and
// categories. Rules appear in insertion order; gated rules are listed
// with Matched false and zero contribution.
type Breakdown struct {
	Total      float64
	Rules      []RuleScore
	Categories map[string]float64
}

// Explain evaluates a FEN position like Score but returns the per-rule
// and per-category contributions. It bypasses the score cache.
func (e *Evaluator) Explain(fen string, color Color) (*Breakdown, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parsing position: %w", err)
	}

	snap := e.snap.Load()
	baseCtx := rules.NewContext(&pos, board.Color(color))

	b := &Breakdown{
		Rules:      make([]RuleScore, 0, len(snap.rules)),
		Categories: make(map[string]float64),
	}
	for _, r := range snap.rules {
		rs := RuleScore{
			ID:       r.ID,
			Name:     r.Name,
			Category: r.Category.String(),
		}
		ok := r.Enabled && r.Condition != nil && r.Target != nil && r.Value != nil &&
			r.Condition.Evaluate(baseCtx)
		if ok {
			rs.Matched = true
			for _, ctx := range r.Target.Select(baseCtx) {
				rs.Raw += r.Value.Compute(ctx.Measurement)
			}
			rs.Weighted = rs.Raw * snap.weight(r.Category)
			b.Total += rs.Weighted
			b.Categories[rs.Category] += rs.Weighted
		}
		b.Rules = append(b.Rules, rs)
	}
	return b, nil
}

// SetRules replaces the active ruleset with the given JSON document.
// In-flight evaluations finish against the previous ruleset.
func (e *Evaluator) SetRules(data []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}

	doc, err := config.Parse(data)
	if err != nil {
		return err
	}
	return e.install(doc)
}

// SetCategoryWeight sets the multiplier applied to every rule in a
// category. Any finite weight is accepted; the default is 1.0.
func (e *Evaluator) SetCategoryWeight(category string, weight float64) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return ErrInvalidWeight
	}

	cat := rules.ParseCategory(category)
	old := e.snap.Load()

	weights := make(map[rules.Category]float64, len(old.weights)+1)
	for k, v := range old.weights {
		weights[k] = v
	}
	weights[cat] = weight

	// Keep the document in sync so SaveRuleset round-trips the edit.
	doc := *old.doc
	doc.CategoryWeights = make(map[string]float64, len(weights))
	for k, v := range weights {
		doc.CategoryWeights[k.String()] = v
	}

	e.publish(&snapshot{
		doc:     &doc,
		rules:   old.rules,
		weights: weights,
	})
	return nil
}

// Document returns the active ruleset serialized to its JSON document
// form. The output round-trips through SetRules losslessly.
func (e *Evaluator) Document() ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	return e.snap.Load().doc.Marshal()
}

// LoadRuleset replaces the active ruleset with a named document from
// the configured store.
func (e *Evaluator) LoadRuleset(ctx context.Context, name string) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if e.store == nil {
		return ErrNoStore
	}

	e.stats.IncCounter(stats.MetricStoreReads, 1)
	data, err := e.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading ruleset %q: %w", name, err)
	}

	doc, err := config.Parse(data)
	if err != nil {
		return fmt.Errorf("loading ruleset %q: %w", name, err)
	}
	if err := e.install(doc); err != nil {
		return fmt.Errorf("loading ruleset %q: %w", name, err)
	}

	e.logger.Info("ruleset loaded", zap.String("name", name))
	return nil
}

// SaveRuleset persists the active ruleset under the given name.
func (e *Evaluator) SaveRuleset(ctx context.Context, name string) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if e.store == nil {
		return ErrNoStore
	}

	data, err := e.snap.Load().doc.Marshal()
	if err != nil {
		return fmt.Errorf("saving ruleset %q: %w", name, err)
	}

	e.stats.IncCounter(stats.MetricStoreWrites, 1)
	if err := e.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("saving ruleset %q: %w", name, err)
	}

	e.logger.Info("ruleset saved", zap.String("name", name))
	return nil
}

// ListRulesets returns the names of the rulesets in the store.
func (e *Evaluator) ListRulesets(ctx context.Context) ([]string, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if e.store == nil {
		return nil, ErrNoStore
	}
	return e.store.List(ctx)
}

// RulesetName returns the name of the active ruleset document.
func (e *Evaluator) RulesetName() string {
	return e.snap.Load().doc.Name
}

// ActiveRules returns the number of enabled rules.
func (e *Evaluator) ActiveRules() int {
	var n int
	for _, r := range e.snap.Load().rules {
		if r.Enabled {
			n++
		}
	}
	return n
}

// Store returns the ruleset store, or nil if none was configured.
func (e *Evaluator) Store() store.Store {
	return e.store
}

// Close releases all resources associated with the evaluator.
// After Close, the evaluator should not be used.
func (e *Evaluator) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if e.cache != nil {
		e.cache.Purge()
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			return fmt.Errorf("closing store: %w", err)
		}
	}
	return nil
}

// install builds a document into rules and publishes it as the active
// snapshot.
func (e *Evaluator) install(doc *config.Document) error {
	built, weights, err := doc.Build()
	if err != nil {
		return fmt.Errorf("building rules: %w", err)
	}

	e.publish(&snapshot{
		doc:     doc,
		rules:   built,
		weights: weights,
	})
	e.stats.SetGauge(stats.MetricActiveRules, int64(e.ActiveRules()))
	return nil
}

// publish stamps a fresh generation on the snapshot and swaps it in.
// The generation keys the score cache, so cached totals from previous
// configurations can never be served.
func (e *Evaluator) publish(snap *snapshot) {
	snap.generation = e.generation.Add(1)
	e.snap.Store(snap)
}

// weight returns the multiplier for a category, defaulting to 1.0.
func (s *snapshot) weight(c rules.Category) float64 {
	if w, ok := s.weights[c]; ok {
		return w
	}
	return 1
}
