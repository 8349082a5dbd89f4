package analysis

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/discochess/ruleval"
)

// ScoreAll evaluates every position from White's perspective and
// returns the scores position-aligned with fens. Evaluation fans out
// across workers goroutines; zero means GOMAXPROCS.
func ScoreAll(ctx context.Context, eval *ruleval.Evaluator, fens []string, workers int) ([]float64, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	scores := make([]float64, len(fens))
	indexes := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(indexes)
		for i := range fens {
			select {
			case indexes <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range indexes {
				score, err := eval.Score(fens[i], ruleval.White)
				if err != nil {
					return fmt.Errorf("scoring position %d: %w", i, err)
				}
				scores[i] = score
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
