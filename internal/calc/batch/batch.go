package batch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"Boltcalc/internal/calc/boltgroup"
	"Boltcalc/internal/logging"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Case is one named load applied to the shared bolt pattern.
type Case struct {
	Name string         `json:"name"`
	Load boltgroup.Load `json:"load"`
}

type Input struct {
	Bolts         []boltgroup.Bolt `json:"bolts"`
	Method        boltgroup.Method `json:"method"`
	BoltCapacity  float64          `json:"bolt_capacity"`
	Tolerance     float64          `json:"tolerance"`
	MaxIterations int              `json:"max_iterations"`
	Cases         []Case           `json:"cases"`
}

type CaseResult struct {
	Name   string            `json:"name"`
	Result *boltgroup.Result `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

type Result struct {
	Results []CaseResult `json:"results"`
	Failed  int          `json:"failed"`
	// Governing names the case with the highest utilization, or with the
	// largest bolt resultant when no capacity is given.
	Governing string `json:"governing,omitempty"`
}

// Calculate evaluates every case against its own copy of the bolt pattern
// using at most workers goroutines (GOMAXPROCS when workers <= 0). A failing
// case is reported in its CaseResult and does not stop the others.
func Calculate(ctx context.Context, in Input, workers int) (Result, error) {
	if len(in.Cases) == 0 {
		return Result{}, fmt.Errorf("no load cases")
	}
	if len(in.Bolts) == 0 {
		return Result{}, fmt.Errorf("no bolts")
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := logging.FromContext(ctx)
	start := time.Now()

	out := Result{Results: make([]CaseResult, len(in.Cases))}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, c := range in.Cases {
		eg.Go(func() error {
			bolts := make([]boltgroup.Bolt, len(in.Bolts))
			copy(bolts, in.Bolts)
			res, err := boltgroup.CalculateContext(egCtx, boltgroup.Input{
				Bolts:         bolts,
				Load:          c.Load,
				Method:        in.Method,
				BoltCapacity:  in.BoltCapacity,
				Tolerance:     in.Tolerance,
				MaxIterations: in.MaxIterations,
			})
			cr := CaseResult{Name: caseName(i, c)}
			if err != nil {
				if ctxErr := egCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Debug("load case failed", zap.String("case", cr.Name), zap.Error(err))
				cr.Error = err.Error()
			} else {
				cr.Result = &res
			}
			out.Results[i] = cr
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}

	worst := -1.0
	for _, cr := range out.Results {
		if cr.Result == nil {
			out.Failed++
			continue
		}
		score := cr.Result.MaxResultant
		if in.BoltCapacity > 0 {
			score = cr.Result.Utilization
		}
		if score > worst {
			worst = score
			out.Governing = cr.Name
		}
	}
	log.Info("batch evaluated",
		zap.Int("cases", len(in.Cases)),
		zap.Int("failed", out.Failed),
		zap.String("governing", out.Governing),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

func caseName(i int, c Case) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("case %d", i+1)
}
