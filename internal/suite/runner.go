// Package suite runs every allocation strategy over one shared parameter set.
package suite

import (
	"sync"

	"btc-mining-sim/internal/model"
	"btc-mining-sim/internal/simulation"
)

type Runner struct {
	engine *simulation.Engine
}

func NewRunner() *Runner {
	return &Runner{engine: simulation.New()}
}

// Result holds one simulation result per strategy, in suite order.
type Result struct {
	Runs []*simulation.Result
}

// Records concatenates the yearly records of all runs.
func (r *Result) Records() []model.YearlyRecord {
	n := 0
	for _, run := range r.Runs {
		n += len(run.Records)
	}
	out := make([]model.YearlyRecord, 0, n)
	for _, run := range r.Runs {
		out = append(out, run.Records...)
	}
	return out
}

// Run returns the run for strategy s, or nil.
func (r *Result) Run(s model.Strategy) *simulation.Result {
	for _, run := range r.Runs {
		if run.Strategy == s {
			return run
		}
	}
	return nil
}

// RunOne simulates a single strategy on params.
func (r *Runner) RunOne(s model.Strategy, params model.SimulationParameters) (*simulation.Result, error) {
	params.Strategy = s
	return r.engine.Run(params)
}

// RunAll simulates every strategy on template. Runs are independent and
// execute concurrently; output order is always model.AllStrategies().
func (r *Runner) RunAll(template model.SimulationParameters) (*Result, error) {
	return r.RunSet(model.AllStrategies(), template)
}

// RunSet is RunAll restricted to strategies.
func (r *Runner) RunSet(strategies []model.Strategy, template model.SimulationParameters) (*Result, error) {
	runs := make([]*simulation.Result, len(strategies))
	errs := make([]error, len(strategies))

	var wg sync.WaitGroup
	for i, s := range strategies {
		wg.Add(1)
		go func(i int, s model.Strategy) {
			defer wg.Done()
			runs[i], errs[i] = r.RunOne(s, template)
		}(i, s)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &Result{Runs: runs}, nil
}

// RunInputs filters a raw bundle onto base and runs the whole suite.
func (r *Runner) RunInputs(base model.SimulationParameters, in Inputs) (*Result, error) {
	params, err := FilterInputs(base, in)
	if err != nil {
		return nil, err
	}
	return r.RunAll(params)
}
