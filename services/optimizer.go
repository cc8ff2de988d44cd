// ABOUTME: Population-based menu optimizer with elitism, tournament selection and mutation
// ABOUTME: Parallel fitness evaluation per generation; cancellation returns the best so far

package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// OptimizerConfig tunes one optimization run
type OptimizerConfig struct {
	PopulationSize       int     `json:"population_size"`
	Generations          int     `json:"generations"`
	EliteFraction        float64 `json:"elite_fraction"`
	MutationRate         float64 `json:"mutation_rate"`
	TournamentSize       int     `json:"tournament_size"`
	CrossoverProbability float64 `json:"crossover_probability"` // below 1, some children clone their first parent
	Workers              int     `json:"workers"`
	Seed                 uint64  `json:"seed"` // 0 draws a random seed
}

// StandardOptimizerConfig is the default preset
func StandardOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		PopulationSize:       50,
		Generations:          100,
		EliteFraction:        0.2,
		MutationRate:         0.1,
		TournamentSize:       3,
		CrossoverProbability: 1,
	}
}

// EnhancedOptimizerConfig searches longer with a larger population
func EnhancedOptimizerConfig() OptimizerConfig {
	cfg := StandardOptimizerConfig()
	cfg.PopulationSize = 100
	cfg.Generations = 200
	return cfg
}

// OptimizerOverrides replaces preset values. Zero counts and nil rates keep
// the preset.
type OptimizerOverrides struct {
	PopulationSize int
	Generations    int
	MutationRate   *float64
	EliteFraction  *float64
}

// Apply returns c with the overrides set
func (c OptimizerConfig) Apply(o OptimizerOverrides) OptimizerConfig {
	if o.PopulationSize > 0 {
		c.PopulationSize = o.PopulationSize
	}
	if o.Generations > 0 {
		c.Generations = o.Generations
	}
	if o.MutationRate != nil {
		c.MutationRate = *o.MutationRate
	}
	if o.EliteFraction != nil {
		c.EliteFraction = *o.EliteFraction
	}
	return c
}

// Validate reports an unusable configuration as a ConfigurationError
func (c OptimizerConfig) Validate() error {
	if c.PopulationSize < 2 {
		return models.NewConfigurationError("population_size", fmt.Sprintf("must be at least 2, got %d", c.PopulationSize))
	}
	if c.Generations < 0 {
		return models.NewConfigurationError("generations", fmt.Sprintf("must not be negative, got %d", c.Generations))
	}
	if c.EliteFraction < 0 || c.EliteFraction > 1 {
		return models.NewConfigurationError("elite_fraction", fmt.Sprintf("must be within [0,1], got %g", c.EliteFraction))
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return models.NewConfigurationError("mutation_rate", fmt.Sprintf("must be within [0,1], got %g", c.MutationRate))
	}
	if c.CrossoverProbability < 0 || c.CrossoverProbability > 1 {
		return models.NewConfigurationError("crossover_probability", fmt.Sprintf("must be within [0,1], got %g", c.CrossoverProbability))
	}
	if c.TournamentSize < 1 {
		return models.NewConfigurationError("tournament_size", fmt.Sprintf("must be at least 1, got %d", c.TournamentSize))
	}
	return nil
}

// EliteCount returns the number of candidates carried over unchanged; at least one
func (c OptimizerConfig) EliteCount() int {
	n := int(c.EliteFraction * float64(c.PopulationSize))
	if n < 1 {
		n = 1
	}
	if n > c.PopulationSize {
		n = c.PopulationSize
	}
	return n
}

// Observer receives each evaluated generation. Generation 0 is the initial
// population. The slices are owned by the optimizer and must not be retained.
type Observer func(generation int, population []Candidate, fitness []float64)

// OptimizationResult is the outcome of a run
type OptimizationResult struct {
	Best        Candidate
	Fitness     float64
	History     []float64 // best fitness per generation, starting with the initial population
	Generations int       // completed generations after initialization
	Interrupted bool
	Seed        uint64
}

// Optimizer runs the generational search
type Optimizer struct {
	config   OptimizerConfig
	observer Observer
}

// NewOptimizer creates an optimizer for cfg
func NewOptimizer(cfg OptimizerConfig) *Optimizer {
	return &Optimizer{config: cfg}
}

// WithObserver attaches an observer callback
func (o *Optimizer) WithObserver(obs Observer) *Optimizer {
	o.observer = obs
	return o
}

// Run searches space for the fittest candidate. Cancellation of ctx is
// checked between generations and yields the best candidate found so far
// with Interrupted set; it is not an error.
func (o *Optimizer) Run(ctx context.Context, space *SearchSpace, eval *FitnessEvaluator) (OptimizationResult, error) {
	cfg := o.config
	if err := cfg.Validate(); err != nil {
		return OptimizationResult{}, err
	}
	if space == nil || space.Slots() == 0 {
		return OptimizationResult{}, models.NewConfigurationError("search_space", "no slots to fill")
	}

	seed := cfg.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > cfg.PopulationSize {
		workers = cfg.PopulationSize
	}
	scratch := make([]*EvalScratch, workers)
	for i := range scratch {
		scratch[i] = eval.NewScratch()
	}

	slog.Info("Optimization started",
		"population", cfg.PopulationSize,
		"generations", cfg.Generations,
		"slots", space.Slots(),
		"items", len(space.Items),
		"workers", workers,
		"seed", seed,
	)

	population := make([]Candidate, cfg.PopulationSize)
	for i := range population {
		population[i] = NewRandomCandidate(space, rng)
	}
	fitness := make([]float64, cfg.PopulationSize)
	if err := evaluatePopulation(eval, scratch, population, fitness); err != nil {
		return OptimizationResult{}, err
	}

	result := OptimizationResult{Seed: seed}
	result.Best, result.Fitness = bestOf(population, fitness)
	result.History = append(result.History, result.Fitness)
	if o.observer != nil {
		o.observer(0, population, fitness)
	}

	eliteCount := cfg.EliteCount()
	next := make([]Candidate, 0, cfg.PopulationSize)
	order := make([]int, cfg.PopulationSize)

	for gen := 1; gen <= cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			result.Interrupted = true
			slog.Warn("Optimization interrupted", "generation", gen-1, "best_fitness", result.Fitness, "reason", err)
			break
		}

		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return fitness[order[a]] > fitness[order[b]] })

		next = next[:0]
		for i := 0; i < eliteCount; i++ {
			next = append(next, population[order[i]].Clone())
		}
		for len(next) < cfg.PopulationSize {
			p1 := tournament(rng, population, fitness, cfg.TournamentSize)
			p2 := tournament(rng, population, fitness, cfg.TournamentSize)
			var child Candidate
			if rng.Float64() < cfg.CrossoverProbability {
				child = uniformCrossover(rng, population[p1], population[p2])
			} else {
				child = population[p1].Clone()
			}
			if rng.Float64() < cfg.MutationRate {
				mutate(rng, space, child)
			}
			next = append(next, child)
		}
		population, next = next, population

		if err := evaluatePopulation(eval, scratch, population, fitness); err != nil {
			return OptimizationResult{}, err
		}

		best, bestFitness := bestOf(population, fitness)
		if bestFitness > result.Fitness {
			result.Best, result.Fitness = best, bestFitness
		}
		result.History = append(result.History, bestFitness)
		result.Generations = gen
		if o.observer != nil {
			o.observer(gen, population, fitness)
		}
		slog.Debug("Generation evaluated", "generation", gen, "best_fitness", bestFitness)
	}

	result.Best = result.Best.Clone()
	slog.Info("Optimization finished",
		"generations", result.Generations,
		"best_fitness", result.Fitness,
		"interrupted", result.Interrupted,
	)
	return result, nil
}

// evaluatePopulation scores population into fitness, one contiguous chunk per
// worker. Returns once every chunk is done.
func evaluatePopulation(eval *FitnessEvaluator, scratch []*EvalScratch, population []Candidate, fitness []float64) error {
	var g errgroup.Group
	workers := len(scratch)
	chunk := (len(population) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(population) {
			break
		}
		end := min(start+chunk, len(population))
		s := scratch[w]
		g.Go(func() error {
			for i := start; i < end; i++ {
				fitness[i] = eval.EvaluateWith(s, population[i])
			}
			return nil
		})
	}
	return g.Wait()
}

func bestOf(population []Candidate, fitness []float64) (Candidate, float64) {
	best := 0
	for i := 1; i < len(fitness); i++ {
		if fitness[i] > fitness[best] {
			best = i
		}
	}
	return population[best], fitness[best]
}

func tournament(rng *rand.Rand, population []Candidate, fitness []float64, size int) int {
	best := rng.IntN(len(population))
	for i := 1; i < size; i++ {
		j := rng.IntN(len(population))
		if fitness[j] > fitness[best] {
			best = j
		}
	}
	return best
}

// uniformCrossover takes each slot from either parent with equal probability
func uniformCrossover(rng *rand.Rand, a, b Candidate) Candidate {
	genes := make([]int, len(a.Genes))
	for i := range genes {
		if rng.IntN(2) == 0 {
			genes[i] = a.Genes[i]
		} else {
			genes[i] = b.Genes[i]
		}
	}
	return Candidate{Genes: genes}
}

// mutate replaces one random slot with a random eligible item
func mutate(rng *rand.Rand, space *SearchSpace, c Candidate) {
	slot := rng.IntN(len(c.Genes))
	c.Genes[slot] = space.randomGene(rng, slot)
}
