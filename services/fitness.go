// ABOUTME: Composite fitness for menu candidates: nutrition, cost, environment, variety
// ABOUTME: Allocation-light evaluation using per-worker scratch buffers and generation stamps

package services

import (
	"math"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// Scoring constants
const (
	nutrientBandLow      = 0.8
	nutrientBandHigh     = 1.2
	nutrientExcessSlope  = 0.5
	nutrientExcessFloor  = 0.6
	carbonReferenceKg    = 5.0
	varietyItemShare     = 0.6
	varietyIngredientCap = 20.0
)

// FitnessWeights weighs the sub-scores. The composite divides by the sum,
// so any non-negative weights keep fitness in [0, 1].
type FitnessWeights struct {
	Nutrition   float64 `json:"nutrition"`
	Cost        float64 `json:"cost"`
	Environment float64 `json:"environment"`
	Variety     float64 `json:"variety"`
	Convenience float64 `json:"convenience"`
}

// DefaultFitnessWeights is used by the standard preset
func DefaultFitnessWeights() FitnessWeights {
	return FitnessWeights{Nutrition: 0.5, Cost: 0.2, Environment: 0.2, Variety: 0.1}
}

// EnhancedFitnessWeights adds cooking-time convenience
func EnhancedFitnessWeights() FitnessWeights {
	return FitnessWeights{Nutrition: 0.45, Cost: 0.2, Environment: 0.15, Variety: 0.1, Convenience: 0.1}
}

func (w FitnessWeights) sum() float64 {
	return math.Max(0, w.Nutrition) + math.Max(0, w.Cost) + math.Max(0, w.Environment) +
		math.Max(0, w.Variety) + math.Max(0, w.Convenience)
}

// BudgetCeilings maps a budget tier to a weekly cost ceiling per person
type BudgetCeilings map[models.BudgetTier]float64

// DefaultBudgetCeilings returns the weekly per-person ceilings
func DefaultBudgetCeilings() BudgetCeilings {
	return BudgetCeilings{
		models.BudgetLow:    50,
		models.BudgetMedium: 80,
		models.BudgetHigh:   120,
	}
}

// Ceiling returns the cost ceiling for a whole menu
func (b BudgetCeilings) Ceiling(tier models.BudgetTier, days, people int) float64 {
	weekly, ok := b[tier]
	if !ok {
		weekly = DefaultBudgetCeilings()[models.BudgetMedium]
	}
	return weekly * float64(days) / 7 * float64(people)
}

// NutrientScore maps an actual/target ratio to [0, 1]: full marks inside
// the 80-120% band, linear below it, gently decreasing above it.
func NutrientScore(ratio float64) float64 {
	switch {
	case math.IsNaN(ratio) || ratio <= 0:
		return 0
	case ratio < nutrientBandLow:
		return ratio
	case ratio <= nutrientBandHigh:
		return 1
	default:
		return math.Max(nutrientExcessFloor, 1-(ratio-nutrientBandHigh)*nutrientExcessSlope)
	}
}

// FitnessBreakdown exposes the sub-scores behind a composite fitness
type FitnessBreakdown struct {
	Nutrition   float64 `json:"nutrition"`
	Cost        float64 `json:"cost"`
	Environment float64 `json:"environment"`
	Variety     float64 `json:"variety"`
	Convenience float64 `json:"convenience"`
	Total       float64 `json:"total"`
}

// FitnessEvaluator scores candidates against one profile's targets.
// Safe for concurrent use when each goroutine owns its EvalScratch.
type FitnessEvaluator struct {
	space        *SearchSpace
	targets      models.NutrientProfile
	weights      FitnessWeights
	weightSum    float64
	people       int
	ceiling      float64
	cookingLimit int
}

// NewFitnessEvaluator binds the evaluator to a search space and preferences.
// prefs is expected to have defaults applied.
func NewFitnessEvaluator(space *SearchSpace, targets models.RequirementTargets, prefs models.Preferences, weights FitnessWeights, ceilings BudgetCeilings) *FitnessEvaluator {
	if ceilings == nil {
		ceilings = DefaultBudgetCeilings()
	}
	people := prefs.People
	if people <= 0 {
		people = 1
	}
	return &FitnessEvaluator{
		space:        space,
		targets:      targets.Daily,
		weights:      weights,
		weightSum:    weights.sum(),
		people:       people,
		ceiling:      ceilings.Ceiling(prefs.BudgetTier, space.Days, people),
		cookingLimit: prefs.CookingTime.MaxMinutes(),
	}
}

// Weights returns the evaluator's weights
func (e *FitnessEvaluator) Weights() FitnessWeights {
	return e.weights
}

// EvalScratch holds reusable buffers for one evaluating goroutine
type EvalScratch struct {
	itemStamp       []uint32
	ingredientStamp []uint32
	stamp           uint32
}

// NewScratch allocates scratch sized for the evaluator's search space
func (e *FitnessEvaluator) NewScratch() *EvalScratch {
	return &EvalScratch{
		itemStamp:       make([]uint32, len(e.space.Items)),
		ingredientStamp: make([]uint32, e.space.numIngredients),
	}
}

func (s *EvalScratch) next() uint32 {
	s.stamp++
	if s.stamp == 0 {
		clear(s.itemStamp)
		clear(s.ingredientStamp)
		s.stamp = 1
	}
	return s.stamp
}

// Evaluate returns the composite fitness in [0, 1]. It allocates a scratch
// per call; hot loops should use EvaluateWith.
func (e *FitnessEvaluator) Evaluate(c Candidate) float64 {
	return e.EvaluateWith(e.NewScratch(), c)
}

// EvaluateWith returns the composite fitness using caller-owned scratch
func (e *FitnessEvaluator) EvaluateWith(s *EvalScratch, c Candidate) float64 {
	return e.breakdown(s, c).Total
}

// Breakdown returns the sub-scores and composite for c
func (e *FitnessEvaluator) Breakdown(c Candidate) FitnessBreakdown {
	return e.breakdown(e.NewScratch(), c)
}

// Totals sums per-serving nutrients over every filled slot
func (e *FitnessEvaluator) Totals(c Candidate) models.NutrientProfile {
	var total models.NutrientProfile
	for _, idx := range c.Genes {
		if idx == EmptySlot {
			continue
		}
		total = total.Add(e.space.Items[idx].Nutrients)
	}
	return total
}

func (e *FitnessEvaluator) breakdown(s *EvalScratch, c Candidate) FitnessBreakdown {
	stamp := s.next()

	var (
		totals      models.NutrientProfile
		cost        float64
		carbon      float64
		filled      int
		unique      int
		ingredients int
		convenient  int
	)

	for _, idx := range c.Genes {
		if idx < 0 || idx >= len(e.space.Items) {
			continue
		}
		item := &e.space.Items[idx]
		filled++
		totals = totals.Add(item.Nutrients)
		cost += item.CostPerServing
		carbon += item.CarbonFootprint
		if e.cookingLimit == 0 || item.CookingMinutes <= e.cookingLimit {
			convenient++
		}
		if s.itemStamp[idx] != stamp {
			s.itemStamp[idx] = stamp
			unique++
			for _, ing := range e.space.ingredientIDs[idx] {
				if s.ingredientStamp[ing] != stamp {
					s.ingredientStamp[ing] = stamp
					ingredients++
				}
			}
		}
	}

	if filled == 0 || e.weightSum <= 0 {
		return FitnessBreakdown{}
	}

	b := FitnessBreakdown{
		Nutrition:   e.nutritionScore(totals),
		Cost:        e.costScore(cost * float64(e.people)),
		Environment: math.Max(0, 1-(carbon/float64(filled))/carbonReferenceKg),
		Variety:     varietyScore(unique, ingredients, len(c.Genes)),
		Convenience: float64(convenient) / float64(filled),
	}

	w := e.weights
	total := math.Max(0, w.Nutrition)*b.Nutrition +
		math.Max(0, w.Cost)*b.Cost +
		math.Max(0, w.Environment)*b.Environment +
		math.Max(0, w.Variety)*b.Variety +
		math.Max(0, w.Convenience)*b.Convenience
	b.Total = clamp01(total / e.weightSum)
	return b
}

// nutritionScore averages NutrientScore over nutrients with a positive
// target, comparing the daily average against the daily target
func (e *FitnessEvaluator) nutritionScore(totals models.NutrientProfile) float64 {
	days := float64(e.space.Days)
	var sum float64
	n := 0
	for _, nut := range models.TrackedNutrients {
		target := e.targets.Get(nut)
		if target <= 0 {
			continue
		}
		sum += NutrientScore(totals.Get(nut) / days / target)
		n++
	}
	if n == 0 {
		return 0
	}
	return clamp01(sum / float64(n))
}

func (e *FitnessEvaluator) costScore(total float64) float64 {
	if e.ceiling <= 0 {
		return 1
	}
	over := math.Max(0, total-e.ceiling)
	return math.Max(0, 1-over/e.ceiling)
}

func varietyScore(unique, ingredients, slots int) float64 {
	if slots == 0 {
		return 0
	}
	itemShare := float64(unique) / float64(slots)
	ingShare := math.Min(1, float64(ingredients)/varietyIngredientCap)
	return math.Min(1, varietyItemShare*itemShare+(1-varietyItemShare)*ingShare)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
