// ABOUTME: Menu planner orchestrating requirements, filtering, optimization and reporting
// ABOUTME: Entry point behind the optimize endpoint and the CLI plan command

package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// maxEnrichmentConcurrency bounds parallel recipe lookups per menu
const maxEnrichmentConcurrency = 4

// CatalogSource is the read side of the item catalog
type CatalogSource interface {
	QueryByCategory(category models.MealCategory, pred func(models.CatalogItem) bool) []models.CatalogItem
}

// Enricher looks up preparation details for a chosen item
type Enricher interface {
	Lookup(ctx context.Context, item models.CatalogItem) (RecipeDetails, error)
}

// PlannerConfig holds the tunables of the planner
type PlannerConfig struct {
	Standard       OptimizerConfig
	Enhanced       OptimizerConfig
	DefaultPreset  models.OptimizerPreset // used when a request names none
	Timeout        time.Duration          // 0 disables the deadline
	BudgetCeilings BudgetCeilings
}

// DefaultPlannerConfig returns the preset configurations with a 30s deadline
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		Standard:       StandardOptimizerConfig(),
		Enhanced:       EnhancedOptimizerConfig(),
		DefaultPreset:  models.PresetStandard,
		Timeout:        30 * time.Second,
		BudgetCeilings: DefaultBudgetCeilings(),
	}
}

// MenuPlanner runs the full optimizeMenu pipeline
type MenuPlanner struct {
	catalog      CatalogSource
	requirements *RequirementsCalculator
	cfg          PlannerConfig
	enricher     Enricher
	observer     Observer
	now          func() time.Time
}

// NewMenuPlanner creates a planner over catalog
func NewMenuPlanner(catalog CatalogSource, requirements *RequirementsCalculator, cfg PlannerConfig) *MenuPlanner {
	if requirements == nil {
		requirements = NewRequirementsCalculator(DefaultLoseWeightFactor)
	}
	if cfg.BudgetCeilings == nil {
		cfg.BudgetCeilings = DefaultBudgetCeilings()
	}
	return &MenuPlanner{
		catalog:      catalog,
		requirements: requirements,
		cfg:          cfg,
		now:          time.Now,
	}
}

// WithEnricher enables recipe enrichment of the chosen items
func (p *MenuPlanner) WithEnricher(e Enricher) *MenuPlanner {
	p.enricher = e
	return p
}

// WithObserver forwards every generation to obs
func (p *MenuPlanner) WithObserver(obs Observer) *MenuPlanner {
	p.observer = obs
	return p
}

// Requirements computes daily targets for a profile
func (p *MenuPlanner) Requirements(profile models.UserProfile) (models.RequirementTargets, error) {
	return p.requirements.Calculate(profile)
}

// OptimizerConfigFor returns the optimizer configuration of a preset
func (p *MenuPlanner) OptimizerConfigFor(preset models.OptimizerPreset) OptimizerConfig {
	if preset == models.PresetEnhanced {
		return p.cfg.Enhanced
	}
	return p.cfg.Standard
}

// BuildSearchSpace filters every configured category and assembles the
// search space. A category left empty is a ConfigurationError.
func (p *MenuPlanner) BuildSearchSpace(prefs models.Preferences, restrictions models.DietaryRestrictions) (*SearchSpace, map[string]int, error) {
	pools := make(map[models.MealCategory][]models.CatalogItem, len(prefs.MealCategories))
	counts := make(map[string]int, len(prefs.MealCategories))
	for _, cat := range prefs.MealCategories {
		items := FilterItems(p.catalog.QueryByCategory(cat, nil), restrictions)
		if len(items) > 0 {
			timed, ok := CookingTimeFilter(items, prefs.CookingTime)
			if !ok {
				slog.Info("No items within cooking time, keeping full pool",
					"category", cat, "cooking_time", prefs.CookingTime, "items", len(items))
			}
			items = timed
		}
		pools[cat] = items
		counts[string(cat)] = len(items)
	}
	space, err := NewSearchSpace(pools, prefs.MealCategories, prefs.Days)
	if err != nil {
		return nil, counts, err
	}
	return space, counts, nil
}

// OptimizeMenu validates the request, searches for the best menu and
// returns it with its analysis. Only configuration problems are errors;
// a deadline yields the best menu found so far.
func (p *MenuPlanner) OptimizeMenu(ctx context.Context, req models.OptimizeRequest) (*models.OptimizeResponse, error) {
	started := p.now()

	prefs := req.Preferences
	if prefs.Preset == "" {
		prefs.Preset = p.cfg.DefaultPreset
	}
	prefs = prefs.WithDefaults()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	targets, err := p.requirements.Calculate(req.Profile)
	if err != nil {
		return nil, err
	}

	space, counts, err := p.BuildSearchSpace(prefs, req.Restrictions)
	if err != nil {
		return nil, err
	}

	optCfg := p.OptimizerConfigFor(prefs.Preset)
	weights := DefaultFitnessWeights()
	if prefs.Preset == models.PresetEnhanced {
		weights = EnhancedFitnessWeights()
	}
	if prefs.Seed != 0 {
		optCfg.Seed = prefs.Seed
	}

	eval := NewFitnessEvaluator(space, targets, prefs, weights, p.cfg.BudgetCeilings)

	runCtx := ctx
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	result, err := NewOptimizer(optCfg).WithObserver(p.observer).Run(runCtx, space, eval)
	if err != nil {
		return nil, err
	}

	menu := FormatMenu(space, result.Best, prefs)
	enriched := false
	if p.enricher != nil {
		enriched = p.enrich(ctx, space, result.Best, &menu)
	}

	resp := &models.OptimizeResponse{
		ID:                uuid.New().String(),
		Menu:              menu,
		Analysis:          AnalyzeMenu(menu, targets),
		Requirements:      targets,
		OptimizationScore: OptimizationScore(result.Fitness),
		Metadata: models.Metadata{
			Timestamp:      p.now(),
			Preset:         prefs.Preset,
			Seed:           result.Seed,
			Generations:    result.Generations,
			PopulationSize: optCfg.PopulationSize,
			Interrupted:    result.Interrupted,
			DurationMs:     p.now().Sub(started).Milliseconds(),
			FitnessHistory: result.History,
			CandidateItems: counts,
			Enriched:       enriched,
		},
	}
	return resp, nil
}

// enrich fills instructions and links for the menu's distinct items.
// Failed lookups keep the placeholder text. Reports whether every lookup succeeded.
func (p *MenuPlanner) enrich(ctx context.Context, space *SearchSpace, best Candidate, menu *models.Menu) bool {
	items := make(map[string]models.CatalogItem)
	for _, idx := range best.Genes {
		if idx >= 0 && idx < len(space.Items) {
			items[space.Items[idx].ID] = space.Items[idx]
		}
	}

	var (
		mu       sync.Mutex
		details  = make(map[string]RecipeDetails, len(items))
		degraded int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxEnrichmentConcurrency)
	for _, item := range items {
		g.Go(func() error {
			d, err := p.enricher.Lookup(gctx, item)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				var de *models.DegradedEnrichmentError
				if !errors.As(err, &de) {
					de = &models.DegradedEnrichmentError{ItemID: item.ID, Err: err}
				}
				slog.Warn("Recipe enrichment degraded", "item", de.ItemID, "error", de.Err)
				degraded++
				return nil
			}
			details[item.ID] = d
			return nil
		})
	}
	_ = g.Wait()

	for di := range menu.Days {
		for mi := range menu.Days[di].Meals {
			meal := &menu.Days[di].Meals[mi]
			d, ok := details[meal.ItemID]
			if !ok {
				continue
			}
			meal.Instructions = d.Instructions
			meal.ImageURL = d.ImageURL
			meal.SourceURL = d.SourceURL
		}
	}
	return degraded == 0
}
