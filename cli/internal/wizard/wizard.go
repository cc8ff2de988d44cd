// ABOUTME: Interactive plan wizard built from huh forms
// ABOUTME: Collects profile, preferences and restrictions for an optimize request

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/vegan-menu-optimizer/cli/internal/styles"
	"github.com/markalston/vegan-menu-optimizer/models"
)

// Wizard holds form field values while the user steps through the forms
type Wizard struct {
	// Form field values (strings for huh)
	age      string
	gender   string
	weight   string
	height   string
	activity string
	goal     string

	people      string
	days        string
	budget      string
	cookingTime string
	meals       []string
	preset      string

	allergens    string
	intolerances string
	exclude      string
	prefer       string

	seed uint64
}

// Step names shown as group titles
var stepNames = []string{"About You", "Your Menu", "Restrictions"}

var genderOptions = []huh.Option[string]{
	huh.NewOption("Female", string(models.GenderFemale)),
	huh.NewOption("Male", string(models.GenderMale)),
}

var activityOptions = []huh.Option[string]{
	huh.NewOption("Sedentary (little or no exercise)", string(models.ActivitySedentary)),
	huh.NewOption("Light (1-3 days a week)", string(models.ActivityLight)),
	huh.NewOption("Moderate (3-5 days a week)", string(models.ActivityModerate)),
	huh.NewOption("Active (6-7 days a week)", string(models.ActivityActive)),
	huh.NewOption("Very active (physical job or twice daily)", string(models.ActivityVeryActive)),
}

var goalOptions = []huh.Option[string]{
	huh.NewOption("Maintain weight", string(models.GoalMaintain)),
	huh.NewOption("Lose weight", string(models.GoalLose)),
	huh.NewOption("Gain weight", string(models.GoalGain)),
}

var budgetOptions = []huh.Option[string]{
	huh.NewOption("Low", string(models.BudgetLow)),
	huh.NewOption("Medium", string(models.BudgetMedium)),
	huh.NewOption("High", string(models.BudgetHigh)),
}

var cookingOptions = []huh.Option[string]{
	huh.NewOption("Quick (up to 20 min)", string(models.CookingQuick)),
	huh.NewOption("Medium (up to 45 min)", string(models.CookingMedium)),
	huh.NewOption("Elaborate (no limit)", string(models.CookingElaborate)),
}

var mealOptions = []huh.Option[string]{
	huh.NewOption("Breakfast", string(models.CategoryBreakfast)),
	huh.NewOption("Lunch", string(models.CategoryLunch)),
	huh.NewOption("Dinner", string(models.CategoryDinner)),
	huh.NewOption("Snack", string(models.CategorySnack)),
}

var presetOptions = []huh.Option[string]{
	huh.NewOption("Standard", string(models.PresetStandard)),
	huh.NewOption("Enhanced (larger search, favors convenience)", string(models.PresetEnhanced)),
}

// New creates a wizard prefilled from req
func New(req models.OptimizeRequest) *Wizard {
	p := req.Profile.Normalize()
	prefs := req.Preferences.WithDefaults()

	meals := make([]string, len(prefs.MealCategories))
	for i, c := range prefs.MealCategories {
		meals[i] = string(c)
	}

	return &Wizard{
		age:          strconv.Itoa(p.Age),
		gender:       string(p.Gender),
		weight:       strconv.FormatFloat(p.WeightKg, 'f', -1, 64),
		height:       strconv.FormatFloat(p.HeightCm, 'f', -1, 64),
		activity:     string(p.ActivityLevel),
		goal:         string(p.Goal),
		people:       strconv.Itoa(prefs.People),
		days:         strconv.Itoa(prefs.Days),
		budget:       string(prefs.BudgetTier),
		cookingTime:  string(prefs.CookingTime),
		meals:        meals,
		preset:       string(prefs.Preset),
		allergens:    strings.Join(req.Restrictions.Allergens, ", "),
		intolerances: strings.Join(req.Restrictions.Intolerances, ", "),
		exclude:      strings.Join(req.Restrictions.ExcludedIngredients, ", "),
		prefer:       strings.Join(req.Restrictions.Preferences, ", "),
		seed:         prefs.Seed,
	}
}

// Run shows the forms in order. Aborting any form returns huh.ErrUserAborted.
func (w *Wizard) Run() error {
	for _, form := range []*huh.Form{w.profileForm(), w.preferencesForm(), w.restrictionsForm()} {
		if err := form.Run(); err != nil {
			return err
		}
	}
	return nil
}

func (w *Wizard) profileForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Age").
				Placeholder("e.g., 30").
				CharLimit(3).
				Value(&w.age).
				Validate(validatePositiveInt),
			huh.NewSelect[string]().
				Title("Gender").
				Options(genderOptions...).
				Value(&w.gender),
			huh.NewInput().
				Title("Weight (kg)").
				Value(&w.weight).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Height (cm)").
				Value(&w.height).
				Validate(validatePositiveFloat),
			huh.NewSelect[string]().
				Title("Activity level").
				Options(activityOptions...).
				Value(&w.activity),
			huh.NewSelect[string]().
				Title("Goal").
				Options(goalOptions...).
				Value(&w.goal),
		).Title("Step 1: " + stepNames[0]).
			Description("Used to calculate your daily energy and nutrient targets"),
	).WithTheme(createTheme())
}

func (w *Wizard) preferencesForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("People").
				CharLimit(2).
				Value(&w.people).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Days").
				Description(fmt.Sprintf("At most %d", models.MaxDays)).
				CharLimit(2).
				Value(&w.days).
				Validate(validateDays),
			huh.NewMultiSelect[string]().
				Title("Meals per day").
				Options(mealOptions...).
				Value(&w.meals).
				Validate(validateMeals),
			huh.NewSelect[string]().
				Title("Budget").
				Options(budgetOptions...).
				Value(&w.budget),
			huh.NewSelect[string]().
				Title("Cooking time").
				Options(cookingOptions...).
				Value(&w.cookingTime),
			huh.NewSelect[string]().
				Title("Optimizer").
				Options(presetOptions...).
				Value(&w.preset),
		).Title("Step 2: " + stepNames[1]).
			Description("Shape the menu around your household"),
	).WithTheme(createTheme())
}

func (w *Wizard) restrictionsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Allergens").
				Description("Comma separated, e.g. peanuts, soy").
				Value(&w.allergens),
			huh.NewInput().
				Title("Intolerances").
				Value(&w.intolerances),
			huh.NewInput().
				Title("Excluded ingredients").
				Value(&w.exclude),
			huh.NewInput().
				Title("Required tags").
				Description("e.g. gluten-free").
				Value(&w.prefer),
		).Title("Step 3: " + stepNames[2]).
			Description("Items matching any restriction are never chosen"),
	).WithTheme(createTheme())
}

// Request converts the collected values into an optimize request
func (w *Wizard) Request() models.OptimizeRequest {
	age, _ := strconv.Atoi(w.age)
	weight, _ := strconv.ParseFloat(w.weight, 64)
	height, _ := strconv.ParseFloat(w.height, 64)
	people, _ := strconv.Atoi(w.people)
	days, _ := strconv.Atoi(w.days)

	meals := make([]models.MealCategory, len(w.meals))
	for i, m := range w.meals {
		meals[i] = models.MealCategory(m)
	}

	return models.OptimizeRequest{
		Profile: models.UserProfile{
			Age:           age,
			Gender:        models.Gender(w.gender),
			WeightKg:      weight,
			HeightCm:      height,
			ActivityLevel: models.ActivityLevel(w.activity),
			Goal:          models.Goal(w.goal),
		},
		Preferences: models.Preferences{
			People:         people,
			Days:           days,
			BudgetTier:     models.BudgetTier(w.budget),
			CookingTime:    models.CookingTimeTier(w.cookingTime),
			MealCategories: meals,
			Preset:         models.OptimizerPreset(w.preset),
			Seed:           w.seed,
		},
		Restrictions: models.DietaryRestrictions{
			Allergens:           splitList(w.allergens),
			Intolerances:        splitList(w.intolerances),
			ExcludedIngredients: splitList(w.exclude),
			Preferences:         splitList(w.prefer),
		},
	}
}

// createTheme returns a huh theme using the CLI palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Bold(true)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateDays(s string) error {
	if err := validatePositiveInt(s); err != nil {
		return err
	}
	if v, _ := strconv.Atoi(strings.TrimSpace(s)); v > models.MaxDays {
		return fmt.Errorf("must be at most %d", models.MaxDays)
	}
	return nil
}

func validateMeals(meals []string) error {
	if len(meals) == 0 {
		return fmt.Errorf("pick at least one meal")
	}
	return nil
}
