// ABOUTME: Daily nutrient requirement calculator from biometric inputs
// ABOUTME: Revised Harris-Benedict BMR, activity/goal factors and vegan-adjusted reference table

package services

import (
	"fmt"

	"github.com/markalston/vegan-menu-optimizer/models"
)

const (
	// DefaultLoseWeightFactor is the energy multiplier for the "lose" goal.
	// Two values (0.8 and 0.85) exist in prior implementations; 0.8 is the
	// default until product resolves it, override with LOSE_WEIGHT_FACTOR.
	DefaultLoseWeightFactor = 0.8
	// GainWeightFactor is the energy multiplier for the "gain" goal
	GainWeightFactor = 1.15

	// ProteinGramsPerKg is the population reference protein intake
	ProteinGramsPerKg = 0.83
	// CarbohydrateFloorGrams is the minimum daily carbohydrate target
	CarbohydrateFloorGrams = 130
	// CarbohydrateEnergyShare and FatEnergyShare are fractions of daily kcal
	CarbohydrateEnergyShare = 0.45
	FatEnergyShare          = 0.30

	// Vegan bioavailability multipliers for plant-sourced minerals
	VeganIronMultiplier = 1.8
	VeganZincMultiplier = 1.5
)

// activityFactors maps activity level to its TDEE multiplier
var activityFactors = map[models.ActivityLevel]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// referenceIntake is one row of the population reference table
type referenceIntake struct {
	male   float64
	female float64
}

// Daily reference intakes before vegan adjustments
var (
	refFiber      = referenceIntake{30, 30}     // g
	refIron       = referenceIntake{11, 16}     // mg
	refCalcium    = referenceIntake{1000, 1000} // mg
	refMagnesium  = referenceIntake{375, 300}   // mg
	refZinc       = referenceIntake{11, 8}      // mg
	refVitaminB12 = referenceIntake{2.4, 2.4}   // ug
	refVitaminD   = referenceIntake{15, 15}     // ug
	refVitaminB6  = referenceIntake{1.4, 1.2}   // mg
	refFolate     = referenceIntake{400, 400}   // ug
	refOmega3     = referenceIntake{1.6, 1.1}   // g ALA
	refOmega6     = referenceIntake{17, 12}     // g LA
	refVitaminC   = referenceIntake{90, 75}     // mg
)

// Age-conditioned overrides
const (
	olderAdultAge          = 50
	elderlyAge             = 70
	postMenopauseIronMg    = 10.0
	olderAdultCalciumMg    = 1200.0
	elderlyVitaminDMicrogr = 20.0
)

func (r referenceIntake) forGender(g models.Gender) float64 {
	if g == models.GenderFemale {
		return r.female
	}
	return r.male
}

// RequirementsCalculator computes daily targets for a profile
type RequirementsCalculator struct {
	loseWeightFactor float64
}

// NewRequirementsCalculator creates a calculator. A non-positive
// loseWeightFactor falls back to DefaultLoseWeightFactor.
func NewRequirementsCalculator(loseWeightFactor float64) *RequirementsCalculator {
	if loseWeightFactor <= 0 {
		loseWeightFactor = DefaultLoseWeightFactor
	}
	return &RequirementsCalculator{loseWeightFactor: loseWeightFactor}
}

// BMR returns the revised Harris-Benedict basal metabolic rate in kcal/day
func BMR(p models.UserProfile) float64 {
	age := float64(p.Age)
	if p.Gender == models.GenderFemale {
		return 447.593 + 9.247*p.WeightKg + 3.098*p.HeightCm - 4.330*age
	}
	return 88.362 + 13.397*p.WeightKg + 4.799*p.HeightCm - 5.677*age
}

// ActivityFactor returns the TDEE multiplier for level, or false if unknown
func ActivityFactor(level models.ActivityLevel) (float64, bool) {
	f, ok := activityFactors[level]
	return f, ok
}

// GoalFactor returns the energy multiplier for goal
func (c *RequirementsCalculator) GoalFactor(goal models.Goal) float64 {
	switch goal {
	case models.GoalLose:
		return c.loseWeightFactor
	case models.GoalGain:
		return GainWeightFactor
	default:
		return 1.0
	}
}

// Calculate returns daily requirement targets. Invalid profiles return a
// *models.ConfigurationError. Deterministic and side-effect free.
func (c *RequirementsCalculator) Calculate(profile models.UserProfile) (models.RequirementTargets, error) {
	p := profile.Normalize()
	if err := p.Validate(); err != nil {
		return models.RequirementTargets{}, err
	}

	activity, ok := ActivityFactor(p.ActivityLevel)
	if !ok {
		return models.RequirementTargets{}, models.NewConfigurationError("activity_level", fmt.Sprintf("unsupported value %q", p.ActivityLevel))
	}

	bmr := BMR(p)
	if bmr <= 0 {
		return models.RequirementTargets{}, models.NewConfigurationError("profile", fmt.Sprintf("implausible biometrics produce non-positive BMR %.1f", bmr))
	}

	tdee := bmr * activity
	goalFactor := c.GoalFactor(p.Goal)
	calories := tdee * goalFactor

	carbs := CarbohydrateEnergyShare * calories / 4
	if carbs < CarbohydrateFloorGrams {
		carbs = CarbohydrateFloorGrams
	}

	daily := models.NutrientProfile{
		Calories:      calories,
		Protein:       ProteinGramsPerKg * p.WeightKg,
		Carbohydrates: carbs,
		Fat:           FatEnergyShare * calories / 9,
		Fiber:         refFiber.forGender(p.Gender),
		Iron:          ironTarget(p) * VeganIronMultiplier,
		Calcium:       calciumTarget(p),
		Magnesium:     refMagnesium.forGender(p.Gender),
		Zinc:          refZinc.forGender(p.Gender) * VeganZincMultiplier,
		VitaminB12:    refVitaminB12.forGender(p.Gender),
		VitaminD:      vitaminDTarget(p),
		VitaminB6:     refVitaminB6.forGender(p.Gender),
		Folate:        refFolate.forGender(p.Gender),
		Omega3:        refOmega3.forGender(p.Gender),
		Omega6:        refOmega6.forGender(p.Gender),
		VitaminC:      refVitaminC.forGender(p.Gender),
	}

	return models.RequirementTargets{
		BMR:        bmr,
		TDEE:       tdee,
		GoalFactor: goalFactor,
		Daily:      daily,
		Gender:     p.Gender,
		Age:        p.Age,
	}, nil
}

func ironTarget(p models.UserProfile) float64 {
	if p.Gender == models.GenderFemale && p.Age > olderAdultAge {
		return postMenopauseIronMg
	}
	return refIron.forGender(p.Gender)
}

func calciumTarget(p models.UserProfile) float64 {
	if p.Age > olderAdultAge {
		return olderAdultCalciumMg
	}
	return refCalcium.forGender(p.Gender)
}

func vitaminDTarget(p models.UserProfile) float64 {
	if p.Age > elderlyAge {
		return elderlyVitaminDMicrogr
	}
	return refVitaminD.forGender(p.Gender)
}
