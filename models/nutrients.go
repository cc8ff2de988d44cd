// ABOUTME: Fixed-field nutrient vectors used by catalog items, targets and menus
// ABOUTME: Pure value arithmetic; missing source values resolve explicitly to zero

package models

// Nutrient names a tracked nutrient field of NutrientProfile
type Nutrient string

const (
	NutrientCalories      Nutrient = "calories"
	NutrientProtein       Nutrient = "protein"
	NutrientCarbohydrates Nutrient = "carbohydrates"
	NutrientFat           Nutrient = "fat"
	NutrientFiber         Nutrient = "fiber"
	NutrientIron          Nutrient = "iron"
	NutrientCalcium       Nutrient = "calcium"
	NutrientMagnesium     Nutrient = "magnesium"
	NutrientZinc          Nutrient = "zinc"
	NutrientVitaminB12    Nutrient = "vitamin_b12"
	NutrientVitaminD      Nutrient = "vitamin_d"
	NutrientVitaminB6     Nutrient = "vitamin_b6"
	NutrientFolate        Nutrient = "folate"
	NutrientOmega3        Nutrient = "omega3"
	NutrientOmega6        Nutrient = "omega6"
	NutrientVitaminC      Nutrient = "vitamin_c"
)

// TrackedNutrients is the ordered set of nutrients scored and reported.
// Vitamin C is included; it only contributes when its target is positive.
var TrackedNutrients = []Nutrient{
	NutrientCalories,
	NutrientProtein,
	NutrientCarbohydrates,
	NutrientFat,
	NutrientFiber,
	NutrientIron,
	NutrientCalcium,
	NutrientMagnesium,
	NutrientZinc,
	NutrientVitaminB12,
	NutrientVitaminD,
	NutrientVitaminB6,
	NutrientFolate,
	NutrientOmega3,
	NutrientOmega6,
	NutrientVitaminC,
}

// nutrientUnits maps each nutrient to the unit used across the catalog
var nutrientUnits = map[Nutrient]string{
	NutrientCalories:      "kcal",
	NutrientProtein:       "g",
	NutrientCarbohydrates: "g",
	NutrientFat:           "g",
	NutrientFiber:         "g",
	NutrientIron:          "mg",
	NutrientCalcium:       "mg",
	NutrientMagnesium:     "mg",
	NutrientZinc:          "mg",
	NutrientVitaminB12:    "ug",
	NutrientVitaminD:      "ug",
	NutrientVitaminB6:     "mg",
	NutrientFolate:        "ug",
	NutrientOmega3:        "g",
	NutrientOmega6:        "g",
	NutrientVitaminC:      "mg",
}

// Unit returns the measurement unit for the nutrient
func (n Nutrient) Unit() string {
	return nutrientUnits[n]
}

// NutrientProfile is an immutable-by-convention nutrient vector.
// The basis (per serving or per day) is set by the owner and must be kept
// consistent within one computation.
type NutrientProfile struct {
	Calories      float64 `json:"calories" bson:"calories"`
	Protein       float64 `json:"protein" bson:"protein"`
	Carbohydrates float64 `json:"carbohydrates" bson:"carbohydrates"`
	Fat           float64 `json:"fat" bson:"fat"`
	Fiber         float64 `json:"fiber" bson:"fiber"`
	Iron          float64 `json:"iron" bson:"iron"`
	Calcium       float64 `json:"calcium" bson:"calcium"`
	Magnesium     float64 `json:"magnesium" bson:"magnesium"`
	Zinc          float64 `json:"zinc" bson:"zinc"`
	VitaminB12    float64 `json:"vitamin_b12" bson:"vitamin_b12"`
	VitaminD      float64 `json:"vitamin_d" bson:"vitamin_d"`
	VitaminB6     float64 `json:"vitamin_b6" bson:"vitamin_b6"`
	Folate        float64 `json:"folate" bson:"folate"`
	Omega3        float64 `json:"omega3" bson:"omega3"`
	Omega6        float64 `json:"omega6" bson:"omega6"`
	VitaminC      float64 `json:"vitamin_c" bson:"vitamin_c"`
}

// Add returns the field-wise sum of p and o
func (p NutrientProfile) Add(o NutrientProfile) NutrientProfile {
	return NutrientProfile{
		Calories:      p.Calories + o.Calories,
		Protein:       p.Protein + o.Protein,
		Carbohydrates: p.Carbohydrates + o.Carbohydrates,
		Fat:           p.Fat + o.Fat,
		Fiber:         p.Fiber + o.Fiber,
		Iron:          p.Iron + o.Iron,
		Calcium:       p.Calcium + o.Calcium,
		Magnesium:     p.Magnesium + o.Magnesium,
		Zinc:          p.Zinc + o.Zinc,
		VitaminB12:    p.VitaminB12 + o.VitaminB12,
		VitaminD:      p.VitaminD + o.VitaminD,
		VitaminB6:     p.VitaminB6 + o.VitaminB6,
		Folate:        p.Folate + o.Folate,
		Omega3:        p.Omega3 + o.Omega3,
		Omega6:        p.Omega6 + o.Omega6,
		VitaminC:      p.VitaminC + o.VitaminC,
	}
}

// Scale returns p with every field multiplied by factor
func (p NutrientProfile) Scale(factor float64) NutrientProfile {
	return NutrientProfile{
		Calories:      p.Calories * factor,
		Protein:       p.Protein * factor,
		Carbohydrates: p.Carbohydrates * factor,
		Fat:           p.Fat * factor,
		Fiber:         p.Fiber * factor,
		Iron:          p.Iron * factor,
		Calcium:       p.Calcium * factor,
		Magnesium:     p.Magnesium * factor,
		Zinc:          p.Zinc * factor,
		VitaminB12:    p.VitaminB12 * factor,
		VitaminD:      p.VitaminD * factor,
		VitaminB6:     p.VitaminB6 * factor,
		Folate:        p.Folate * factor,
		Omega3:        p.Omega3 * factor,
		Omega6:        p.Omega6 * factor,
		VitaminC:      p.VitaminC * factor,
	}
}

// Get returns the value of a single nutrient. Unknown names return 0.
func (p NutrientProfile) Get(n Nutrient) float64 {
	switch n {
	case NutrientCalories:
		return p.Calories
	case NutrientProtein:
		return p.Protein
	case NutrientCarbohydrates:
		return p.Carbohydrates
	case NutrientFat:
		return p.Fat
	case NutrientFiber:
		return p.Fiber
	case NutrientIron:
		return p.Iron
	case NutrientCalcium:
		return p.Calcium
	case NutrientMagnesium:
		return p.Magnesium
	case NutrientZinc:
		return p.Zinc
	case NutrientVitaminB12:
		return p.VitaminB12
	case NutrientVitaminD:
		return p.VitaminD
	case NutrientVitaminB6:
		return p.VitaminB6
	case NutrientFolate:
		return p.Folate
	case NutrientOmega3:
		return p.Omega3
	case NutrientOmega6:
		return p.Omega6
	case NutrientVitaminC:
		return p.VitaminC
	}
	return 0
}

// NutrientValues is the ingest form of a nutrient vector. A nil field means
// the data source did not report the nutrient.
type NutrientValues struct {
	Calories      *float64 `json:"calories,omitempty" yaml:"calories,omitempty"`
	Protein       *float64 `json:"protein,omitempty" yaml:"protein,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty" yaml:"carbohydrates,omitempty"`
	Fat           *float64 `json:"fat,omitempty" yaml:"fat,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty" yaml:"fiber,omitempty"`
	Iron          *float64 `json:"iron,omitempty" yaml:"iron,omitempty"`
	Calcium       *float64 `json:"calcium,omitempty" yaml:"calcium,omitempty"`
	Magnesium     *float64 `json:"magnesium,omitempty" yaml:"magnesium,omitempty"`
	Zinc          *float64 `json:"zinc,omitempty" yaml:"zinc,omitempty"`
	VitaminB12    *float64 `json:"vitamin_b12,omitempty" yaml:"vitamin_b12,omitempty"`
	VitaminD      *float64 `json:"vitamin_d,omitempty" yaml:"vitamin_d,omitempty"`
	VitaminB6     *float64 `json:"vitamin_b6,omitempty" yaml:"vitamin_b6,omitempty"`
	Folate        *float64 `json:"folate,omitempty" yaml:"folate,omitempty"`
	Omega3        *float64 `json:"omega3,omitempty" yaml:"omega3,omitempty"`
	Omega6        *float64 `json:"omega6,omitempty" yaml:"omega6,omitempty"`
	VitaminC      *float64 `json:"vitamin_c,omitempty" yaml:"vitamin_c,omitempty"`
}

// Resolve converts ingest values to a NutrientProfile. Missing values are 0.
func (v NutrientValues) Resolve() NutrientProfile {
	return NutrientProfile{
		Calories:      valueOrZero(v.Calories),
		Protein:       valueOrZero(v.Protein),
		Carbohydrates: valueOrZero(v.Carbohydrates),
		Fat:           valueOrZero(v.Fat),
		Fiber:         valueOrZero(v.Fiber),
		Iron:          valueOrZero(v.Iron),
		Calcium:       valueOrZero(v.Calcium),
		Magnesium:     valueOrZero(v.Magnesium),
		Zinc:          valueOrZero(v.Zinc),
		VitaminB12:    valueOrZero(v.VitaminB12),
		VitaminD:      valueOrZero(v.VitaminD),
		VitaminB6:     valueOrZero(v.VitaminB6),
		Folate:        valueOrZero(v.Folate),
		Omega3:        valueOrZero(v.Omega3),
		Omega6:        valueOrZero(v.Omega6),
		VitaminC:      valueOrZero(v.VitaminC),
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
