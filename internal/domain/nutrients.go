package domain

import "fmt"

// Energy density in kcal per gram.
const (
	KcalPerGramProtein      = 4.0
	KcalPerGramCarbohydrate = 4.0
	KcalPerGramFat          = 9.0
)

// TotalNutrients is used both as a daily target and as an accumulator over
// plan items. Macros are grams.
type TotalNutrients struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
}

// Add returns n + o.
func (n TotalNutrients) Add(o TotalNutrients) TotalNutrients {
	return TotalNutrients{
		Calories:      n.Calories + o.Calories,
		Protein:       n.Protein + o.Protein,
		Carbohydrates: n.Carbohydrates + o.Carbohydrates,
		Fats:          n.Fats + o.Fats,
	}
}

// Sub returns n - o.
func (n TotalNutrients) Sub(o TotalNutrients) TotalNutrients {
	return TotalNutrients{
		Calories:      n.Calories - o.Calories,
		Protein:       n.Protein - o.Protein,
		Carbohydrates: n.Carbohydrates - o.Carbohydrates,
		Fats:          n.Fats - o.Fats,
	}
}

// Scale multiplies every field by f.
func (n TotalNutrients) Scale(f float64) TotalNutrients {
	return TotalNutrients{
		Calories:      n.Calories * f,
		Protein:       n.Protein * f,
		Carbohydrates: n.Carbohydrates * f,
		Fats:          n.Fats * f,
	}
}

// IsZero reports whether every field is zero.
func (n TotalNutrients) IsZero() bool {
	return n == TotalNutrients{}
}

// MacroCalories returns the calories supplied by each macro, in
// protein/carbohydrate/fat order.
func (n TotalNutrients) MacroCalories() (protein, carbs, fats float64) {
	return n.Protein * KcalPerGramProtein, n.Carbohydrates * KcalPerGramCarbohydrate, n.Fats * KcalPerGramFat
}

func (n TotalNutrients) String() string {
	return fmt.Sprintf("%.0f kcal (protein %.1f g, carbohydrates %.1f g, fats %.1f g)",
		n.Calories, n.Protein, n.Carbohydrates, n.Fats)
}

// SumOf accumulates the contribution of each item in order.
func SumOf(items []PlanItem) TotalNutrients {
	var total TotalNutrients
	for _, it := range items {
		total = total.Add(it.Nutrients())
	}
	return total
}
