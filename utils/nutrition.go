package utils

import (
	"fmt"
)

// Nutrition is an additive bundle of macro values (kcal, g, mg for sodium/cholesterol).
type Nutrition struct {
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
	Carbs       float64 `json:"carbs"`
	Sugar       float64 `json:"sugar"`
	Sodium      float64 `json:"sodium"`
	Cholesterol float64 `json:"cholesterol"`
}

func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories:    n.Calories + o.Calories,
		Protein:     n.Protein + o.Protein,
		Fat:         n.Fat + o.Fat,
		Carbs:       n.Carbs + o.Carbs,
		Sugar:       n.Sugar + o.Sugar,
		Sodium:      n.Sodium + o.Sodium,
		Cholesterol: n.Cholesterol + o.Cholesterol,
	}
}

func (n Nutrition) Scale(q float64) Nutrition {
	return Nutrition{
		Calories:    n.Calories * q,
		Protein:     n.Protein * q,
		Fat:         n.Fat * q,
		Carbs:       n.Carbs * q,
		Sugar:       n.Sugar * q,
		Sodium:      n.Sodium * q,
		Cholesterol: n.Cholesterol * q,
	}
}

func (n Nutrition) Rounded() Nutrition {
	return Nutrition{
		Calories:    Round(n.Calories, 2),
		Protein:     Round(n.Protein, 2),
		Fat:         Round(n.Fat, 2),
		Carbs:       Round(n.Carbs, 2),
		Sugar:       Round(n.Sugar, 2),
		Sodium:      Round(n.Sodium, 2),
		Cholesterol: Round(n.Cholesterol, 2),
	}
}

type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

type Warning struct {
	Code           string          `json:"code"`
	Severity       WarningSeverity `json:"severity"`
	Message        string          `json:"message"`
	Metric         string          `json:"metric,omitempty"`
	Value          float64         `json:"value,omitempty"`
	PercentOfLimit float64         `json:"percent_of_limit,omitempty"`
}

const (
	sodiumDailyLimitMg      = 2300
	cholesterolDailyLimitMg = 300
	defaultCalorieTarget    = 2000
)

// AssessNutrition flags one serving against daily limits. calorieTarget <= 0 means 2000 kcal.
func AssessNutrition(n Nutrition, calorieTarget float64) []Warning {
	if calorieTarget <= 0 {
		calorieTarget = defaultCalorieTarget
	}
	warnings := []Warning{}

	// sugars: under 10% of daily kcal
	sugarLimitG := 0.10 * calorieTarget / 4.0
	if n.Sugar > 0 {
		if w, ok := shareWarning("sugar", "sugar", n.Sugar/sugarLimitG); ok {
			warnings = append(warnings, w)
		}
	}
	if n.Sodium > 0 {
		if w, ok := shareWarning("sodium", "sodium", n.Sodium/sodiumDailyLimitMg); ok {
			warnings = append(warnings, w)
		}
		if n.Calories > 0 {
			density := n.Sodium / n.Calories * 100
			if density >= 400 {
				warnings = append(warnings, Warning{
					Code:     "sodium_dense",
					Severity: Info,
					Message:  "High sodium density relative to calories; consider lower-sodium alternatives.",
					Metric:   "sodium_mg_per_100kcal",
					Value:    Round(density, 2),
				})
			}
		}
	}
	if n.Cholesterol > 0 {
		if w, ok := shareWarning("cholesterol", "cholesterol", n.Cholesterol/cholesterolDailyLimitMg); ok {
			warnings = append(warnings, w)
		}
	}

	macroKcal := 4*n.Carbs + 4*n.Protein + 9*n.Fat
	if macroKcal > 0 {
		warnings = append(warnings, macroRange("carbs", 4*n.Carbs/macroKcal, 0.45, 0.65)...)
		warnings = append(warnings, macroRange("protein", 4*n.Protein/macroKcal, 0.10, 0.35)...)
		warnings = append(warnings, macroRange("fat", 9*n.Fat/macroKcal, 0.20, 0.35)...)
	}
	return warnings
}

func shareWarning(code, label string, share float64) (Warning, bool) {
	w := Warning{
		Metric:         label + "_%_of_daily_limit",
		Value:          Round(share*100, 2),
		PercentOfLimit: Round(share*100, 2),
	}
	switch {
	case share >= 0.40:
		w.Code = code + "_very_high"
		w.Severity = High
		w.Message = fmt.Sprintf("Very high %s for one serving (~%.0f%% of the daily limit).", label, share*100)
	case share >= 0.20:
		w.Code = code + "_high"
		w.Severity = Caution
		w.Message = fmt.Sprintf("High %s for one serving (~%.0f%% of the daily limit).", label, share*100)
	default:
		return Warning{}, false
	}
	return w, true
}

func macroRange(name string, pct, lo, hi float64) []Warning {
	if pct >= lo && pct <= hi {
		return nil
	}
	return []Warning{{
		Code:     "amdr_" + name + "_out_of_range",
		Severity: Info,
		Message:  fmt.Sprintf("%s ~%.0f%% of macro calories (recommended %.0f-%.0f%%).", name, pct*100, lo*100, hi*100),
		Metric:   name + "_%_of_macro_kcal",
		Value:    Round(pct*100, 2),
	}}
}
