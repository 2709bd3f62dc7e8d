package insight

import (
	"fmt"

	"vitals/internal/aggregate"
	"vitals/internal/domain"
)

// Thresholds parameterize the default rules.
type Thresholds struct {
	// ActiveCalories is the mean calories burned per activity above which the
	// active-lifestyle rule fires.
	ActiveCalories float64 `yaml:"active_calories" json:"activeCalories"`
	// LowProteinGrams is the window protein total below which low-protein fires.
	LowProteinGrams float64 `yaml:"low_protein_grams" json:"lowProteinGrams"`
	// GoodMoodRating is the mean mood above which good-mood fires.
	GoodMoodRating float64 `yaml:"good_mood_rating" json:"goodMoodRating"`
	// LowWaterMl is the window water total below which low-hydration fires.
	LowWaterMl float64 `yaml:"low_water_ml" json:"lowWaterMl"`
	// ShortSleepMinutes is the mean sleep duration below which short-sleep fires.
	ShortSleepMinutes float64 `yaml:"short_sleep_minutes" json:"shortSleepMinutes"`
}

// DefaultThresholds returns the stock rule thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ActiveCalories:    300,
		LowProteinGrams:   50,
		GoodMoodRating:    4,
		LowWaterMl:        2000,
		ShortSleepMinutes: 360,
	}
}

// Validate rejects negative thresholds and ratings outside [1,5].
func (t Thresholds) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"active_calories", t.ActiveCalories},
		{"low_protein_grams", t.LowProteinGrams},
		{"low_water_ml", t.LowWaterMl},
		{"short_sleep_minutes", t.ShortSleepMinutes},
	}
	for _, c := range checks {
		if c.v < 0 {
			return fmt.Errorf("insight threshold %s must be >= 0, got %v", c.name, c.v)
		}
	}
	if t.GoodMoodRating < 1 || t.GoodMoodRating > 5 {
		return fmt.Errorf("insight threshold good_mood_rating must be within [1, 5], got %v", t.GoodMoodRating)
	}
	return nil
}

// Rule names.
const (
	RuleActiveLifestyle = "active-lifestyle"
	RuleLowProtein      = "low-protein"
	RuleGoodMood        = "good-mood"
	RuleLowHydration    = "low-hydration"
	RuleShortSleep      = "short-sleep"
)

// DefaultRules returns the stock rules in evaluation order.
func DefaultRules(t Thresholds) []Rule {
	return []Rule{
		ActiveLifestyle(t.ActiveCalories),
		LowProtein(t.LowProteinGrams),
		GoodMood(t.GoodMoodRating),
		LowHydration(t.LowWaterMl),
		ShortSleep(t.ShortSleepMinutes),
	}
}

// present returns the summary of c when it has at least one record.
func present(s aggregate.Summaries, c domain.Category) (aggregate.Summary, bool) {
	sum := s.Get(c)
	return sum, !sum.Empty()
}

// ActiveLifestyle fires when the mean calories burned per activity exceeds threshold.
func ActiveLifestyle(threshold float64) Rule {
	return Rule{
		Name:     RuleActiveLifestyle,
		Severity: SeverityPositive,
		Message:  "Great job maintaining an active lifestyle! Keep it up!",
		When: func(s aggregate.Summaries) bool {
			sum, ok := present(s, domain.CategoryActivity)
			if !ok || sum.Activity == nil || sum.Activity.MeanCaloriesBurned == nil {
				return false
			}
			return *sum.Activity.MeanCaloriesBurned > threshold
		},
	}
}

// LowProtein fires when total protein over the window is below threshold.
func LowProtein(threshold float64) Rule {
	return Rule{
		Name:     RuleLowProtein,
		Severity: SeverityCaution,
		Message:  "Consider increasing your protein intake for better recovery.",
		When: func(s aggregate.Summaries) bool {
			sum, ok := present(s, domain.CategoryNutrition)
			if !ok || sum.Nutrition == nil {
				return false
			}
			return sum.Nutrition.TotalProtein < threshold
		},
	}
}

// GoodMood fires when the mean mood rating exceeds threshold.
func GoodMood(threshold float64) Rule {
	return Rule{
		Name:     RuleGoodMood,
		Severity: SeverityPositive,
		Message:  "You've been in a great mood lately! That's wonderful!",
		When: func(s aggregate.Summaries) bool {
			sum, ok := present(s, domain.CategoryMood)
			if !ok || sum.Mood == nil || sum.Mood.MeanMood == nil {
				return false
			}
			return *sum.Mood.MeanMood > threshold
		},
	}
}

// LowHydration fires when total water over the window is below threshold.
func LowHydration(threshold float64) Rule {
	return Rule{
		Name:     RuleLowHydration,
		Severity: SeverityCaution,
		Message:  "Try to drink more water throughout the day for better hydration.",
		When: func(s aggregate.Summaries) bool {
			sum, ok := present(s, domain.CategoryWater)
			if !ok || sum.Water == nil {
				return false
			}
			return sum.Water.TotalMl < threshold
		},
	}
}

// ShortSleep fires when the mean sleep duration is below threshold minutes.
func ShortSleep(threshold float64) Rule {
	return Rule{
		Name:     RuleShortSleep,
		Severity: SeverityCaution,
		Message:  "Try to get more sleep. Short nights slow down recovery.",
		When: func(s aggregate.Summaries) bool {
			sum, ok := present(s, domain.CategorySleep)
			if !ok || sum.Sleep == nil || sum.Sleep.MeanDurationMinutes == nil {
				return false
			}
			return *sum.Sleep.MeanDurationMinutes < threshold
		},
	}
}
