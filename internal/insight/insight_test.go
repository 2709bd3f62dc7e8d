package insight_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitals/internal/aggregate"
	"vitals/internal/domain"
	"vitals/internal/insight"
)

var day0 = time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)

func summaries(byCategory map[domain.Category][]map[domain.Field]float64) aggregate.Summaries {
	out := aggregate.Summaries{}
	for c, rows := range byCategory {
		records := make([]domain.Record, 0, len(rows))
		for i, values := range rows {
			records = append(records, domain.Record{ID: int64(i + 1), Category: c, At: day0, Values: values})
		}
		out[c] = aggregate.Summarize(c, records)
	}
	return out
}

func engine() *insight.Engine {
	return insight.Default(insight.DefaultThresholds())
}

func TestEvaluate_ActiveLifestyleOnly(t *testing.T) {
	s := summaries(map[domain.Category][]map[domain.Field]float64{
		domain.CategoryActivity: {{domain.FieldCaloriesBurned: 320}},
	})

	got := engine().Evaluate(s)
	require.Len(t, got, 1)
	assert.Equal(t, insight.Insight{
		Rule:     insight.RuleActiveLifestyle,
		Severity: insight.SeverityPositive,
		Message:  "Great job maintaining an active lifestyle! Keep it up!",
	}, got[0])
}

func TestEvaluate_Hydration(t *testing.T) {
	low := summaries(map[domain.Category][]map[domain.Field]float64{
		domain.CategoryWater: {{domain.FieldAmountMl: 1000}, {domain.FieldAmountMl: 500}},
	})
	got := engine().Evaluate(low)
	require.Len(t, got, 1)
	assert.Equal(t, insight.RuleLowHydration, got[0].Rule)
	assert.Equal(t, insight.SeverityCaution, got[0].Severity)
	assert.Equal(t, "Try to drink more water throughout the day for better hydration.", got[0].Message)

	enough := summaries(map[domain.Category][]map[domain.Field]float64{
		domain.CategoryWater: {{domain.FieldAmountMl: 1500}, {domain.FieldAmountMl: 1000}},
	})
	assert.Empty(t, engine().Evaluate(enough))
}

func TestEvaluate_AbsenceNeverFires(t *testing.T) {
	got := engine().Evaluate(aggregate.Summaries{})
	require.NotNil(t, got)
	assert.Empty(t, got)

	explicitEmpty := aggregate.Summaries{}
	for _, c := range domain.AllCategories() {
		explicitEmpty[c] = aggregate.Summarize(c, nil)
	}
	assert.Empty(t, engine().Evaluate(explicitEmpty))
}

func TestEvaluate_LowProtein(t *testing.T) {
	s := summaries(map[domain.Category][]map[domain.Field]float64{
		domain.CategoryNutrition: {{domain.FieldProtein: 12}, {domain.FieldProtein: 15}},
	})
	got := engine().Evaluate(s)
	require.Len(t, got, 1)
	assert.Equal(t, insight.RuleLowProtein, got[0].Rule)
	assert.Equal(t, "Consider increasing your protein intake for better recovery.", got[0].Message)

	// Meals without protein recorded still count as evidence of low intake.
	s = summaries(map[domain.Category][]map[domain.Field]float64{
		domain.CategoryNutrition: {{domain.FieldCalories: 500}},
	})
	require.Len(t, engine().Evaluate(s), 1)
}

func TestEvaluate_ActivityWithoutCalories(t *testing.T) {
	s := summaries(map[domain.Category][]map[domain.Field]float64{
		domain.CategoryActivity: {{domain.FieldSteps: 8000}},
	})
	assert.Empty(t, engine().Evaluate(s))
}

func TestEvaluate_MeanIgnoresMissingValues(t *testing.T) {
	// 320 over the single record that carries calories, not 320/2.
	s := summaries(map[domain.Category][]map[domain.Field]float64{
		domain.CategoryActivity: {{domain.FieldCaloriesBurned: 320}, {domain.FieldSteps: 1000}},
	})
	got := engine().Evaluate(s)
	require.Len(t, got, 1)
	assert.Equal(t, insight.RuleActiveLifestyle, got[0].Rule)
}

func TestEvaluate_RuleOrderAndDeterminism(t *testing.T) {
	s := summaries(map[domain.Category][]map[domain.Field]float64{
		domain.CategorySleep:     {{domain.FieldDurationMinutes: 300}},
		domain.CategoryWater:     {{domain.FieldAmountMl: 300}},
		domain.CategoryMood:      {{domain.FieldMoodRating: 5}, {domain.FieldMoodRating: 5}},
		domain.CategoryNutrition: {{domain.FieldProtein: 10}},
		domain.CategoryActivity:  {{domain.FieldCaloriesBurned: 500}},
	})

	want := []string{
		insight.RuleActiveLifestyle,
		insight.RuleLowProtein,
		insight.RuleGoodMood,
		insight.RuleLowHydration,
		insight.RuleShortSleep,
	}
	first := engine().Evaluate(s)
	for i := 0; i < 20; i++ {
		got := engine().Evaluate(s)
		assert.Equal(t, first, got)
	}
	names := make([]string, 0, len(first))
	for _, in := range first {
		names = append(names, in.Rule)
	}
	assert.Equal(t, want, names)
}

func TestEvaluate_GoodMoodBoundary(t *testing.T) {
	s := summaries(map[domain.Category][]map[domain.Field]float64{
		domain.CategoryMood: {{domain.FieldMoodRating: 4}, {domain.FieldMoodRating: 4}},
	})
	assert.Empty(t, engine().Evaluate(s), "mean of exactly 4 must not fire")
}

func TestThresholdsAreConfigurable(t *testing.T) {
	th := insight.DefaultThresholds()
	th.LowWaterMl = 1000
	s := summaries(map[domain.Category][]map[domain.Field]float64{
		domain.CategoryWater: {{domain.FieldAmountMl: 1500}},
	})
	assert.Empty(t, insight.Default(th).Evaluate(s))
	assert.Len(t, engine().Evaluate(s), 1)
}

func TestThresholdsValidate(t *testing.T) {
	require.NoError(t, insight.DefaultThresholds().Validate())

	th := insight.DefaultThresholds()
	th.LowWaterMl = -1
	assert.Error(t, th.Validate())

	th = insight.DefaultThresholds()
	th.GoodMoodRating = 6
	assert.Error(t, th.Validate())
}

func TestEngineWith_AppendsWithoutMutating(t *testing.T) {
	base := engine()
	always := insight.Rule{
		Name:     "always",
		Severity: insight.SeverityPositive,
		Message:  "Logged.",
		When:     func(aggregate.Summaries) bool { return true },
	}
	extended := base.With(always)

	assert.Len(t, base.Rules(), 5)
	assert.Len(t, extended.Rules(), 6)
	got := extended.Evaluate(aggregate.Summaries{})
	require.Len(t, got, 1)
	assert.Equal(t, "always", got[0].Rule)
	assert.Empty(t, base.Evaluate(aggregate.Summaries{}))
}
