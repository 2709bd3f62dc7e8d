// Package seed generates deterministic sample records for development.
package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"vitals/internal/domain"
)

// DefaultDays is how many trailing days Generate fills by default.
const DefaultDays = 20

var activities = []string{"Running", "Cycling", "Swimming", "Yoga", "Weight Training"}

var mealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

type food struct {
	name     string
	calories float64
	protein  float64
	carbs    float64
}

var foods = []food{
	{"Oatmeal with Berries", 350, 12, 60},
	{"Chicken Salad", 400, 35, 20},
	{"Salmon with Quinoa", 550, 40, 45},
	{"Greek Yogurt", 150, 15, 10},
	{"Turkey Sandwich", 450, 28, 48},
}

// Entry is one record ready to be stored.
type Entry struct {
	Category domain.Category
	At       time.Time
	Data     map[string]any
}

// Generator produces sample entries. The same seed and clock always produce
// the same entries.
type Generator struct {
	rnd *rand.Rand
	now time.Time
}

// NewGenerator returns a generator seeded with seed whose newest entries fall
// just before now.
func NewGenerator(seed uint64, now time.Time) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now: now}
}

// Generate returns entries for the trailing days days, oldest day first.
func (g *Generator) Generate(days int) []Entry {
	var out []Entry
	for i := days - 1; i >= 0; i-- {
		out = append(out, g.day(g.now.Add(-time.Minute-time.Duration(i)*24*time.Hour))...)
	}
	return out
}

// day generates one day of entries, all at or before end.
func (g *Generator) day(end time.Time) []Entry {
	var out []Entry
	add := func(c domain.Category, at time.Time, data map[string]any) {
		schema, _ := c.Schema()
		data[schema.TimestampKey] = at.Format(time.RFC3339)
		out = append(out, Entry{Category: c, At: at, Data: data})
	}
	// spread n entries over the twelve hours before end
	spread := func(i, n int) time.Time {
		return end.Add(-time.Duration(12*(n-i)/n) * time.Hour)
	}

	for i, n := 0, g.intn(1, 3); i < n; i++ {
		add(domain.CategoryActivity, spread(i, n), map[string]any{
			"type":           pick(g, activities),
			"duration":       fmt.Sprintf("%d minutes", g.intn(15, 120)),
			"caloriesBurned": float64(g.intn(100, 800)),
			"heartRateAvg":   float64(g.intn(60, 150)),
		})
	}

	for i, n := 0, g.intn(3, 5); i < n; i++ {
		f := pick(g, foods)
		add(domain.CategoryNutrition, spread(i, n), map[string]any{
			"mealType":      pick(g, mealTypes),
			"foodName":      f.name,
			"calories":      f.calories,
			"protein":       f.protein,
			"carbohydrates": f.carbs,
		})
	}

	add(domain.CategoryMood, end, map[string]any{
		"moodRating":  float64(g.intn(2, 5)),
		"energyLevel": float64(g.intn(2, 5)),
		"stressLevel": float64(g.intn(1, 4)),
	})

	for i, n := 0, g.intn(4, 8); i < n; i++ {
		drink := "water"
		if g.rnd.Float64() > 0.8 {
			drink = "tea"
		}
		add(domain.CategoryWater, spread(i, n), map[string]any{
			"amountMl":  float64(g.intn(200, 500)),
			"drinkType": drink,
		})
	}

	add(domain.CategoryVitals, end, map[string]any{
		"heartRate":              float64(g.intn(60, 100)),
		"bloodPressureSystolic":  float64(g.intn(110, 130)),
		"bloodPressureDiastolic": float64(g.intn(70, 85)),
		"temperature":            g.float(36.1, 37.2),
	})

	if g.rnd.Float64() > 0.7 {
		add(domain.CategoryMeasurement, end, map[string]any{
			"weight":            g.float(70, 72),
			"bodyFatPercentage": g.float(15, 18),
			"weightUnit":        domain.UnitKG,
		})
	}

	add(domain.CategorySleep, end.Add(-16*time.Hour), map[string]any{
		"durationMinutes": float64(g.intn(300, 540)),
		"qualityRating":   float64(g.intn(2, 5)),
		"timesAwake":      float64(g.intn(0, 3)),
	})
	return out
}

// intn returns an integer in [lo, hi].
func (g *Generator) intn(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}

// float returns a value in [lo, hi) rounded to one decimal.
func (g *Generator) float(lo, hi float64) float64 {
	return math.Round((lo+g.rnd.Float64()*(hi-lo))*10) / 10
}

func pick[T any](g *Generator, items []T) T {
	return items[g.rnd.IntN(len(items))]
}

// Load stores entries for userID and returns how many were written.
func Load(ctx context.Context, store domain.RecordStore, userID string, entries []Entry) (int, error) {
	for i, e := range entries {
		if _, err := store.InsertRecord(ctx, userID, e.Category, e.At, e.Data); err != nil {
			return i, fmt.Errorf("seed %s record %d: %w", e.Category, i, err)
		}
	}
	return len(entries), nil
}
