// Package domain contains the core business entities and interfaces.
package domain

import "fmt"

// Category tags one kind of health record.
type Category string

// Record categories. The set is closed; AllCategories lists it in display order.
const (
	CategoryActivity    Category = "activity"
	CategoryNutrition   Category = "nutrition"
	CategoryMood        Category = "mood"
	CategoryWater       Category = "water"
	CategoryVitals      Category = "vitals"
	CategoryMeasurement Category = "measurement"
	CategorySleep       Category = "sleep"
)

// Field names a numeric value carried by a record.
type Field string

// Numeric fields, keyed as they appear in raw record payloads.
const (
	FieldDurationMinutes Field = "durationMinutes"
	FieldDistance        Field = "distance"
	FieldCaloriesBurned  Field = "caloriesBurned"
	FieldHeartRateAvg    Field = "heartRateAvg"
	FieldHeartRateMax    Field = "heartRateMax"
	FieldSteps           Field = "steps"

	FieldPortionSize   Field = "portionSize"
	FieldCalories      Field = "calories"
	FieldProtein       Field = "protein"
	FieldCarbohydrates Field = "carbohydrates"
	FieldFats          Field = "fats"
	FieldFiber         Field = "fiber"
	FieldSugar         Field = "sugar"
	FieldSodium        Field = "sodium"

	FieldMoodRating  Field = "moodRating"
	FieldEnergyLevel Field = "energyLevel"
	FieldStressLevel Field = "stressLevel"

	FieldAmountMl Field = "amountMl"

	FieldHeartRate              Field = "heartRate"
	FieldBloodPressureSystolic  Field = "bloodPressureSystolic"
	FieldBloodPressureDiastolic Field = "bloodPressureDiastolic"
	FieldTemperature            Field = "temperature"
	FieldOxygenSaturation       Field = "oxygenSaturation"
	FieldRespiratoryRate        Field = "respiratoryRate"

	FieldWeight            Field = "weight"
	FieldBodyFatPercentage Field = "bodyFatPercentage"
	FieldChest             Field = "chest"
	FieldWaist             Field = "waist"
	FieldHips              Field = "hips"
	FieldBiceps            Field = "biceps"
	FieldThighs            Field = "thighs"
	FieldCalves            Field = "calves"

	FieldQualityRating Field = "qualityRating"
	FieldTimesAwake    Field = "timesAwake"
)

// FieldSpec bounds a numeric field. Every numeric field is non-negative;
// Max of zero means unbounded above.
type FieldSpec struct {
	Name Field
	Min  float64
	Max  float64
}

// Schema describes how one category's raw payload is shaped.
type Schema struct {
	Category     Category
	TimestampKey string
	Fields       []FieldSpec
	Labels       []string
}

func unbounded(names ...Field) []FieldSpec {
	out := make([]FieldSpec, 0, len(names))
	for _, n := range names {
		out = append(out, FieldSpec{Name: n})
	}
	return out
}

func rating(n Field) FieldSpec {
	return FieldSpec{Name: n, Min: 1, Max: 5}
}

var schemas = map[Category]Schema{
	CategoryActivity: {
		Category:     CategoryActivity,
		TimestampKey: "performedAt",
		Fields: unbounded(FieldDurationMinutes, FieldDistance, FieldCaloriesBurned,
			FieldHeartRateAvg, FieldHeartRateMax, FieldSteps),
		Labels: []string{"type", "intensity", "notes"},
	},
	CategoryNutrition: {
		Category:     CategoryNutrition,
		TimestampKey: "mealTime",
		Fields: unbounded(FieldPortionSize, FieldCalories, FieldProtein, FieldCarbohydrates,
			FieldFats, FieldFiber, FieldSugar, FieldSodium),
		Labels: []string{"mealType", "foodName"},
	},
	CategoryMood: {
		Category:     CategoryMood,
		TimestampKey: "loggedAt",
		Fields:       []FieldSpec{rating(FieldMoodRating), rating(FieldEnergyLevel), rating(FieldStressLevel)},
		Labels:       []string{"notes"},
	},
	CategoryWater: {
		Category:     CategoryWater,
		TimestampKey: "consumedAt",
		Fields:       unbounded(FieldAmountMl),
		Labels:       []string{"drinkType"},
	},
	CategoryVitals: {
		Category:     CategoryVitals,
		TimestampKey: "measuredAt",
		Fields: unbounded(FieldHeartRate, FieldBloodPressureSystolic, FieldBloodPressureDiastolic,
			FieldTemperature, FieldOxygenSaturation, FieldRespiratoryRate),
	},
	CategoryMeasurement: {
		Category:     CategoryMeasurement,
		TimestampKey: "measuredAt",
		Fields: unbounded(FieldWeight, FieldBodyFatPercentage, FieldChest, FieldWaist,
			FieldHips, FieldBiceps, FieldThighs, FieldCalves),
		Labels: []string{"weightUnit"},
	},
	CategorySleep: {
		Category:     CategorySleep,
		TimestampKey: "sleepStart",
		Fields:       []FieldSpec{{Name: FieldDurationMinutes}, rating(FieldQualityRating), {Name: FieldTimesAwake}},
		Labels:       []string{"notes"},
	},
}

var allCategories = []Category{
	CategoryActivity,
	CategoryNutrition,
	CategoryMood,
	CategoryWater,
	CategoryVitals,
	CategoryMeasurement,
	CategorySleep,
}

// AllCategories returns every category in display order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := schemas[c]
	return ok
}

// Schema returns the payload schema for c.
func (c Category) Schema() (Schema, bool) {
	s, ok := schemas[c]
	return s, ok
}

// ParseCategory converts a tag into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Spec returns the bounds declared for field f, if the schema carries it.
func (s Schema) Spec(f Field) (FieldSpec, bool) {
	for _, fs := range s.Fields {
		if fs.Name == f {
			return fs, true
		}
	}
	return FieldSpec{}, false
}
