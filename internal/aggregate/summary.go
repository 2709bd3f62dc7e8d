package aggregate

import (
	"time"

	"vitals/internal/domain"
)

// FieldStats are the generic statistics of one numeric field. Average and
// Latest are nil when no record carries the field.
type FieldStats struct {
	Count   int      `json:"count"`
	Sum     float64  `json:"sum"`
	Average *float64 `json:"average"`
	Latest  *float64 `json:"latest"`
}

// Snapshot is the most recent record's numeric values.
type Snapshot struct {
	RecordID int64                    `json:"recordId"`
	At       time.Time                `json:"at"`
	Values   map[domain.Field]float64 `json:"values"`
}

// ActivityStats are the activity composites.
type ActivityStats struct {
	TotalCaloriesBurned  float64  `json:"totalCaloriesBurned"`
	MeanCaloriesBurned   *float64 `json:"meanCaloriesBurned"`
	TotalDurationMinutes float64  `json:"totalDurationMinutes"`
}

// NutritionStats are the nutrition composites.
type NutritionStats struct {
	TotalCalories      float64 `json:"totalCalories"`
	TotalProtein       float64 `json:"totalProtein"`
	TotalCarbohydrates float64 `json:"totalCarbohydrates"`
	TotalFats          float64 `json:"totalFats"`
}

// MoodStats are the mood composites.
type MoodStats struct {
	MeanMood   *float64 `json:"meanMood"`
	MeanEnergy *float64 `json:"meanEnergy"`
	MeanStress *float64 `json:"meanStress"`
}

// WaterStats are the hydration composites.
type WaterStats struct {
	TotalMl float64 `json:"totalMl"`
}

// SleepStats are the sleep composites.
type SleepStats struct {
	MeanQuality         *float64 `json:"meanQuality"`
	TotalMinutes        float64  `json:"totalMinutes"`
	MeanDurationMinutes *float64 `json:"meanDurationMinutes"`
}

// Summary holds the statistics of one category over a filtered record set.
// Exactly one composite pointer matching Category is set.
type Summary struct {
	Category domain.Category             `json:"category"`
	Records  int                         `json:"records"`
	Fields   map[domain.Field]FieldStats `json:"fields"`

	Activity    *ActivityStats  `json:"activity,omitempty"`
	Nutrition   *NutritionStats `json:"nutrition,omitempty"`
	Mood        *MoodStats      `json:"mood,omitempty"`
	Water       *WaterStats     `json:"water,omitempty"`
	Vitals      *Snapshot       `json:"vitals,omitempty"`
	Measurement *Snapshot       `json:"measurement,omitempty"`
	Sleep       *SleepStats     `json:"sleep,omitempty"`
}

// Empty reports whether the summary was built from no records.
func (s Summary) Empty() bool {
	return s.Records == 0
}

// Summaries are per-category summaries for one window.
type Summaries map[domain.Category]Summary

// Get returns the summary for c, or an empty summary when c is missing.
func (s Summaries) Get(c domain.Category) Summary {
	if sum, ok := s[c]; ok {
		return sum
	}
	return Summarize(c, nil)
}

type composer func(*Summary, []domain.Record)

var composers = map[domain.Category]composer{
	domain.CategoryActivity: func(s *Summary, rs []domain.Record) {
		s.Activity = &ActivityStats{
			TotalCaloriesBurned:  Sum(rs, domain.FieldCaloriesBurned),
			MeanCaloriesBurned:   ptr(Average(rs, domain.FieldCaloriesBurned)),
			TotalDurationMinutes: Sum(rs, domain.FieldDurationMinutes),
		}
	},
	domain.CategoryNutrition: func(s *Summary, rs []domain.Record) {
		s.Nutrition = &NutritionStats{
			TotalCalories:      Sum(rs, domain.FieldCalories),
			TotalProtein:       Sum(rs, domain.FieldProtein),
			TotalCarbohydrates: Sum(rs, domain.FieldCarbohydrates),
			TotalFats:          Sum(rs, domain.FieldFats),
		}
	},
	domain.CategoryMood: func(s *Summary, rs []domain.Record) {
		s.Mood = &MoodStats{
			MeanMood:   ptr(Average(rs, domain.FieldMoodRating)),
			MeanEnergy: ptr(Average(rs, domain.FieldEnergyLevel)),
			MeanStress: ptr(Average(rs, domain.FieldStressLevel)),
		}
	},
	domain.CategoryWater: func(s *Summary, rs []domain.Record) {
		s.Water = &WaterStats{TotalMl: Sum(rs, domain.FieldAmountMl)}
	},
	domain.CategoryVitals: func(s *Summary, rs []domain.Record) {
		s.Vitals = snapshot(rs)
	},
	domain.CategoryMeasurement: func(s *Summary, rs []domain.Record) {
		s.Measurement = snapshot(rs)
	},
	domain.CategorySleep: func(s *Summary, rs []domain.Record) {
		s.Sleep = &SleepStats{
			MeanQuality:         ptr(Average(rs, domain.FieldQualityRating)),
			TotalMinutes:        Sum(rs, domain.FieldDurationMinutes),
			MeanDurationMinutes: ptr(Average(rs, domain.FieldDurationMinutes)),
		}
	},
}

// Summarize computes the summary of category c over records, which must all
// belong to c and already be filtered to the window.
func Summarize(c domain.Category, records []domain.Record) Summary {
	s := Summary{Category: c, Records: len(records), Fields: map[domain.Field]FieldStats{}}
	if schema, ok := c.Schema(); ok {
		for _, spec := range schema.Fields {
			s.Fields[spec.Name] = FieldStats{
				Count:   Count(records, spec.Name),
				Sum:     Sum(records, spec.Name),
				Average: ptr(Average(records, spec.Name)),
				Latest:  ptr(Latest(records, spec.Name)),
			}
		}
	}
	if compose, ok := composers[c]; ok {
		compose(&s, records)
	}
	return s
}

func snapshot(records []domain.Record) *Snapshot {
	r, ok := latestRecord(records)
	if !ok {
		return nil
	}
	values := make(map[domain.Field]float64, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return &Snapshot{RecordID: r.ID, At: r.At, Values: values}
}
