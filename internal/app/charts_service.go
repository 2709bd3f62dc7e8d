package app

import (
	"context"
	"errors"

	"vitals/internal/aggregate"
	"vitals/internal/domain"
)

// maxChartDays bounds chart requests.
const maxChartDays = 366

// ChartsService turns dashboard buckets into chart-ready daily series.
type ChartsService struct {
	dashboards *DashboardService
}

// NewChartsService creates a ChartsService on top of the dashboard pipeline.
func NewChartsService(d *DashboardService) *ChartsService {
	return &ChartsService{dashboards: d}
}

// DayPoint is a single data point returned by GetDaily. Totals are zero on
// days without records; Mood and Weight are nil instead.
type DayPoint struct {
	Day            string       `json:"day"`
	WaterMl        float64      `json:"waterMl"`
	CaloriesBurned float64      `json:"caloriesBurned"`
	Protein        float64      `json:"protein"`
	Mood           *float64     `json:"mood"`
	Weight         *WeightPoint `json:"weight"`
}

// WeightPoint is the optional weight value within a DayPoint.
type WeightPoint struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// ChartSeries is the result of GetDaily.
type ChartSeries struct {
	Points      []DayPoint    `json:"items"`
	Unavailable []Unavailable `json:"unavailableCategories"`
}

// GetDaily returns per-day chart data for the last days days, with weights
// converted to the requested unit.
func (s *ChartsService) GetDaily(ctx context.Context, userID string, days int, unit string) (*ChartSeries, error) {
	if !domain.IsWeightUnit(unit) {
		return nil, errors.New("unit must be \"kg\" or \"lb\"")
	}
	if days > maxChartDays {
		days = maxChartDays
	}
	w, err := s.dashboards.TrailingWindow(days)
	if err != nil {
		return nil, err
	}
	d := s.dashboards.ComputeWindow(ctx, userID, w)

	water := aggregate.DailyTotals(d.Buckets[domain.CategoryWater], domain.FieldAmountMl)
	calories := aggregate.DailyTotals(d.Buckets[domain.CategoryActivity], domain.FieldCaloriesBurned)
	protein := aggregate.DailyTotals(d.Buckets[domain.CategoryNutrition], domain.FieldProtein)
	mood := aggregate.DailyAverages(d.Buckets[domain.CategoryMood], domain.FieldMoodRating)
	weight := aggregate.DailyLatest(d.Buckets[domain.CategoryMeasurement], domain.FieldWeight)

	points := make([]DayPoint, 0, w.Days)
	for i, day := range w.DayKeys() {
		p := DayPoint{
			Day:            day,
			WaterMl:        *water[i].Value,
			CaloriesBurned: *calories[i].Value,
			Protein:        *protein[i].Value,
			Mood:           mood[i].Value,
		}
		if v := weight[i].Value; v != nil {
			p.Weight = &WeightPoint{Value: domain.ConvertWeight(*v, domain.UnitKG, unit), Unit: unit}
		}
		points = append(points, p)
	}
	return &ChartSeries{Points: points, Unavailable: d.Unavailable}, nil
}
