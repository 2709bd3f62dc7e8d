package domain

// Weight units accepted on measurement records and chart requests.
const (
	UnitKG = "kg"
	UnitLB = "lb"
)

const kgToLb = 2.2046226218

// IsWeightUnit reports whether u is a supported weight unit.
func IsWeightUnit(u string) bool {
	return u == UnitKG || u == UnitLB
}

// ConvertWeight converts a weight value between UnitKG and UnitLB.
// Returns v unchanged if from == to or if either unit is unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	switch {
	case from == to:
		return v
	case from == UnitKG && to == UnitLB:
		return v * kgToLb
	case from == UnitLB && to == UnitKG:
		return v / kgToLb
	}
	return v
}
